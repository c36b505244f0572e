package quote_deposit

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/client"
	offeringRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/offering"
)

// UseCase расчет депозита без создания бронирования
type UseCase struct {
	offeringRepo OfferingRepository
	clientRepo   ClientRepository
	calculator   DepositCalculator
	metrics      QuoteMetrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(
	offeringRepo OfferingRepository,
	clientRepo ClientRepository,
	calculator DepositCalculator,
	metrics QuoteMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		offeringRepo: offeringRepo,
		clientRepo:   clientRepo,
		calculator:   calculator,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет расчет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteDeposit: validation failed: %v", err)
		return nil, err
	}

	price, duration, err := uc.resolveService(ctx, req)
	if err != nil {
		return nil, err
	}

	reliability := domain.ReliabilityNew
	if req.Reliability != nil && *req.Reliability != "" {
		reliability = domain.ClientReliability(*req.Reliability)
	}
	hasCancellations := req.HasCancellationHistory != nil && *req.HasCancellationHistory

	if req.ClientID != nil {
		client, err := uc.clientRepo.GetByID(ctx, *req.ClientID)
		if err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				uc.logger.Warn("QuoteDeposit: client id=%d not found", *req.ClientID)
				return nil, ErrClientNotFound
			}
			uc.logger.Error("QuoteDeposit: failed to get client id=%d: %v", *req.ClientID, err)
			return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
		}
		reliability = client.Reliability
		if req.HasCancellationHistory == nil {
			hasCancellations = client.HasCancellationHistory()
		}
	}

	quote, err := uc.calculator.Quote(price, duration, reliability, deposit.Adjustments{
		IsPeakSlot:             req.IsPeakSlot,
		HasCancellationHistory: hasCancellations,
	})
	if err != nil {
		switch {
		case errors.Is(err, deposit.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, deposit.ErrUnknownCategory):
			return nil, fmt.Errorf("%w: %v", ErrUnknownReliability, err)
		default:
			uc.logger.Error("QuoteDeposit: calculator error: %v", err)
			return nil, fmt.Errorf("%w: calculator: %v", ErrInternal, err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.IncDepositQuote(string(quote.Tier), string(quote.Reliability))
	}

	uc.logger.Info("QuoteDeposit: price=%s, duration=%d, reliability=%s -> %s",
		price, duration, quote.Reliability, quote.Amount)
	return fromQuote(quote), nil
}

// resolveService цена и длительность: из услуги или из запроса
func (uc *UseCase) resolveService(ctx context.Context, req *Request) (decimal.Decimal, int, error) {
	if req.ServiceID == nil {
		price, err := deposit.PriceFromFloat(*req.Price)
		if err != nil {
			return decimal.Zero, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return price, *req.DurationMinutes, nil
	}

	offering, err := uc.offeringRepo.GetByID(ctx, *req.ServiceID)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrServiceNotFound) {
			uc.logger.Warn("QuoteDeposit: service id=%d not found", *req.ServiceID)
			return decimal.Zero, 0, ErrServiceNotFound
		}
		uc.logger.Error("QuoteDeposit: failed to get service id=%d: %v", *req.ServiceID, err)
		return decimal.Zero, 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return offering.Price, offering.DurationMinutes, nil
}
