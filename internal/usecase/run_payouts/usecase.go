package run_payouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// UseCase еженедельные выплаты накопленных компенсаций мастерам
type UseCase struct {
	masterRepo      MasterRepository
	transactionRepo TransactionRepository
	payments        PaymentGateway
	notifier        Notifier
	txManager       TransactionManager
	minPayout       decimal.Decimal
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	masterRepo MasterRepository,
	transactionRepo TransactionRepository,
	payments PaymentGateway,
	notifier Notifier,
	txManager TransactionManager,
	minPayout decimal.Decimal,
	logger Logger,
) *UseCase {
	return &UseCase{
		masterRepo:      masterRepo,
		transactionRepo: transactionRepo,
		payments:        payments,
		notifier:        notifier,
		txManager:       txManager,
		minPayout:       minPayout,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выплачивает баланс каждому мастеру, у которого он не меньше минимальной выплаты
// Ошибка выплаты одному мастеру не останавливает прогон
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	uc.logger.Info("RunPayouts: started, min payout=%s", uc.minPayout.StringFixed(2))

	masters, err := uc.masterRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("RunPayouts: failed to list masters: %v", err)
		return nil, fmt.Errorf("%w: failed to list masters: %v", ErrInternal, err)
	}

	resp := &Response{Paid: []Payout{}, Total: decimal.Zero}
	period := uc.timeProvider.Now().UTC().Format(domain.DateFormat)

	for _, master := range masters {
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("RunPayouts: interrupted: %v", err)
			return resp, err
		}

		if !master.HasPayoutAccount() {
			resp.Skipped++
			continue
		}

		payout, err := uc.payMaster(ctx, master, period)
		switch {
		case errors.Is(err, errBelowMinimum):
			resp.Skipped++
		case err != nil:
			uc.logger.Error("RunPayouts: master id=%d: %v", master.ID, err)
			resp.Failed++
		default:
			resp.Paid = append(resp.Paid, *payout)
			resp.Total = resp.Total.Add(payout.Amount)
			uc.notifier.NotifyPayout(ctx, master, payout.Amount)
		}
	}

	uc.logger.Info("RunPayouts: finished, paid=%d, skipped=%d, failed=%d, total=%s",
		len(resp.Paid), resp.Skipped, resp.Failed, resp.Total.StringFixed(2))
	return resp, nil
}

// payMaster списывает баланс в журнале до перевода, при ошибке перевода списание сторнируется
func (uc *UseCase) payMaster(ctx context.Context, master *domain.Master, period string) (*Payout, error) {
	var amount decimal.Decimal
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		balance, err := uc.transactionRepo.GetMasterBalance(ctx, master.ID)
		if err != nil {
			return fmt.Errorf("failed to get balance: %w", err)
		}
		if balance.LessThan(uc.minPayout) || !balance.IsPositive() {
			return errBelowMinimum
		}
		amount = balance

		_, err = uc.transactionRepo.Create(ctx, &domain.Transaction{
			MasterID: &master.ID,
			Type:     domain.TransactionPayout,
			Amount:   balance.Neg(),
			Desc:     fmt.Sprintf("Weekly payout %s", period),
		})
		if err != nil {
			return fmt.Errorf("failed to record payout: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	reference := fmt.Sprintf("payout-%d-%s", master.ID, period)
	transferID, err := uc.payments.Payout(ctx, *master.StripeConnectID, amount, reference)
	if err != nil {
		uc.reverse(ctx, master, amount, period)
		return nil, fmt.Errorf("transfer failed: %w", err)
	}

	uc.logger.Info("RunPayouts: master id=%d paid %s (%s)", master.ID, amount.StringFixed(2), transferID)
	return &Payout{MasterID: master.ID, Amount: amount, TransferID: transferID}, nil
}

// reverse возвращает сумму на кошелек мастера, если перевод не прошел
func (uc *UseCase) reverse(ctx context.Context, master *domain.Master, amount decimal.Decimal, period string) {
	_, err := uc.transactionRepo.Create(ctx, &domain.Transaction{
		MasterID: &master.ID,
		Type:     domain.TransactionWalletCredit,
		Amount:   amount,
		Desc:     fmt.Sprintf("Payout %s reversed", period),
	})
	if err != nil {
		uc.logger.Error("RunPayouts: failed to reverse payout of %s for master id=%d: %v",
			amount.StringFixed(2), master.ID, err)
	}
}
