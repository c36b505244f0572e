package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// DefaultHistoryLimit сколько последних транзакций отдается вместе с балансом
const DefaultHistoryLimit = 50

// Service кошелек мастера
type Service struct {
	txRepo    TransactionRepository
	minPayout decimal.Decimal
	logger    Logger
}

// NewService создает сервис кошелька; minPayout - порог еженедельной выплаты
func NewService(txRepo TransactionRepository, minPayout decimal.Decimal, logger Logger) *Service {
	return &Service{
		txRepo:    txRepo,
		minPayout: minPayout,
		logger:    logger,
	}
}

// Get возвращает баланс и историю транзакций мастера
func (s *Service) Get(ctx context.Context, masterID int64, limit uint64) (*WalletResponse, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	s.logger.Info("Get: fetching wallet for master=%d, limit=%d", masterID, limit)

	balance, err := s.Balance(ctx, masterID)
	if err != nil {
		return nil, err
	}

	txs, err := s.txRepo.GetByMasterID(ctx, masterID, limit)
	if err != nil {
		s.logger.Error("Get: failed to get transactions for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	resp := &WalletResponse{
		MasterID:       masterID,
		Balance:        money.Float(balance),
		MinPayout:      money.Float(s.minPayout),
		PayoutEligible: balance.GreaterThanOrEqual(s.minPayout),
		Transactions:   make([]TransactionResponse, 0, len(txs)),
	}
	for _, t := range txs {
		resp.Transactions = append(resp.Transactions, fromDomainTransaction(t))
	}
	return resp, nil
}

// Balance текущий баланс кошелька мастера
func (s *Service) Balance(ctx context.Context, masterID int64) (decimal.Decimal, error) {
	balance, err := s.txRepo.GetMasterBalance(ctx, masterID)
	if err != nil {
		s.logger.Error("Balance: failed to get balance for master=%d: %v", masterID, err)
		return decimal.Zero, fmt.Errorf("%w: Balance - repository error: %v", ErrInternal, err)
	}
	return money.Round(balance), nil
}
