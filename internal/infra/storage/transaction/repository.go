package transaction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlottaService/pkg/psqlbuilder"
)

const table = "transactions"

var columns = []string{
	"id",
	"booking_id",
	"master_id",
	"client_id",
	"type",
	"amount",
	"external_id",
	"description",
	"created_at",
}

// Repository журнал денежных операций
// Записи только добавляются, изменение и удаление не предусмотрены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория транзакций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("booking_id", "master_id", "client_id", "type", "amount", "external_id", "description").
		Values(t.BookingID, t.MasterID, t.ClientID, t.Type, t.Amount, t.ExternalID, t.Desc).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// GetByMasterID получает операции мастера, новые первыми; limit 0 = без ограничения
func (r *Repository) GetByMasterID(ctx context.Context, masterID int64, limit uint64) ([]*domain.Transaction, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("created_at DESC, id DESC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	return r.list(ctx, "GetByMasterID", selectBuilder)
}

// GetByBookingID получает операции по бронированию в порядке создания
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.Transaction, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC")

	return r.list(ctx, "GetByBookingID", selectBuilder)
}

// GetMasterBalance баланс кошелька мастера: зачисления минус выплаты
func (r *Repository) GetMasterBalance(ctx context.Context, masterID int64) (decimal.Decimal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From(table).
		Where(squirrel.Eq{
			"master_id": masterID,
			"type":      []string{string(domain.TransactionWalletCredit), string(domain.TransactionPayout)},
		}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: GetMasterBalance - build select query: %v", ErrBuildQuery, err)
	}

	var balance decimal.Decimal
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("%w: GetMasterBalance - scan balance: %v", ErrScanRow, err)
	}

	return balance, nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0)

	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(
			&t.ID,
			&t.BookingID,
			&t.MasterID,
			&t.ClientID,
			&t.Type,
			&t.Amount,
			&t.ExternalID,
			&t.Desc,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanTransactions - scan row: %v", ErrScanRow, err)
		}
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTransactions - rows error: %v", ErrScanRow, err)
	}

	return transactions, nil
}
