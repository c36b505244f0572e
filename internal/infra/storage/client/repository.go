package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlottaService/pkg/psqlbuilder"
)

const (
	table = "clients"

	pgUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"email",
	"name",
	"phone",
	"total_bookings",
	"completed_bookings",
	"no_shows",
	"cancellations",
	"reliability",
	"wallet_balance",
	"stripe_customer_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет нового клиента
func (r *Repository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("email", "name", "phone", "reliability", "wallet_balance").
		Values(c.Email, c.Name, c.Phone, c.Reliability, c.WalletBalance).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// GetByID получает клиента по ID
// Внутри транзакции строка блокируется до конца транзакции, статистика меняется только так
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByEmail получает клиента по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Eq{"email": email})
}

// GetByIDs получает клиентов по списку ID
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Client, error) {
	clients := make([]*domain.Client, 0, len(ids))
	if len(ids) == 0 {
		return clients, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name ASC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %v", ErrScanRow, err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %v", ErrScanRow, err)
	}

	return clients, nil
}

// UpdateStats сохраняет счетчики, категорию надежности и баланс кошелька
func (r *Repository) UpdateStats(ctx context.Context, c *domain.Client) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("total_bookings", c.TotalBookings).
		Set("completed_bookings", c.CompletedBookings).
		Set("no_shows", c.NoShows).
		Set("cancellations", c.Cancellations).
		Set("reliability", c.Reliability).
		Set("wallet_balance", c.WalletBalance).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStats - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStats - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStats - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	c, err := scanClient(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, op, err)
	}

	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.Phone,
		&c.TotalBookings,
		&c.CompletedBookings,
		&c.NoShows,
		&c.Cancellations,
		&c.Reliability,
		&c.WalletBalance,
		&c.StripeCustomer,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
