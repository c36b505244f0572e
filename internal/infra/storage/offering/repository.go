package offering

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlottaService/pkg/psqlbuilder"
)

const table = "services"

var columns = []string{
	"id",
	"master_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"base_deposit",
	"active",
	"new_clients_only",
	"created_at",
	"updated_at",
}

// Repository репозиторий услуг мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую услугу
func (r *Repository) Create(ctx context.Context, s *domain.ServiceOffering) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"master_id",
			"name",
			"description",
			"duration_minutes",
			"price",
			"base_deposit",
			"active",
			"new_clients_only",
		).
		Values(
			s.MasterID,
			s.Name,
			s.Description,
			s.DurationMinutes,
			s.Price,
			s.BaseDeposit,
			s.Active,
			s.NewClientsOnly,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanOffering(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByMasterID получает услуги мастера, activeOnly скрывает выключенные
func (r *Repository) GetByMasterID(ctx context.Context, masterID int64, activeOnly bool) ([]*domain.ServiceOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"master_id": masterID}).
		OrderBy("name ASC, id ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	offerings := make([]*domain.ServiceOffering, 0)
	for rows.Next() {
		s, err := scanOffering(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByMasterID - scan row: %v", ErrScanRow, err)
		}
		offerings = append(offerings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByMasterID - rows error: %v", ErrScanRow, err)
	}

	return offerings, nil
}

// Update обновляет услугу
// Бронирования хранят собственный снимок цены и депозита, поэтому их это не затрагивает
func (r *Repository) Update(ctx context.Context, s *domain.ServiceOffering) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", s.Name).
		Set("description", s.Description).
		Set("duration_minutes", s.DurationMinutes).
		Set("price", s.Price).
		Set("base_deposit", s.BaseDeposit).
		Set("active", s.Active).
		Set("new_clients_only", s.NewClientsOnly).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffering(row rowScanner) (*domain.ServiceOffering, error) {
	var s domain.ServiceOffering
	err := row.Scan(
		&s.ID,
		&s.MasterID,
		&s.Name,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.BaseDeposit,
		&s.Active,
		&s.NewClientsOnly,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
