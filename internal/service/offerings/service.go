package offerings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	offeringRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/offering"
	"github.com/m04kA/SMC-SlottaService/internal/service/offerings/models"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// Service сервис услуг мастера
type Service struct {
	offeringRepo OfferingRepository
	calculator   DepositCalculator
	logger       Logger
}

// NewService создает новый экземпляр сервиса услуг
func NewService(offeringRepo OfferingRepository, calculator DepositCalculator, logger Logger) *Service {
	return &Service{
		offeringRepo: offeringRepo,
		calculator:   calculator,
		logger:       logger,
	}
}

// Create создает услугу и рассчитывает ее базовый депозит
func (s *Service) Create(ctx context.Context, masterID int64, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service for master=%d, name=%q", masterID, req.Name)

	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	offering := &domain.ServiceOffering{
		MasterID:        masterID,
		Name:            name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           price,
		Active:          req.Active == nil || *req.Active,
		NewClientsOnly:  req.NewClientsOnly,
	}
	if err := s.recomputeBaseDeposit(offering); err != nil {
		return nil, err
	}

	created, err := s.offeringRepo.Create(ctx, offering)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d with base deposit=%s", created.ID, created.BaseDeposit)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID (публично)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	offering, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(offering), nil
}

// ListByMaster получает услуги мастера
func (s *Service) ListByMaster(ctx context.Context, masterID int64, activeOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("ListByMaster: fetching services for master=%d, activeOnly=%t", masterID, activeOnly)

	list, err := s.offeringRepo.GetByMasterID(ctx, masterID, activeOnly)
	if err != nil {
		s.logger.Error("ListByMaster: repository error for master=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: ListByMaster - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(list), nil
}

// Update частично обновляет услугу; изменение цены или длительности пересчитывает базовый депозит
// Уже созданные бронирования хранят собственный снимок депозита и не меняются
func (s *Service) Update(ctx context.Context, masterID, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d by master=%d", id, masterID)

	offering, err := s.get(ctx, "Update", id)
	if err != nil {
		return nil, err
	}
	if offering.MasterID != masterID {
		s.logger.Warn("Update: service id=%d belongs to master=%d, not %d", id, offering.MasterID, masterID)
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		offering.Name = name
	}
	if req.Description != nil {
		offering.Description = req.Description
	}
	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			return nil, err
		}
		offering.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		offering.Price = price
	}
	if req.Active != nil {
		offering.Active = *req.Active
	}
	if req.NewClientsOnly != nil {
		offering.NewClientsOnly = *req.NewClientsOnly
	}

	if err := s.recomputeBaseDeposit(offering); err != nil {
		return nil, err
	}

	if err := s.offeringRepo.Update(ctx, offering); err != nil {
		if errors.Is(err, offeringRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated service id=%d, base deposit=%s", id, offering.BaseDeposit)
	return models.FromDomainService(offering), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.ServiceOffering, error) {
	offering, err := s.offeringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, offeringRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return offering, nil
}

func (s *Service) recomputeBaseDeposit(offering *domain.ServiceOffering) error {
	base, err := s.calculator.Base(offering.Price, offering.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	offering.BaseDeposit = base
	return nil
}

func validateName(name string) error {
	if name == "" || len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes <= 0 || minutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between 1 and %d", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}
	return nil
}

func parsePrice(f float64) (decimal.Decimal, error) {
	price, err := money.FromFloat(f)
	if err != nil || !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: price must be a positive amount", ErrInvalidInput)
	}
	return price, nil
}
