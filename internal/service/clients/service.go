package clients

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SlottaService/internal/service/clients/models"
)

// Service сервис клиентов
type Service struct {
	clientRepo  ClientRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		clientRepo:  clientRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CreateOrGet возвращает клиента с указанным email, создавая его при первом бронировании
// Второй результат сообщает, был ли клиент создан
func (s *Service) CreateOrGet(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	s.logger.Info("CreateOrGet: client email=%s", email)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, false, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if name == "" || len(name) > domain.MaxNameLength {
		return nil, false, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	existing, err := s.clientRepo.GetByEmail(ctx, email)
	if err == nil {
		return models.FromDomainClient(existing), false, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("CreateOrGet: repository error: %v", err)
		return nil, false, fmt.Errorf("%w: CreateOrGet - repository error: %v", ErrInternal, err)
	}

	created, err := s.clientRepo.Create(ctx, &domain.Client{
		Email:         email,
		Name:          name,
		Phone:         req.Phone,
		Reliability:   domain.ReliabilityNew,
		WalletBalance: decimal.Zero,
	})
	if errors.Is(err, clientRepo.ErrAlreadyExists) {
		// параллельная запись с тем же email
		existing, err = s.clientRepo.GetByEmail(ctx, email)
		if err == nil {
			return models.FromDomainClient(existing), false, nil
		}
	}
	if err != nil {
		s.logger.Error("CreateOrGet: failed to create client: %v", err)
		return nil, false, fmt.Errorf("%w: CreateOrGet - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOrGet: created client id=%d", created.ID)
	return models.FromDomainClient(created), true, nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClientResponse, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", err)
	}
	return models.FromDomainClient(c), nil
}

// GetByEmail получает клиента по email
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.ClientResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	c, err := s.clientRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.mapError("GetByEmail", err)
	}
	return models.FromDomainClient(c), nil
}

// ListByMaster получает клиентов, которые бронировали у мастера
func (s *Service) ListByMaster(ctx context.Context, masterID int64) (*models.ClientListResponse, error) {
	s.logger.Info("ListByMaster: fetching clients of master=%d", masterID)

	ids, err := s.bookingRepo.GetClientIDsByMasterID(ctx, masterID)
	if err != nil {
		s.logger.Error("ListByMaster: failed to get client ids: %v", err)
		return nil, fmt.Errorf("%w: ListByMaster - repository error: %v", ErrInternal, err)
	}
	if len(ids) == 0 {
		return models.FromDomainClientList(nil), nil
	}

	list, err := s.clientRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("ListByMaster: failed to get clients: %v", err)
		return nil, fmt.Errorf("%w: ListByMaster - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClientList(list), nil
}

func (s *Service) mapError(op string, err error) error {
	if errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Warn("%s: client not found", op)
		return ErrClientNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
