package masters

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	masterRepo "github.com/m04kA/SMC-SlottaService/internal/infra/storage/master"
	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

// maxSlugAttempts сколько раз пробуем подобрать свободный slug
const maxSlugAttempts = 5

// Service сервис профилей и сессий мастеров
type Service struct {
	masterRepo MasterRepository
	hasher     PasswordHasher
	tokens     TokenIssuer
	logger     Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(masterRepo MasterRepository, hasher PasswordHasher, tokens TokenIssuer, logger Logger) *Service {
	return &Service{
		masterRepo: masterRepo,
		hasher:     hasher,
		tokens:     tokens,
		logger:     logger,
	}
}

// Register регистрирует мастера с настройками по умолчанию и выдает токен
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	s.logger.Info("Register: registering master email=%s", req.Email)

	if err := validateRegister(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	slug, err := s.freeSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	created, err := s.masterRepo.Create(ctx, &domain.Master{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Specialty:    req.Specialty,
		BookingSlug:  slug,
		Settings:     domain.DefaultBookingSettings(),
	})
	if err != nil {
		if errors.Is(err, masterRepo.ErrAlreadyExists) {
			s.logger.Warn("Register: email=%s already registered", req.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created master id=%d slug=%s", created.ID, created.BookingSlug)
	return s.issue(created)
}

// Login проверяет пароль и выдает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	s.logger.Info("Login: attempt for email=%s", email)

	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	master, err := s.masterRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := s.hasher.Compare(master.PasswordHash, req.Password); err != nil {
		s.logger.Warn("Login: wrong password for master id=%d", master.ID)
		return nil, ErrInvalidCredentials
	}

	return s.issue(master)
}

// GetByID получает профиль мастера
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MasterResponse, error) {
	master, err := s.get(ctx, "GetByID", func() (*domain.Master, error) { return s.masterRepo.GetByID(ctx, id) })
	if err != nil {
		return nil, err
	}
	return models.FromDomainMaster(master), nil
}

// GetBySlug получает профиль мастера по публичной ссылке
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.MasterResponse, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}
	master, err := s.get(ctx, "GetBySlug", func() (*domain.Master, error) { return s.masterRepo.GetBySlug(ctx, slug) })
	if err != nil {
		return nil, err
	}
	return models.FromDomainMaster(master), nil
}

// UpdateProfile обновляет профиль текущего мастера
func (s *Service) UpdateProfile(ctx context.Context, masterID int64, req *models.UpdateProfileRequest) (*models.MasterResponse, error) {
	s.logger.Info("UpdateProfile: updating master id=%d", masterID)

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > domain.MaxNameLength {
			return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
		}
		req.Name = &name
	}
	if req.TelegramChatID != nil && *req.TelegramChatID == 0 {
		return nil, fmt.Errorf("%w: telegramChatId must not be zero", ErrInvalidInput)
	}

	master, err := s.get(ctx, "UpdateProfile", func() (*domain.Master, error) { return s.masterRepo.GetByID(ctx, masterID) })
	if err != nil {
		return nil, err
	}

	req.ApplyToMaster(master)
	if err := s.masterRepo.UpdateProfile(ctx, master); err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return nil, ErrMasterNotFound
		}
		s.logger.Error("UpdateProfile: repository error for master id=%d: %v", masterID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: updated master id=%d", masterID)
	return models.FromDomainMaster(master), nil
}

func (s *Service) get(ctx context.Context, op string, fetch func() (*domain.Master, error)) (*domain.Master, error) {
	master, err := fetch()
	if err != nil {
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			s.logger.Warn("%s: master not found", op)
			return nil, ErrMasterNotFound
		}
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return master, nil
}

func (s *Service) issue(master *domain.Master) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Generate(master.ID, master.Email, master.BookingSlug)
	if err != nil {
		s.logger.Error("issue: failed to sign token for master id=%d: %v", master.ID, err)
		return nil, fmt.Errorf("%w: sign token: %v", ErrInternal, err)
	}
	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Master:    models.FromDomainMaster(master),
	}, nil
}

// freeSlug подбирает незанятый slug на основе имени
func (s *Service) freeSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		candidate := withSuffix(base, attempt)
		_, err := s.masterRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, masterRepo.ErrMasterNotFound) {
			return candidate, nil
		}
		if err != nil {
			s.logger.Error("freeSlug: repository error: %v", err)
			return "", fmt.Errorf("%w: freeSlug - repository error: %v", ErrInternal, err)
		}
	}
	return withRandomSuffix(base), nil
}

func validateRegister(req *models.RegisterRequest) error {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < domain.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, domain.MinPasswordLength)
	}
	if req.Name == "" || len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
