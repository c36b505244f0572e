package masters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// MasterRepository интерфейс репозитория мастеров
type MasterRepository interface {
	Create(ctx context.Context, m *domain.Master) (*domain.Master, error)
	GetByID(ctx context.Context, id int64) (*domain.Master, error)
	GetByEmail(ctx context.Context, email string) (*domain.Master, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Master, error)
	UpdateProfile(ctx context.Context, m *domain.Master) error
	UpdateSettings(ctx context.Context, masterID int64, s domain.BookingSettings) error
}

// PasswordHasher хеширование паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer выпуск токенов сессии
type TokenIssuer interface {
	Generate(masterID int64, email, slug string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
