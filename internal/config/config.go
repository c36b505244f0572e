package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/types"
)

// ErrInvalidConfig конфигурация не прошла валидацию
var ErrInvalidConfig = errors.New("invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Booking   BookingConfig   `toml:"booking"`
	Deposit   DepositConfig   `toml:"deposit"`
	Payments  PaymentsConfig  `toml:"payments"`
	Email     EmailConfig     `toml:"email"`
	Telegram  TelegramConfig  `toml:"telegram"`
	Scheduler SchedulerConfig `toml:"scheduler"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	ConnectTimeout  int    `toml:"connect_timeout"`   // секунды, общее время попыток подключения
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	Issuer        string `toml:"issuer"`
	BcryptCost    int    `toml:"bcrypt_cost"`
}

// TokenTTL время жизни токена мастера
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLHours) * time.Hour
}

type PeakWindowConfig struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

type BookingConfig struct {
	Timezone    string             `toml:"timezone"`
	PeakWindows []PeakWindowConfig `toml:"peak_windows"`
	// Максимальный горизонт выдачи слотов в днях для запроса диапазона
	MaxSlotsRangeDays int `toml:"max_slots_range_days"`
}

// Location часовой пояс, в котором интерпретируются дата и время бронирований
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// Windows пиковые интервалы в доменном виде
func (b BookingConfig) Windows() ([]domain.PeakWindow, error) {
	windows := make([]domain.PeakWindow, 0, len(b.PeakWindows))
	for _, w := range b.PeakWindows {
		start, err := types.NewTimeStringFromString(w.Start)
		if err != nil {
			return nil, fmt.Errorf("peak window start: %w", err)
		}
		end, err := types.NewTimeStringFromString(w.End)
		if err != nil {
			return nil, fmt.Errorf("peak window end: %w", err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("peak window %s-%s: start must be before end", start, end)
		}
		windows = append(windows, domain.PeakWindow{Start: start, End: end})
	}
	return windows, nil
}

// DepositConfig проценты задаются в процентах (27.5 = 27.5 %)
type DepositConfig struct {
	MediumFromMinutes int `toml:"medium_from_minutes"`
	LongAfterMinutes  int `toml:"long_after_minutes"`

	ShortPercent  float64 `toml:"short_percent"`
	MediumPercent float64 `toml:"medium_percent"`
	LongPercent   float64 `toml:"long_percent"`

	ReliableMultiplier        float64 `toml:"reliable_multiplier"`
	NewMultiplier             float64 `toml:"new_multiplier"`
	NeedsProtectionMultiplier float64 `toml:"needs_protection_multiplier"`
	PeakSlotMultiplier        float64 `toml:"peak_slot_multiplier"`
	CancellationMultiplier    float64 `toml:"cancellation_multiplier"`

	StackCancellationWithNeedsProtection bool `toml:"stack_cancellation_with_needs_protection"`

	CeilingPercent   float64 `toml:"ceiling_percent"`
	LongServiceFloor float64 `toml:"long_service_floor"`
}

// Policy переводит настройки в политику калькулятора
func (d DepositConfig) Policy() deposit.Policy {
	hundred := decimal.NewFromInt(100)
	pct := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Div(hundred) }

	return deposit.Policy{
		MediumFromMinutes: d.MediumFromMinutes,
		LongAfterMinutes:  d.LongAfterMinutes,

		ShortPercent:  pct(d.ShortPercent),
		MediumPercent: pct(d.MediumPercent),
		LongPercent:   pct(d.LongPercent),

		ReliableMultiplier:        decimal.NewFromFloat(d.ReliableMultiplier),
		NewMultiplier:             decimal.NewFromFloat(d.NewMultiplier),
		NeedsProtectionMultiplier: decimal.NewFromFloat(d.NeedsProtectionMultiplier),
		PeakSlotMultiplier:        decimal.NewFromFloat(d.PeakSlotMultiplier),
		CancellationMultiplier:    decimal.NewFromFloat(d.CancellationMultiplier),

		StackCancellationWithNeedsProtection: d.StackCancellationWithNeedsProtection,

		CeilingPercent:   pct(d.CeilingPercent),
		LongServiceFloor: decimal.NewFromFloat(d.LongServiceFloor),
	}
}

type PaymentsConfig struct {
	Enabled   bool   `toml:"enabled"`
	SecretKey string `toml:"secret_key"`
	Currency  string `toml:"currency"`
}

type EmailConfig struct {
	Enabled   bool   `toml:"enabled"`
	APIKey    string `toml:"api_key"`
	FromEmail string `toml:"from_email"`
	FromName  string `toml:"from_name"`
}

type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
}

type SchedulerConfig struct {
	Enabled bool `toml:"enabled"`
	// Cron-выражение еженедельных выплат (по умолчанию суббота 09:00 UTC)
	PayoutSchedule string  `toml:"payout_schedule"`
	MinPayout      float64 `toml:"min_payout"`
	// Секунды на один прогон выплат
	PayoutTimeout int `toml:"payout_timeout"`
}

// Load читает конфигурацию из TOML файла
// Путь может быть переопределен переменной CONFIG_PATH
func Load(path string) (*Config, error) {
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		path = envPath
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения по умолчанию; значения из файла перекрывают их
func Default() *Config {
	policy := deposit.DefaultPolicy()
	pct := func(d decimal.Decimal) float64 { return d.Mul(decimal.NewFromInt(100)).InexactFloat64() }

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "slotta",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			ConnectTimeout:  30,
			AutoMigrate:     true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "slotta-service",
		},
		Auth: AuthConfig{
			TokenTTLHours: 24 * 7,
			Issuer:        "slotta",
			BcryptCost:    10,
		},
		Booking: BookingConfig{
			Timezone: "UTC",
			PeakWindows: []PeakWindowConfig{
				{Start: "09:00", End: "11:00"},
				{Start: "15:00", End: "17:00"},
			},
			MaxSlotsRangeDays: 31,
		},
		Deposit: DepositConfig{
			MediumFromMinutes:         policy.MediumFromMinutes,
			LongAfterMinutes:          policy.LongAfterMinutes,
			ShortPercent:              pct(policy.ShortPercent),
			MediumPercent:             pct(policy.MediumPercent),
			LongPercent:               pct(policy.LongPercent),
			ReliableMultiplier:        policy.ReliableMultiplier.InexactFloat64(),
			NewMultiplier:             policy.NewMultiplier.InexactFloat64(),
			NeedsProtectionMultiplier: policy.NeedsProtectionMultiplier.InexactFloat64(),
			PeakSlotMultiplier:        policy.PeakSlotMultiplier.InexactFloat64(),
			CancellationMultiplier:    policy.CancellationMultiplier.InexactFloat64(),
			CeilingPercent:            pct(policy.CeilingPercent),
			LongServiceFloor:          policy.LongServiceFloor.InexactFloat64(),
		},
		Payments: PaymentsConfig{
			Currency: "eur",
		},
		Email: EmailConfig{
			FromEmail: "no-reply@slotta.app",
			FromName:  "Slotta",
		},
		Scheduler: SchedulerConfig{
			Enabled:        true,
			PayoutSchedule: "CRON_TZ=UTC 0 9 * * 6",
			MinPayout:      domain.MinPayoutAmount,
			PayoutTimeout:  300,
		},
	}
}

// overrideWithEnv секреты можно передать через окружение
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.DBName = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Payments.SecretKey = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("TELEGRAM_BOT_TOKEN"); val != "" {
		c.Telegram.BotToken = val
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or JWT_SECRET)", ErrInvalidConfig)
	}
	if c.Auth.TokenTTLHours <= 0 {
		return fmt.Errorf("%w: auth.token_ttl_hours must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Booking.Windows(); err != nil {
		return fmt.Errorf("%w: booking.peak_windows: %v", ErrInvalidConfig, err)
	}
	if err := c.Deposit.Policy().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Payments.Enabled && c.Payments.SecretKey == "" {
		return fmt.Errorf("%w: payments.secret_key is required when payments are enabled", ErrInvalidConfig)
	}
	if c.Email.Enabled && c.Email.APIKey == "" {
		return fmt.Errorf("%w: email.api_key is required when email is enabled", ErrInvalidConfig)
	}
	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: telegram.bot_token is required when telegram is enabled", ErrInvalidConfig)
	}
	if c.Scheduler.MinPayout < 0 {
		return fmt.Errorf("%w: scheduler.min_payout must not be negative", ErrInvalidConfig)
	}
	return nil
}
