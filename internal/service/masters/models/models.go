package models

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// Request модели

// RegisterRequest регистрация мастера
type RegisterRequest struct {
	Email     string
	Password  string
	Name      string
	Phone     *string
	Specialty *string
}

// LoginRequest вход мастера
type LoginRequest struct {
	Email    string
	Password string
}

// UpdateProfileRequest частичное обновление профиля, nil = не менять
type UpdateProfileRequest struct {
	Name            *string
	Phone           *string
	Specialty       *string
	Bio             *string
	PhotoURL        *string
	Location        *string
	StripeConnectID *string
	TelegramChatID  *int64
}

// ApplyToMaster применяет изменения к мастеру
func (r *UpdateProfileRequest) ApplyToMaster(m *domain.Master) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Phone != nil {
		m.Phone = r.Phone
	}
	if r.Specialty != nil {
		m.Specialty = r.Specialty
	}
	if r.Bio != nil {
		m.Bio = r.Bio
	}
	if r.PhotoURL != nil {
		m.PhotoURL = r.PhotoURL
	}
	if r.Location != nil {
		m.Location = r.Location
	}
	if r.StripeConnectID != nil {
		m.StripeConnectID = r.StripeConnectID
	}
	if r.TelegramChatID != nil {
		m.TelegramChatID = r.TelegramChatID
	}
}

// UpdateSettingsRequest частичное обновление настроек бронирования
type UpdateSettingsRequest struct {
	RescheduleDeadlineHours *int
	WorkdayStart            *string
	WorkdayEnd              *string
	SlotStepMinutes         *int
	MinBookingNoticeMinutes *int
	AdvanceBookingDays      *int
}

// Response модели

// MasterResponse публичный профиль мастера
type MasterResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone,omitempty"`
	Specialty   *string   `json:"specialty,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	Location    *string   `json:"location,omitempty"`
	BookingSlug string    `json:"bookingSlug"`
	HasTelegram bool      `json:"hasTelegram"`
	HasPayouts  bool      `json:"hasPayoutAccount"`
	Settings    Settings  `json:"settings"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Settings настройки бронирования
type Settings struct {
	RescheduleDeadlineHours int    `json:"rescheduleDeadlineHours"`
	WorkdayStart            string `json:"workdayStart"`
	WorkdayEnd              string `json:"workdayEnd"`
	SlotStepMinutes         int    `json:"slotStepMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"`
}

// AuthResponse токен сессии и профиль
type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Master    *MasterResponse `json:"master"`
}

// FromDomainSettings конвертирует настройки в DTO
func FromDomainSettings(s domain.BookingSettings) Settings {
	return Settings{
		RescheduleDeadlineHours: s.RescheduleDeadlineHours,
		WorkdayStart:            s.WorkdayStart.String(),
		WorkdayEnd:              s.WorkdayEnd.String(),
		SlotStepMinutes:         s.SlotStepMinutes,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}
}

// FromDomainMaster конвертирует domain модель в DTO
func FromDomainMaster(m *domain.Master) *MasterResponse {
	if m == nil {
		return nil
	}
	return &MasterResponse{
		ID:          m.ID,
		Email:       m.Email,
		Name:        m.Name,
		Phone:       m.Phone,
		Specialty:   m.Specialty,
		Bio:         m.Bio,
		PhotoURL:    m.PhotoURL,
		Location:    m.Location,
		BookingSlug: m.BookingSlug,
		HasTelegram: m.HasTelegram(),
		HasPayouts:  m.HasPayoutAccount(),
		Settings:    FromDomainSettings(m.Settings),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
