package update_master_profile

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

// UpdateProfileRequest HTTP request model, отсутствующие поля не меняются
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Specialty       *string `json:"specialty,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	PhotoURL        *string `json:"photoUrl,omitempty"`
	Location        *string `json:"location,omitempty"`
	StripeConnectID *string `json:"stripeConnectId,omitempty"`
	TelegramChatID  *int64  `json:"telegramChatId,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateProfileRequest) ToServiceRequest() *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		Name:            r.Name,
		Phone:           r.Phone,
		Specialty:       r.Specialty,
		Bio:             r.Bio,
		PhotoURL:        r.PhotoURL,
		Location:        r.Location,
		StripeConnectID: r.StripeConnectID,
		TelegramChatID:  r.TelegramChatID,
	}
}
