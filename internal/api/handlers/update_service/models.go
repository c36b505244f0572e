package update_service

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/offerings/models"
)

// UpdateServiceRequest HTTP request model, отсутствующие поля не меняются
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"`
	NewClientsOnly  *bool    `json:"newClientsOnly,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateServiceRequest) ToServiceRequest() *models.UpdateServiceRequest {
	return &models.UpdateServiceRequest{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Active:          r.Active,
		NewClientsOnly:  r.NewClientsOnly,
	}
}
