package create_service

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/offerings/models"
)

// CreateServiceRequest HTTP request model
type CreateServiceRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          *bool   `json:"active,omitempty"`
	NewClientsOnly  bool    `json:"newClientsOnly"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateServiceRequest) ToServiceRequest() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Active:          r.Active,
		NewClientsOnly:  r.NewClientsOnly,
	}
}
