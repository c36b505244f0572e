package models

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          *bool // по умолчанию true
	NewClientsOnly  bool
}

// UpdateServiceRequest частичное обновление услуги, nil = не менять
type UpdateServiceRequest struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *float64
	Active          *bool
	NewClientsOnly  *bool
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64     `json:"id"`
	MasterID        int64     `json:"masterId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	BaseDeposit     float64   `json:"baseDeposit"`
	Active          bool      `json:"active"`
	NewClientsOnly  bool      `json:"newClientsOnly"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.ServiceOffering) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		MasterID:        s.MasterID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           money.Float(s.Price),
		BaseDeposit:     money.Float(s.BaseDeposit),
		Active:          s.Active,
		NewClientsOnly:  s.NewClientsOnly,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(list []*domain.ServiceOffering) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(list))}
	for _, s := range list {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}
