package models

import (
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/deposit"
	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// CreateClientRequest запрос на создание клиента (или получение существующего по email)
type CreateClientRequest struct {
	Email string
	Name  string
	Phone *string
}

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID                int64     `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Phone             *string   `json:"phone,omitempty"`
	TotalBookings     int       `json:"totalBookings"`
	CompletedBookings int       `json:"completedBookings"`
	NoShows           int       `json:"noShows"`
	Cancellations     int       `json:"cancellations"`
	Reliability       string    `json:"reliability"`
	RiskScore         int       `json:"riskScore"`
	WalletBalance     float64   `json:"walletBalance"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ClientListResponse ответ со списком клиентов
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:                c.ID,
		Email:             c.Email,
		Name:              c.Name,
		Phone:             c.Phone,
		TotalBookings:     c.TotalBookings,
		CompletedBookings: c.CompletedBookings,
		NoShows:           c.NoShows,
		Cancellations:     c.Cancellations,
		Reliability:       string(c.Reliability),
		RiskScore:         deposit.RiskScore(c.TotalBookings, c.NoShows, c.Cancellations),
		WalletBalance:     money.Float(c.WalletBalance),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// FromDomainClientList конвертирует список domain моделей в DTO
func FromDomainClientList(list []*domain.Client) *ClientListResponse {
	resp := &ClientListResponse{Clients: make([]ClientResponse, 0, len(list))}
	for _, c := range list {
		resp.Clients = append(resp.Clients, *FromDomainClient(c))
	}
	return resp
}
