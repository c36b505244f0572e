package register

import (
	"github.com/m04kA/SMC-SlottaService/internal/service/masters/models"
)

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RegisterRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:     r.Email,
		Password:  r.Password,
		Name:      r.Name,
		Phone:     r.Phone,
		Specialty: r.Specialty,
	}
}
