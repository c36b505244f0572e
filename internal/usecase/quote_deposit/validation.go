package quote_deposit

import (
	"fmt"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID == nil && (req.Price == nil || req.DurationMinutes == nil) {
		return fmt.Errorf("%w: either serviceId or price with durationMinutes is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	if req.Reliability != nil && *req.Reliability != "" && !domain.ClientReliability(*req.Reliability).IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownReliability, *req.Reliability)
	}

	return nil
}
