package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// MockGateway используется, когда платежи выключены
// Все удержания сразу считаются авторизованными
type MockGateway struct {
	log Logger
}

func NewMockGateway(log Logger) *MockGateway {
	return &MockGateway{log: log}
}

func (g *MockGateway) AuthorizeHold(_ context.Context, req HoldRequest) (*Hold, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, req.Amount)
	}

	id := "mock_pi_" + uuid.NewString()
	g.log.Info("[mock payments] hold %s for %s EUR (booking %s)", id, money.Round(req.Amount).StringFixed(2), req.BookingReference)

	return &Hold{
		IntentID:     id,
		ClientSecret: id + "_secret",
		Authorized:   true,
	}, nil
}

func (g *MockGateway) CaptureHold(_ context.Context, intentID string, amount decimal.Decimal) (*Capture, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	g.log.Info("[mock payments] capture %s: %s EUR", intentID, money.Round(amount).StringFixed(2))
	return &Capture{IntentID: intentID, Amount: money.Round(amount)}, nil
}

func (g *MockGateway) ReleaseHold(_ context.Context, intentID string) error {
	g.log.Info("[mock payments] release %s", intentID)
	return nil
}

func (g *MockGateway) Payout(_ context.Context, accountID string, amount decimal.Decimal, reference string) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	id := "mock_tr_" + uuid.NewString()
	g.log.Info("[mock payments] payout %s EUR to %q (%s): %s", money.Round(amount).StringFixed(2), accountID, reference, id)
	return id, nil
}
