package payments

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlottaService/pkg/logger"
)

func TestMockGateway(t *testing.T) {
	g := NewMockGateway(logger.NewNop())
	ctx := context.Background()

	hold, err := g.AuthorizeHold(ctx, HoldRequest{BookingReference: "booking-1", Amount: decimal.RequireFromString("42.25")})
	require.NoError(t, err)
	assert.True(t, hold.Authorized)
	assert.True(t, strings.HasPrefix(hold.IntentID, "mock_pi_"))

	capture, err := g.CaptureHold(ctx, hold.IntentID, decimal.RequireFromString("42.254"))
	require.NoError(t, err)
	assert.Equal(t, "42.25", capture.Amount.StringFixed(2))

	assert.NoError(t, g.ReleaseHold(ctx, hold.IntentID))

	_, err = g.AuthorizeHold(ctx, HoldRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = g.Payout(ctx, "", decimal.NewFromInt(-1), "weekly")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
