package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/m04kA/SMC-SlottaService/pkg/money"
)

// StripeGateway удержания депозитов через PaymentIntent с ручным списанием
type StripeGateway struct {
	api      *client.API
	currency string
	log      Logger
}

// NewStripeGateway создает клиента Stripe
func NewStripeGateway(secretKey, currency string, log Logger) *StripeGateway {
	return &StripeGateway{
		api:      client.New(secretKey, nil),
		currency: currency,
		log:      log,
	}
}

// AuthorizeHold создает PaymentIntent с capture_method=manual
// Без способа оплаты намерение ждет подтверждения клиентом (Authorized=false)
func (g *StripeGateway) AuthorizeHold(ctx context.Context, req HoldRequest) (*Hold, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, req.Amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(money.ToCents(req.Amount)),
		Currency:      stripe.String(g.currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Description:   stripe.String("Slotta no-show protection " + req.BookingReference),
	}
	params.Context = ctx
	params.AddMetadata("booking", req.BookingReference)
	if req.CustomerEmail != "" {
		params.ReceiptEmail = stripe.String(req.CustomerEmail)
	}
	if req.PaymentMethodID != nil {
		params.PaymentMethod = req.PaymentMethodID
		params.Confirm = stripe.Bool(true)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", ErrProvider, err)
	}

	g.log.Info("Payment hold created: intent=%s status=%s booking=%s", intent.ID, intent.Status, req.BookingReference)

	return &Hold{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		Authorized:   intent.Status == stripe.PaymentIntentStatusRequiresCapture,
	}, nil
}

// CaptureHold списывает удержанную сумму (неявка клиента)
func (g *StripeGateway) CaptureHold(ctx context.Context, intentID string, amount decimal.Decimal) (*Capture, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	params := &stripe.PaymentIntentCaptureParams{
		AmountToCapture: stripe.Int64(money.ToCents(amount)),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.Capture(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: capture payment intent %s: %v", ErrProvider, intentID, err)
	}

	return &Capture{
		IntentID: intent.ID,
		Amount:   money.FromCents(intent.AmountReceived),
	}, nil
}

// ReleaseHold отменяет удержание
func (g *StripeGateway) ReleaseHold(ctx context.Context, intentID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	if _, err := g.api.PaymentIntents.Cancel(intentID, params); err != nil {
		return fmt.Errorf("%w: cancel payment intent %s: %v", ErrProvider, intentID, err)
	}
	return nil
}

// Payout переводит сумму на подключенный аккаунт мастера
func (g *StripeGateway) Payout(ctx context.Context, accountID string, amount decimal.Decimal, reference string) (string, error) {
	if accountID == "" {
		return "", ErrNoPayoutAccount
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	params := &stripe.TransferParams{
		Amount:        stripe.Int64(money.ToCents(amount)),
		Currency:      stripe.String(g.currency),
		Destination:   stripe.String(accountID),
		TransferGroup: stripe.String(reference),
	}
	params.Context = ctx

	transfer, err := g.api.Transfers.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: create transfer: %v", ErrProvider, err)
	}

	return transfer.ID, nil
}
