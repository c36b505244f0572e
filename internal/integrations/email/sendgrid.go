package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender отправка писем через SendGrid
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	log       Logger
}

func NewSendGridSender(apiKey, fromEmail, fromName string, log Logger) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		log:       log,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrSend, response.StatusCode, response.Body)
	}

	s.log.Info("Email sent to %s: %q", msg.ToEmail, msg.Subject)
	return nil
}

// MockSender пишет письма в лог, используется когда отправка выключена
type MockSender struct {
	log Logger
}

func NewMockSender(log Logger) *MockSender {
	return &MockSender{log: log}
}

func (s *MockSender) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	s.log.Info("[mock email] to=%s subject=%q", msg.ToEmail, msg.Subject)
	return nil
}

func (m Message) validate() error {
	if m.ToEmail == "" || m.Subject == "" {
		return fmt.Errorf("%w: recipient and subject are required", ErrInvalidMessage)
	}
	return nil
}
