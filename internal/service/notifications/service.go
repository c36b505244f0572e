package notifications

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/email"
	"github.com/m04kA/SMC-SlottaService/internal/integrations/telegram"
)

const (
	defaultMaxRetries  = 3
	defaultSendTimeout = 30 * time.Second
)

// Service рассылает уведомления о бронированиях в фоне
// Ошибки доставки только логируются и не влияют на вызывающий код
type Service struct {
	email    EmailSender
	telegram TelegramSender
	logger   Logger

	maxRetries  uint64
	initialGap  time.Duration
	sendTimeout time.Duration

	wg sync.WaitGroup
}

// NewService создает сервис уведомлений, telegram может быть nil
func NewService(emailSender EmailSender, telegramSender TelegramSender, logger Logger) *Service {
	return &Service{
		email:       emailSender,
		telegram:    telegramSender,
		logger:      logger,
		maxRetries:  defaultMaxRetries,
		initialGap:  500 * time.Millisecond,
		sendTimeout: defaultSendTimeout,
	}
}

// NotifyBookingCreated подтверждение клиенту и сообщение мастеру о новой записи
func (s *Service) NotifyBookingCreated(_ context.Context, b *domain.Booking, m *domain.Master, c *domain.Client) {
	when := formatWhen(b)

	s.sendEmail(email.Message{
		ToEmail:   c.Email,
		ToName:    c.Name,
		Subject:   fmt.Sprintf("Booking confirmed: %s", b.ServiceName),
		PlainText: clientConfirmationText(b, m, when),
		HTML:      clientConfirmationHTML(b, m, when),
	})

	s.sendEmail(email.Message{
		ToEmail:   m.Email,
		ToName:    m.Name,
		Subject:   fmt.Sprintf("New booking: %s, %s", b.ServiceName, when),
		PlainText: masterNewBookingText(b, c, when),
	})

	s.sendTelegram(m, fmt.Sprintf(
		"📅 <b>Новая запись</b>\n%s\n%s\nКлиент: %s\nДепозит: €%s",
		html.EscapeString(b.ServiceName), when, html.EscapeString(c.Name), b.DepositAmount.StringFixed(2),
	))
}

// NotifyNoShow сообщает мастеру о компенсации за неявку
func (s *Service) NotifyNoShow(_ context.Context, b *domain.Booking, m *domain.Master, c *domain.Client, masterShare, clientShare decimal.Decimal) {
	when := formatWhen(b)

	s.sendEmail(email.Message{
		ToEmail: m.Email,
		ToName:  m.Name,
		Subject: fmt.Sprintf("No-show compensation: €%s", masterShare.StringFixed(2)),
		PlainText: fmt.Sprintf(
			"%s did not show up for %s on %s.\nDeposit captured: €%s\nYour compensation: €%s\nCredited to client wallet: €%s\n",
			c.Name, b.ServiceName, when,
			b.DepositAmount.StringFixed(2), masterShare.StringFixed(2), clientShare.StringFixed(2),
		),
	})

	s.sendTelegram(m, fmt.Sprintf(
		"⚠️ <b>Неявка</b>\n%s, %s\nКлиент: %s\nКомпенсация: €%s",
		html.EscapeString(b.ServiceName), when, html.EscapeString(c.Name), masterShare.StringFixed(2),
	))
}

// NotifyBookingCancelled сообщает мастеру об отмене записи
func (s *Service) NotifyBookingCancelled(_ context.Context, b *domain.Booking, m *domain.Master, c *domain.Client) {
	when := formatWhen(b)
	reason := "-"
	if b.CancellationReason != nil && *b.CancellationReason != "" {
		reason = *b.CancellationReason
	}

	s.sendEmail(email.Message{
		ToEmail:   m.Email,
		ToName:    m.Name,
		Subject:   fmt.Sprintf("Booking cancelled: %s, %s", b.ServiceName, when),
		PlainText: fmt.Sprintf("%s cancelled %s on %s.\nReason: %s\n", c.Name, b.ServiceName, when, reason),
	})

	s.sendTelegram(m, fmt.Sprintf("❌ <b>Отмена</b>\n%s, %s\nКлиент: %s\nПричина: %s",
		html.EscapeString(b.ServiceName), when, html.EscapeString(c.Name), html.EscapeString(reason)))
}

// NotifyPayout сообщает мастеру о выплате
func (s *Service) NotifyPayout(_ context.Context, m *domain.Master, amount decimal.Decimal) {
	s.sendEmail(email.Message{
		ToEmail:   m.Email,
		ToName:    m.Name,
		Subject:   fmt.Sprintf("Payout sent: €%s", amount.StringFixed(2)),
		PlainText: fmt.Sprintf("Your weekly payout of €%s is on its way.\n", amount.StringFixed(2)),
	})

	s.sendTelegram(m, fmt.Sprintf("💶 Выплата €%s отправлена", amount.StringFixed(2)))
}

// Wait дожидается отправки всех запущенных уведомлений (graceful shutdown)
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) sendEmail(msg email.Message) {
	if s.email == nil || msg.ToEmail == "" {
		return
	}
	s.dispatch("email to "+msg.ToEmail, func(ctx context.Context) error {
		err := s.email.Send(ctx, msg)
		if errors.Is(err, email.ErrInvalidMessage) {
			return backoff.Permanent(err)
		}
		return err
	})
}

func (s *Service) sendTelegram(m *domain.Master, text string) {
	if s.telegram == nil || !m.HasTelegram() {
		return
	}
	chatID := *m.TelegramChatID
	s.dispatch(fmt.Sprintf("telegram to chat %d", chatID), func(_ context.Context) error {
		err := s.telegram.SendMessage(chatID, text)
		if errors.Is(err, telegram.ErrNoChat) {
			return backoff.Permanent(err)
		}
		return err
	})
}

// dispatch запускает отправку в отдельной горутине с экспоненциальными повторами
// Контекст запроса не используется: уведомление должно пережить завершение HTTP запроса
func (s *Service) dispatch(what string, send func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
		defer cancel()

		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = s.initialGap
		policy.MaxElapsedTime = 0

		err := backoff.RetryNotify(
			func() error { return send(ctx) },
			backoff.WithContext(backoff.WithMaxRetries(policy, s.maxRetries), ctx),
			func(err error, next time.Duration) {
				s.logger.Warn("Notifications: %s failed, retry in %s: %v", what, next, err)
			},
		)
		if err != nil {
			s.logger.Error("Notifications: %s gave up: %v", what, err)
			return
		}
		s.logger.Info("Notifications: %s delivered", what)
	}()
}

func formatWhen(b *domain.Booking) string {
	return fmt.Sprintf("%s %s", b.BookingDate.Format(domain.DateFormat), b.StartTime)
}
