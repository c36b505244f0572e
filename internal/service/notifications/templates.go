package notifications

import (
	"fmt"
	"html"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
)

func clientConfirmationText(b *domain.Booking, m *domain.Master, when string) string {
	return fmt.Sprintf(
		"Your booking with %s is confirmed.\nService: %s (%d min)\nWhen: %s\nNo-show protection deposit: €%s\n"+
			"Free rescheduling until %s.\n",
		m.Name, b.ServiceName, b.DurationMinutes, when,
		b.DepositAmount.StringFixed(2),
		b.RescheduleDeadline.Format("2006-01-02 15:04"),
	)
}

func clientConfirmationHTML(b *domain.Booking, m *domain.Master, when string) string {
	return fmt.Sprintf(
		"<p>Your booking with <strong>%s</strong> is confirmed.</p>"+
			"<ul><li>Service: %s (%d min)</li><li>When: %s</li><li>Deposit: €%s</li></ul>"+
			"<p>Free rescheduling until %s.</p>",
		html.EscapeString(m.Name), html.EscapeString(b.ServiceName), b.DurationMinutes, when,
		b.DepositAmount.StringFixed(2),
		b.RescheduleDeadline.Format("2006-01-02 15:04"),
	)
}

func masterNewBookingText(b *domain.Booking, c *domain.Client, when string) string {
	return fmt.Sprintf(
		"New booking from %s (%s).\nService: %s\nWhen: %s\nDeposit: €%s\nClient reliability: %s, risk score %d\n",
		c.Name, c.Email, b.ServiceName, when,
		b.DepositAmount.StringFixed(2), b.ClientReliability, b.RiskScore,
	)
}
