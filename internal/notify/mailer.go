package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// sendFunc matches smtp.SendMail; tests substitute it to capture the outbound
// message without a real SMTP server.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers lifecycle events to the passenger's email address over SMTP.
type Mailer struct {
	addr string
	auth smtp.Auth
	from string
	send sendFunc
}

// NewMailer constructs a Mailer for the given SMTP endpoint.
// user doubles as the From address, matching how the account is provisioned.
func NewMailer(host, port, user, pass string) *Mailer {
	return &Mailer{
		addr: host + ":" + port,
		auth: smtp.PlainAuth("", user, pass, host),
		from: user,
		send: smtp.SendMail,
	}
}

// Notify emails the passenger about the lifecycle event.
func (m *Mailer) Notify(ctx context.Context, event domain.Event) error {
	// smtp.SendMail has no context support; honor cancellation up front and
	// let the dial timeout bound the rest.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("notify.Mailer.Notify: %w", err)
	}

	to := event.Passenger.Email
	msg := buildMessage(m.from, to, Subject(event), Body(event))

	if err := m.send(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("notify.Mailer.Notify: %w", err)
	}
	return nil
}

// buildMessage assembles a minimal RFC 5322 message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
