package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Gateway delivers a formatted message to a set of recipients. Delivery is
// best-effort: callers are expected to log failures, not surface them.
type Gateway interface {
	Send(subject, body, from string, to []string) error
}

type SMTPGateway struct {
	dialer *gomail.Dialer
}

func NewSMTPGateway(host string, port int, username, password string) *SMTPGateway {
	return &SMTPGateway{
		dialer: gomail.NewDialer(host, port, username, password),
	}
}

func (g *SMTPGateway) Send(subject, body, from string, to []string) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients given")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := g.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
