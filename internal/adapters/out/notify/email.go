// Package notify implements the best-effort notification side channels:
// SMTP email and webhook push. Both are fire-and-forget from the dispatcher's
// point of view; a failure here never fails the dispatch.
package notify

import (
	"context"
	"fmt"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"

	gomail "gopkg.in/gomail.v2"
)

// AddressResolver maps a courier id to an email address. The courier profile
// lives in another service, so resolution is injected rather than read from
// the local store.
type AddressResolver func(ctx context.Context, courierID kernel.UUID) (string, error)

// mailDialer is the slice of gomail.Dialer the sender needs.
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPEmailSender delivers notifications over SMTP.
type SMTPEmailSender struct {
	dialer  mailDialer
	from    string
	resolve AddressResolver
}

// NewSMTPEmailSender creates an email sender backed by an SMTP server.
func NewSMTPEmailSender(host string, port int, username, password, from string,
	resolve AddressResolver,
) (*SMTPEmailSender, error) {
	if from == "" {
		return nil, fmt.Errorf("sender address is required")
	}
	if resolve == nil {
		return nil, fmt.Errorf("address resolver is required")
	}

	return &SMTPEmailSender{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		resolve: resolve,
	}, nil
}

// Send emails the notification to the courier's resolved address.
func (s *SMTPEmailSender) Send(ctx context.Context, courierID kernel.UUID, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	address, err := s.resolve(ctx, courierID)
	if err != nil {
		return fmt.Errorf("resolve address for courier %s: %w", courierID.String(), err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", address)
	m.SetHeader("Subject", n.Title())
	m.SetBody("text/plain", n.Message())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to courier %s: %w", courierID.String(), err)
	}

	return nil
}
