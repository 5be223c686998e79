package mailer

import (
	"context"
	"errors"
	"strings"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

var ErrMailgunNotConfigured = errors.New("mailgun domain, api key and sender are required")

// Mailgun sends board notifications through one reusable client. Every
// message is tagged so Mailgun analytics can separate them by template.
type Mailgun struct {
	From   string
	Tags   []string
	client *mg.MailgunImpl
}

// NewMailgun builds the client. apiBase may be empty (US region) or e.g.
// mg.APIBaseEU.
func NewMailgun(domain, apiKey, from, apiBase string) (*Mailgun, error) {
	if domain == "" || apiKey == "" || from == "" {
		return nil, ErrMailgunNotConfigured
	}
	client := mg.NewMailgun(domain, apiKey)
	if apiBase = strings.TrimSpace(apiBase); apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{From: from, Tags: []string{"clubhouse"}, client: client}, nil
}

// Send delivers one message. The caller bounds ctx; html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.From, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if len(m.Tags) > 0 {
		if err := msg.AddTag(m.Tags...); err != nil {
			return err
		}
	}
	_, _, err := m.client.Send(ctx, msg)
	return err
}

var _ Sender = (*Mailgun)(nil)
