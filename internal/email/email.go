package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Message is an email to be sent.
type Message struct {
	To      []string
	From    string
	Subject string
	HTML    string
	Text    string
}

// Sender sends email messages.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}

	return nil
}

// NoopSender logs emails instead of sending them. Used when no API key is
// configured.
type NoopSender struct{}

func (s *NoopSender) Send(_ context.Context, msg *Message) error {
	zap.L().Info("email send (noop)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)

	return nil
}

// NewSender picks the Resend sender when an API key is present, the noop
// sender otherwise.
func NewSender(apiKey string) Sender {
	if apiKey == "" {
		return &NoopSender{}
	}

	return NewResendSender(apiKey)
}
