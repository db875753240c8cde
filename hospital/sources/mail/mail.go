// hospital/sources/mail/mail.go
package mail

import (
	"context"
	"fmt"

	"hospital/hospital/config"
	"hospital/hospital/utils/logging"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender returns a SendGrid sender, or a log-only one when no API key is set.
func NewSender(cfg config.Config) Sender {
	if cfg.SendGridAPIKey == "" {
		logging.AppLogger.Warn("SENDGRID_API_KEY not set, emails will only be logged")
		return LogSender{}
	}
	return NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
}

type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func NewSendGridSender(apiKey, fromAddr, fromName string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(fromName, fromAddr),
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	to := sgmail.NewEmail(msg.ToName, msg.To)
	message := sgmail.NewSingleEmail(s.from, msg.Subject, to, msg.Text, msg.HTML)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", response.StatusCode, response.Body)
	}
	logging.AppLogger.Info("email sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("status", response.StatusCode),
	)
	return nil
}

type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	logging.AppLogger.Info("email not sent, no provider configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
