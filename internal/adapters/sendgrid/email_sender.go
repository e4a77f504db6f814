package sendgrid_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type mailClient interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// EmailSender отправляет письма через SendGrid. В sandbox-режиме SendGrid принимает
// письмо, но не доставляет его.
type EmailSender struct {
	client    mailClient
	fromEmail string
	fromName  string
	sandbox   bool
}

func NewEmailSender(apiKey, fromEmail, fromName string, sandbox bool) (*EmailSender, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, fmt.Errorf("sendgrid adapter: api key and sender email are required")
	}
	return &EmailSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		sandbox:   sandbox,
	}, nil
}

func (s *EmailSender) SendEmail(ctx context.Context, msg port.EmailMessage) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "SendGridEmailSender",
		"subject":   msg.Subject,
	})

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.ToEmail)
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.PlainText, msg.HTML)
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		message.MailSettings = ms
	}

	resp, err := s.client.Send(message)
	if err != nil {
		logger.Error("Failed to send email via sendgrid", err, nil)
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		err := fmt.Errorf("sendgrid responded with status %d: %s", resp.StatusCode, resp.Body)
		logger.Error("SendGrid rejected the email", err, nil)
		return err
	}

	logger.Info("Email sent", port.Fields{"status_code": resp.StatusCode, "sandbox": s.sandbox})
	return nil
}
