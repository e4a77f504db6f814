package port

import "context"

// EmailMessage - письмо для отправки через почтового провайдера.
type EmailMessage struct {
	ToEmail   string
	ToName    string
	Subject   string
	PlainText string
	HTML      string
}

type EmailSenderPort interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type SMSSenderPort interface {
	SendSMS(ctx context.Context, to, body string) error
}
