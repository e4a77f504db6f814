package twilio_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSSender отправляет SMS через Twilio.
type SMSSender struct {
	api       messageCreator
	fromPhone string
}

func NewSMSSender(accountSID, authToken, fromPhone string) (*SMSSender, error) {
	if accountSID == "" || authToken == "" || fromPhone == "" {
		return nil, fmt.Errorf("twilio adapter: account sid, auth token and sender phone are required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSSender{api: client.Api, fromPhone: fromPhone}, nil
}

func (s *SMSSender) SendSMS(ctx context.Context, to, body string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "TwilioSMSSender"})

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.fromPhone)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		logger.Error("Failed to send sms via twilio", err, nil)
		return fmt.Errorf("failed to send sms via twilio: %w", err)
	}

	fields := port.Fields{}
	if msg != nil && msg.Sid != nil {
		fields["sid"] = *msg.Sid
	}
	logger.Info("SMS sent", fields)
	return nil
}
