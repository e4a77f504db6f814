package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"
)

// OTPSettings - длина и срок жизни одноразового кода.
type OTPSettings struct {
	Length int
	TTL    time.Duration
}

// RequestOTPUseCase выдает одноразовый код и отправляет его по email или SMS.
type RequestOTPUseCase struct {
	otpRepo  port.OTPRepositoryPort
	email    port.EmailSenderPort // nil - канал не настроен
	sms      port.SMSSenderPort   // nil - канал не настроен
	settings OTPSettings
	now      func() time.Time
}

func NewRequestOTPUseCase(otpRepo port.OTPRepositoryPort, email port.EmailSenderPort, sms port.SMSSenderPort, settings OTPSettings) *RequestOTPUseCase {
	return &RequestOTPUseCase{otpRepo: otpRepo, email: email, sms: sms, settings: settings, now: time.Now}
}

func (uc *RequestOTPUseCase) Execute(ctx context.Context, channel, destination string) error {
	if channel == "" {
		channel = domain.ChannelForDestination(destination)
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RequestOTP",
		"channel":  channel,
	})

	if domain.NormalizeDestination(channel, destination) == "" {
		return domain.NewValidationError("destination is required", "destination")
	}

	switch {
	case channel != domain.ChannelEmail && channel != domain.ChannelSMS:
		return domain.NewValidationError("channel must be email or sms", "channel")
	case channel == domain.ChannelEmail && uc.email == nil, channel == domain.ChannelSMS && uc.sms == nil:
		ucLogger.Warn("OTP requested for a channel without provider", nil)
		return domain.ErrChannelNotConfigured
	}

	code, plain, err := domain.NewOTPCode(channel, destination, uc.settings.Length, uc.settings.TTL, uc.now().UTC())
	if err != nil {
		ucLogger.Error("Failed to generate verification code", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}
	if err := uc.otpRepo.Save(ctx, code); err != nil {
		ucLogger.Error("Repository failed to save verification code", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}

	text := fmt.Sprintf("Your Addisnest verification code is %s. It expires in %d minutes.", plain, int(uc.settings.TTL.Minutes()))
	if channel == domain.ChannelEmail {
		err = uc.email.SendEmail(ctx, port.EmailMessage{
			ToEmail:   code.Destination,
			Subject:   "Your Addisnest verification code",
			PlainText: text,
			HTML:      fmt.Sprintf("<p>Your Addisnest verification code is <strong>%s</strong>.</p>", plain),
		})
	} else {
		err = uc.sms.SendSMS(ctx, code.Destination, text)
	}
	if err != nil {
		// код без доставки бесполезен, удаляем его
		if delErr := uc.otpRepo.Delete(ctx, code.ID); delErr != nil {
			ucLogger.Warn("Failed to remove undelivered code", port.Fields{"reason": delErr.Error()})
		}
		ucLogger.Error("Failed to deliver verification code", err, nil)
		return fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: verification code sent", nil)
	return nil
}
