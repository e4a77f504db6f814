package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"
)

// VerifyOTPUseCase проверяет код и входит (или регистрирует) пользователя по email/телефону.
type VerifyOTPUseCase struct {
	otpRepo        port.OTPRepositoryPort
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
	now            func() time.Time
}

func NewVerifyOTPUseCase(otpRepo port.OTPRepositoryPort, userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *VerifyOTPUseCase {
	return &VerifyOTPUseCase{
		otpRepo:        otpRepo,
		userRepo:       userRepo,
		tokenSvc:       tokenSvc,
		accessTokenTTL: accessTokenTTL,
		now:            time.Now,
	}
}

func (uc *VerifyOTPUseCase) Execute(ctx context.Context, destination, code string) (*domain.User, string, error) {
	channel := domain.ChannelForDestination(destination)
	destination = domain.NormalizeDestination(channel, destination)
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "VerifyOTP",
		"channel":  channel,
	})

	otp, err := uc.otpRepo.FindLatest(ctx, destination)
	if err != nil {
		ucLogger.Error("Repository failed to load verification code", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}
	if otp == nil || !otp.Usable(uc.now()) {
		ucLogger.Warn("No usable verification code", nil)
		return nil, "", domain.ErrInvalidOTP
	}
	if !otp.Matches(code) {
		if err := uc.otpRepo.IncrementAttempts(ctx, otp.ID); err != nil {
			ucLogger.Error("Failed to count failed attempt", err, nil)
		}
		ucLogger.Warn("Wrong verification code", port.Fields{"attempts": otp.Attempts + 1})
		return nil, "", domain.ErrInvalidOTP
	}
	// код одноразовый
	if err := uc.otpRepo.Delete(ctx, otp.ID); err != nil {
		ucLogger.Error("Failed to consume verification code", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}

	user, err := uc.findOrCreate(ctx, channel, destination)
	if err != nil {
		ucLogger.Error("Failed to resolve user for verified destination", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: destination verified", port.Fields{"user_id": user.ID.String()})
	return user, token, nil
}

func (uc *VerifyOTPUseCase) findOrCreate(ctx context.Context, channel, destination string) (*domain.User, error) {
	var user *domain.User
	var err error
	if channel == domain.ChannelEmail {
		user, err = uc.userRepo.FindByEmail(ctx, destination)
	} else {
		user, err = uc.userRepo.FindByPhone(ctx, destination)
	}
	if err != nil {
		return nil, err
	}

	if user == nil {
		if channel == domain.ChannelEmail {
			user = domain.NewPasswordlessUser(destination, "", "", domain.ProviderOTP)
		} else {
			user = domain.NewPasswordlessUser("", destination, "", domain.ProviderOTP)
		}
		return user, uc.userRepo.Create(ctx, user)
	}

	if !user.IsVerified {
		if err := uc.userRepo.MarkVerified(ctx, user.ID); err != nil {
			return nil, err
		}
		user.IsVerified = true
	}
	return user, nil
}
