package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"
)

type GoogleLoginUseCase struct {
	verifier       port.IdentityVerifierPort // nil - вход через Google не настроен
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewGoogleLoginUseCase(verifier port.IdentityVerifierPort, userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *GoogleLoginUseCase {
	return &GoogleLoginUseCase{verifier: verifier, userRepo: userRepo, tokenSvc: tokenSvc, accessTokenTTL: accessTokenTTL}
}

func (uc *GoogleLoginUseCase) Execute(ctx context.Context, idToken string) (*domain.User, string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GoogleLogin"})

	if uc.verifier == nil {
		return nil, "", domain.ErrProviderDisabled
	}

	identity, err := uc.verifier.Verify(ctx, idToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			return nil, "", domain.ErrInvalidCredentials
		}
		ucLogger.Error("Identity verification failed", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}
	ucLogger = ucLogger.WithFields(port.Fields{"email": identity.Email})

	user, err := uc.userRepo.FindByEmail(ctx, identity.Email)
	if err != nil {
		ucLogger.Error("Repository failed while finding user by email", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		user = domain.NewPasswordlessUser(identity.Email, "", identity.FullName, domain.ProviderGoogle)
		if err := uc.userRepo.Create(ctx, user); err != nil {
			ucLogger.Error("Repository failed to create google user", err, nil)
			return nil, "", fmt.Errorf("internal server error: %w", err)
		}
		ucLogger.Info("New user created from Google identity", port.Fields{"user_id": user.ID.String()})
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}
	return user, token, nil
}
