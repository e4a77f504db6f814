package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"
)

type LoginUserUseCase struct {
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	accessTokenTTL time.Duration
}

func NewLoginUserUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, accessTokenTTL time.Duration) *LoginUserUseCase {
	return &LoginUserUseCase{userRepo: userRepo, tokenSvc: tokenSvc, accessTokenTTL: accessTokenTTL}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (*domain.User, string, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    domain.NormalizeEmail(email),
	})
	ucLogger.Info("Use case started: user login attempt", nil)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed while finding user by email", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}

	// Одна и та же ошибка для "нет пользователя" и "неверный пароль"
	if user == nil || !user.CheckPassword(password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}

	ucLogger.Info("Use case finished: user logged in successfully", port.Fields{"user_id": user.ID.String()})
	return user, token, nil
}
