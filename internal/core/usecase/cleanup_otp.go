package usecase

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/port"
	"context"
	"fmt"
	"time"
)

// CleanupOTPUseCase - фоновая задача планировщика.
type CleanupOTPUseCase struct {
	otpRepo port.OTPRepositoryPort
	now     func() time.Time
}

func NewCleanupOTPUseCase(otpRepo port.OTPRepositoryPort) *CleanupOTPUseCase {
	return &CleanupOTPUseCase{otpRepo: otpRepo, now: time.Now}
}

func (uc *CleanupOTPUseCase) Execute(ctx context.Context) (int64, error) {
	removed, err := uc.otpRepo.DeleteExpired(ctx, uc.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired codes: %w", err)
	}
	if removed > 0 {
		contextkeys.LoggerFromContext(ctx).Info("Expired verification codes removed", port.Fields{"use_case": "CleanupOTP", "removed": removed})
	}
	return removed, nil
}
