package postgres_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OTPRepository хранит одноразовые коды, по одному на адрес назначения
type OTPRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) (*OTPRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &OTPRepository{pool: pool}, nil
}

// Save заменяет предыдущий код для того же адреса (счетчик попыток сбрасывается)
func (r *OTPRepository) Save(ctx context.Context, code *domain.OTPCode) error {
	query := `INSERT INTO otp_codes (id, destination, channel, code_hash, attempts, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (destination) DO UPDATE SET
			id = EXCLUDED.id, channel = EXCLUDED.channel, code_hash = EXCLUDED.code_hash,
			attempts = EXCLUDED.attempts, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`
	_, err := r.pool.Exec(ctx, query, code.ID, code.Destination, code.Channel, code.CodeHash,
		code.Attempts, code.ExpiresAt, code.CreatedAt)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to save OTP code", err, port.Fields{
			"component": "OTPRepository",
			"channel":   code.Channel,
		})
		return fmt.Errorf("failed to save otp code: %w", err)
	}
	return nil
}

func (r *OTPRepository) FindLatest(ctx context.Context, destination string) (*domain.OTPCode, error) {
	query := `SELECT id, destination, channel, code_hash, attempts, expires_at, created_at
		FROM otp_codes WHERE destination = $1`
	var c domain.OTPCode
	err := r.pool.QueryRow(ctx, query, destination).Scan(
		&c.ID, &c.Destination, &c.Channel, &c.CodeHash, &c.Attempts, &c.ExpiresAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find otp code: %w", err)
	}
	return &c, nil
}

func (r *OTPRepository) IncrementAttempts(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `UPDATE otp_codes SET attempts = attempts + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to increment otp attempts: %w", err)
	}
	return nil
}

func (r *OTPRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM otp_codes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete otp code: %w", err)
	}
	return nil
}

func (r *OTPRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM otp_codes WHERE expires_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otp codes: %w", err)
	}
	return tag.RowsAffected(), nil
}
