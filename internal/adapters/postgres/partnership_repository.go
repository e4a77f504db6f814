package postgres_adapter

import (
	"addisnest-service/internal/contextkeys"
	"addisnest-service/internal/core/domain"
	"addisnest-service/internal/core/port"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partnershipColumns = `id, company_name, contact_name, email, phone, partnership_type, message, status, created_at, updated_at`

type PartnershipRepository struct {
	pool *pgxpool.Pool
}

func NewPartnershipRepository(pool *pgxpool.Pool) (*PartnershipRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PartnershipRepository{pool: pool}, nil
}

func (r *PartnershipRepository) Create(ctx context.Context, req *domain.PartnershipRequest) error {
	query := `INSERT INTO partnership_requests (` + partnershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query, req.ID, req.CompanyName, req.ContactName, req.Email, req.Phone,
		req.PartnershipType, req.Message, req.Status, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert partnership request", err, port.Fields{
			"component": "PartnershipRepository",
			"method":    "Create",
		})
		return fmt.Errorf("failed to insert partnership request: %w", err)
	}
	return nil
}

func (r *PartnershipRepository) List(ctx context.Context, filter domain.PartnershipFilter) ([]domain.PartnershipRequest, int64, error) {
	qb := newQueryBuilder()
	if filter.Status != "" {
		qb.addCondition("%s = $%d", "status", filter.Status)
	}
	where, args := qb.build()

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM partnership_requests "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count partnership requests: %w", err)
	}

	dataQuery := fmt.Sprintf("SELECT %s FROM partnership_requests %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		partnershipColumns, where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, dataQuery, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query partnership requests: %w", err)
	}
	defer rows.Close()

	requests := make([]domain.PartnershipRequest, 0, filter.Limit)
	for rows.Next() {
		req, err := scanPartnership(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan partnership request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error during partnership requests iteration: %w", err)
	}
	return requests, total, nil
}

func (r *PartnershipRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.PartnershipRequest, error) {
	query := `UPDATE partnership_requests SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + partnershipColumns
	req, err := scanPartnership(r.pool.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update partnership request: %w", err)
	}
	return req, nil
}

func (r *PartnershipRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM partnership_requests WHERE status = $1`, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count partnership requests: %w", err)
	}
	return count, nil
}

func scanPartnership(row pgx.Row) (*domain.PartnershipRequest, error) {
	var p domain.PartnershipRequest
	err := row.Scan(&p.ID, &p.CompanyName, &p.ContactName, &p.Email, &p.Phone,
		&p.PartnershipType, &p.Message, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
