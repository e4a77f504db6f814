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

const propertyColumns = `id, owner_id, title, description, property_type, offering_type,
	price, area, bedrooms, bathrooms, features, street, city, state, country,
	lat, lng, geo_cell, status, payment_status, promotion_type, images,
	views, likes, fingerprint, created_at, updated_at`

// PostgresPropertyStorage - реализация PropertyStoragePort для PostgreSQL
type PostgresPropertyStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresPropertyStorage(pool *pgxpool.Pool) (*PostgresPropertyStorage, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPropertyStorage{pool: pool}, nil
}

func (s *PostgresPropertyStorage) repoLogger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPropertyStorage",
		"method":    method,
	})
}

func (s *PostgresPropertyStorage) Create(ctx context.Context, record *domain.PropertyRecord) error {
	logger := s.repoLogger(ctx, "Create")
	lat, lng := coordinates(record.Location)

	query := `INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err := s.pool.Exec(ctx, query,
		record.ID, record.OwnerID, record.Title, record.Description, record.PropertyType, record.OfferingType,
		record.Price, record.Area, record.Bedrooms, record.Bathrooms, nonNilStrings(record.Features),
		record.Address.Street, record.Address.City, record.Address.State, record.Address.Country,
		lat, lng, record.GeoCell, record.Status, record.PaymentStatus, record.PromotionType,
		nonNilImages(record.Images), record.Views, record.Likes, record.Fingerprint, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		logger.Error("Failed to insert property", err, port.Fields{"property_id": record.ID})
		return fmt.Errorf("failed to insert property: %w", err)
	}
	logger.Debug("Property inserted", port.Fields{"property_id": record.ID})
	return nil
}

func (s *PostgresPropertyStorage) FindRecentDuplicate(ctx context.Context, probe domain.DuplicateProbe) (*domain.PropertyRecord, error) {
	// fingerprint покрыт индексом, остальные поля сверяем явно на случай коллизии
	query := `SELECT ` + propertyColumns + ` FROM properties
		WHERE owner_id = $1 AND fingerprint = $2 AND created_at >= $3
			AND btrim(title) = $4 AND price = $5 AND property_type = $6
		ORDER BY created_at DESC
		LIMIT 1`
	row := s.pool.QueryRow(ctx, query, probe.OwnerID, probe.Fingerprint, probe.Since, probe.Title, probe.Price, probe.PropertyType)
	record, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.repoLogger(ctx, "FindRecentDuplicate").Error("Duplicate lookup failed", err, port.Fields{"owner_id": probe.OwnerID})
		return nil, fmt.Errorf("duplicate lookup failed: %w", err)
	}
	return record, nil
}

func (s *PostgresPropertyStorage) FindByID(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	record, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.repoLogger(ctx, "FindByID").Error("Failed to find property", err, port.Fields{"property_id": id})
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return record, nil
}

func (s *PostgresPropertyStorage) IncrementViews(ctx context.Context, id uuid.UUID) (*domain.PropertyRecord, error) {
	query := `UPDATE properties SET views = views + 1 WHERE id = $1 RETURNING ` + propertyColumns
	record, err := scanProperty(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		s.repoLogger(ctx, "IncrementViews").Error("Failed to increment views", err, port.Fields{"property_id": id})
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	return record, nil
}

func (s *PostgresPropertyStorage) Update(ctx context.Context, record *domain.PropertyRecord) error {
	logger := s.repoLogger(ctx, "Update")
	lat, lng := coordinates(record.Location)

	query := `UPDATE properties SET
			title = $2, description = $3, property_type = $4, offering_type = $5,
			price = $6, area = $7, bedrooms = $8, bathrooms = $9, features = $10,
			street = $11, city = $12, state = $13, country = $14, lat = $15, lng = $16, geo_cell = $17,
			status = $18, payment_status = $19, promotion_type = $20, images = $21,
			fingerprint = $22, updated_at = $23
		WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query,
		record.ID, record.Title, record.Description, record.PropertyType, record.OfferingType,
		record.Price, record.Area, record.Bedrooms, record.Bathrooms, nonNilStrings(record.Features),
		record.Address.Street, record.Address.City, record.Address.State, record.Address.Country,
		lat, lng, record.GeoCell, record.Status, record.PaymentStatus, record.PromotionType,
		nonNilImages(record.Images), record.Fingerprint, record.UpdatedAt,
	)
	if err != nil {
		logger.Error("Failed to update property", err, port.Fields{"property_id": record.ID})
		return fmt.Errorf("failed to update property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (s *PostgresPropertyStorage) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		s.repoLogger(ctx, "Delete").Error("Failed to delete property", err, port.Fields{"property_id": id})
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// List выполняет COUNT и выборку страницы в одной транзакции, чтобы total совпадал со страницей
func (s *PostgresPropertyStorage) List(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, error) {
	logger := s.repoLogger(ctx, "List")
	where, args := applyFilters(query)

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		logger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	page := &domain.ListingPage{Records: []domain.PropertyRecord{}}
	countQuery := "SELECT COUNT(*) FROM properties " + where
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&page.Total); err != nil {
		logger.Error("Failed to count properties", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}
	if page.Total == 0 || int64(query.Skip()) >= page.Total {
		return page, nil
	}

	dataQuery := fmt.Sprintf("SELECT %s FROM properties %s %s LIMIT $%d OFFSET $%d",
		propertyColumns, where, orderClause(query), len(args)+1, len(args)+2)
	rows, err := tx.Query(ctx, dataQuery, append(args, query.Limit, query.Skip())...)
	if err != nil {
		logger.Error("Failed to query properties", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		record, err := scanProperty(rows)
		if err != nil {
			logger.Error("Failed to scan property row", err, nil)
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		page.Records = append(page.Records, *record)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error during properties iteration", err, nil)
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Debug("Properties page loaded", port.Fields{"found_on_page": len(page.Records), "total": page.Total})
	return page, nil
}

func (s *PostgresPropertyStorage) Stats(ctx context.Context) (*domain.PropertyStats, error) {
	logger := s.repoLogger(ctx, "Stats")
	stats := &domain.PropertyStats{
		ByStatus:    make(map[string]int64),
		ByPromotion: make(map[string]int64),
	}

	query := `SELECT status, promotion_type, payment_status, COUNT(*), COALESCE(SUM(views), 0)
		FROM properties GROUP BY status, promotion_type, payment_status`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Failed to aggregate properties", err, nil)
		return nil, fmt.Errorf("failed to aggregate properties: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status, promotion, payment string
		var count, views int64
		if err := rows.Scan(&status, &promotion, &payment, &count, &views); err != nil {
			return nil, fmt.Errorf("failed to scan property stats: %w", err)
		}
		stats.Total += count
		stats.TotalViews += views
		stats.ByStatus[status] += count
		stats.ByPromotion[promotion] += count
		if payment == domain.PaymentPending {
			stats.PendingPayments += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during property stats iteration: %w", err)
	}
	return stats, nil
}

func scanProperty(row pgx.Row) (*domain.PropertyRecord, error) {
	var r domain.PropertyRecord
	var lat, lng *float64
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.Title, &r.Description, &r.PropertyType, &r.OfferingType,
		&r.Price, &r.Area, &r.Bedrooms, &r.Bathrooms, &r.Features,
		&r.Address.Street, &r.Address.City, &r.Address.State, &r.Address.Country,
		&lat, &lng, &r.GeoCell, &r.Status, &r.PaymentStatus, &r.PromotionType, &r.Images,
		&r.Views, &r.Likes, &r.Fingerprint, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		r.Location = &domain.GeoPoint{Lat: *lat, Lng: *lng}
	}
	r.SyncFlatAddress()
	return &r, nil
}

func coordinates(p *domain.GeoPoint) (*float64, *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Lat, &p.Lng
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilImages(v []domain.PropertyImage) []domain.PropertyImage {
	if v == nil {
		return []domain.PropertyImage{}
	}
	return v
}
