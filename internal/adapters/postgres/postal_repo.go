package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// PostalCodeRepo implements ports.PostalCodeRepository with pgx.
type PostalCodeRepo struct {
	db *DB
}

// NewPostalCodeRepo creates a new PostalCodeRepo.
func NewPostalCodeRepo(db *DB) *PostalCodeRepo {
	return &PostalCodeRepo{db: db}
}

const upsertPostalCode = `
	INSERT INTO postal_codes (code, latitude, longitude, city, state)
	VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
	ON CONFLICT (code) DO UPDATE
	SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude,
	    city = EXCLUDED.city, state = EXCLUDED.state, updated_at = now()
`

// UpsertBatch inserts many postal codes using pgx.Batch.
func (r *PostalCodeRepo) UpsertBatch(ctx context.Context, codes []domain.PostalCode) error {
	if len(codes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range codes {
		batch.Queue(upsertPostalCode, p.Code, p.Latitude, p.Longitude, p.City, p.State)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, p := range codes {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec %s: %w", p.Code, err)
		}
	}
	return nil
}

// GetByCode returns one postal code, or domain.ErrPostalCodeNotFound.
func (r *PostalCodeRepo) GetByCode(ctx context.Context, code string) (*domain.PostalCode, error) {
	var p domain.PostalCode
	err := r.db.Pool.QueryRow(ctx, `
		SELECT code, latitude, longitude, COALESCE(city, ''), COALESCE(state, '')
		FROM postal_codes WHERE code = $1
	`, code).Scan(&p.Code, &p.Latitude, &p.Longitude, &p.City, &p.State)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostalCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// All returns the whole table, ordered by code.
func (r *PostalCodeRepo) All(ctx context.Context) ([]domain.PostalCode, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT code, latitude, longitude, COALESCE(city, ''), COALESCE(state, '')
		FROM postal_codes ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []domain.PostalCode
	for rows.Next() {
		var p domain.PostalCode
		if err := rows.Scan(&p.Code, &p.Latitude, &p.Longitude, &p.City, &p.State); err != nil {
			return nil, err
		}
		codes = append(codes, p)
	}
	return codes, rows.Err()
}
