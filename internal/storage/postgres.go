package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/qosqo/buscador/internal/models"
)

// PostgresStore implements ListingStore using PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to PostgreSQL with the given DSN and initializes
// the schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initPostgresSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func initPostgresSchema(db *sqlx.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		category TEXT NOT NULL,
		location_kind TEXT,
		location_text TEXT,
		region TEXT,
		province TEXT,
		district TEXT,
		address TEXT,
		lat DOUBLE PRECISION,
		lng DOUBLE PRECISION,
		price DOUBLE PRECISION,
		rooms INTEGER,
		published_at TIMESTAMPTZ NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_historical BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);
	CREATE INDEX IF NOT EXISTS idx_listings_published_at ON listings(published_at);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateListing inserts a listing.
func (s *PostgresStore) CreateListing(ctx context.Context, listing *models.Listing) error {
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.PublishedAt.IsZero() {
		listing.PublishedAt = now
	}

	loc := flattenLocation(listing.Location)
	_, err := s.db.ExecContext(ctx, s.db.Rebind(
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		listing.ID, listing.Title, listing.Description, listing.Category,
		loc.kind, loc.text, loc.region, loc.province, loc.district, loc.address, loc.lat, loc.lng,
		listing.Price, listing.Rooms,
		listing.PublishedAt, listing.IsActive, listing.IsHistorical,
		listing.CreatedAt, listing.UpdatedAt,
	)
	return err
}

// GetListing returns a listing by ID.
func (s *PostgresStore) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(
		`SELECT `+listingColumns+` FROM listings WHERE id = ?`), id)
	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return listing, err
}

// UpdateListing updates an existing listing.
func (s *PostgresStore) UpdateListing(ctx context.Context, listing *models.Listing) error {
	listing.UpdatedAt = time.Now()

	loc := flattenLocation(listing.Location)
	result, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE listings SET title = ?, description = ?, category = ?,
		 location_kind = ?, location_text = ?, region = ?, province = ?, district = ?,
		 address = ?, lat = ?, lng = ?, price = ?, rooms = ?,
		 published_at = ?, is_active = ?, is_historical = ?, updated_at = ?
		 WHERE id = ?`),
		listing.Title, listing.Description, listing.Category,
		loc.kind, loc.text, loc.region, loc.province, loc.district,
		loc.address, loc.lat, loc.lng, listing.Price, listing.Rooms,
		listing.PublishedAt, listing.IsActive, listing.IsHistorical, listing.UpdatedAt,
		listing.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, listing.ID)
	}
	return nil
}

// DeleteListing removes a listing by ID.
func (s *PostgresStore) DeleteListing(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM listings WHERE id = ?`), id)
	return err
}

// FindMatchingAny returns listings whose title or description contains any of
// the terms, or whose category matches the hint, most recent first.
func (s *PostgresStore) FindMatchingAny(ctx context.Context, terms []string, categoryHint models.Category, limit int) ([]*models.Listing, error) {
	query, args := buildMatchQuery(terms, categoryHint, limit, "?")
	if query == "" {
		return s.FindRecent(ctx, limit)
	}
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// FindByCategory returns listings in a category, most recent first.
func (s *PostgresStore) FindByCategory(ctx context.Context, category models.Category, limit int) ([]*models.Listing, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(
		`SELECT `+listingColumns+` FROM listings WHERE category = ?
		 ORDER BY published_at DESC LIMIT ?`),
		category, limit)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// FindRecent returns the most recently published listings.
func (s *PostgresStore) FindRecent(ctx context.Context, limit int) ([]*models.Listing, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(
		`SELECT `+listingColumns+` FROM listings
		 ORDER BY published_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// CountListings returns the total number of listings.
func (s *PostgresStore) CountListings(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
