// Package storage provides the SQLite and Postgres implementations of the
// ListingStore interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/qosqo/buscador/internal/models"
)

// SQLiteStore implements ListingStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
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
		lat REAL,
		lng REAL,
		price REAL,
		rooms INTEGER,
		published_at TIMESTAMP NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		is_historical INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);
	CREATE INDEX IF NOT EXISTS idx_listings_published_at ON listings(published_at);
	`
	_, err := db.Exec(schema)
	return err
}

// listingColumns is the column list every SELECT uses, in scanListing order.
const listingColumns = `id, title, description, category, location_kind, location_text,
	region, province, district, address, lat, lng, price, rooms,
	published_at, is_active, is_historical, created_at, updated_at`

// CreateListing inserts a listing.
func (s *SQLiteStore) CreateListing(ctx context.Context, listing *models.Listing) error {
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	if listing.PublishedAt.IsZero() {
		listing.PublishedAt = now
	}

	loc := flattenLocation(listing.Location)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO listings (`+listingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.ID, listing.Title, listing.Description, listing.Category,
		loc.kind, loc.text, loc.region, loc.province, loc.district, loc.address, loc.lat, loc.lng,
		listing.Price, listing.Rooms,
		listing.PublishedAt, listing.IsActive, listing.IsHistorical,
		listing.CreatedAt, listing.UpdatedAt,
	)
	return err
}

// GetListing returns a listing by ID.
func (s *SQLiteStore) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = ?`, id)
	listing, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return listing, err
}

// UpdateListing updates an existing listing.
func (s *SQLiteStore) UpdateListing(ctx context.Context, listing *models.Listing) error {
	listing.UpdatedAt = time.Now()

	loc := flattenLocation(listing.Location)
	result, err := s.db.ExecContext(ctx,
		`UPDATE listings SET title = ?, description = ?, category = ?,
		 location_kind = ?, location_text = ?, region = ?, province = ?, district = ?,
		 address = ?, lat = ?, lng = ?, price = ?, rooms = ?,
		 published_at = ?, is_active = ?, is_historical = ?, updated_at = ?
		 WHERE id = ?`,
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
func (s *SQLiteStore) DeleteListing(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = ?`, id)
	return err
}

// FindMatchingAny returns listings whose title or description contains any of
// the terms, or whose category matches the hint, most recent first.
func (s *SQLiteStore) FindMatchingAny(ctx context.Context, terms []string, categoryHint models.Category, limit int) ([]*models.Listing, error) {
	query, args := buildMatchQuery(terms, categoryHint, limit, "?")
	if query == "" {
		return s.FindRecent(ctx, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// FindByCategory returns listings in a category, most recent first.
func (s *SQLiteStore) FindByCategory(ctx context.Context, category models.Category, limit int) ([]*models.Listing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE category = ?
		 ORDER BY published_at DESC LIMIT ?`,
		category, limit)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// FindRecent returns the most recently published listings.
func (s *SQLiteStore) FindRecent(ctx context.Context, limit int) ([]*models.Listing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+listingColumns+` FROM listings
		 ORDER BY published_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// CountListings returns the total number of listings.
func (s *SQLiteStore) CountListings(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM listings`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// buildMatchQuery assembles the candidate retrieval query shared by the
// SQLite and Postgres stores. placeholder is the driver's parameter marker;
// matching is case-insensitive in both (LOWER + LIKE).
func buildMatchQuery(terms []string, categoryHint models.Category, limit int, placeholder string) (string, []interface{}) {
	var conds []string
	var args []interface{}
	for _, term := range terms {
		if term == "" {
			continue
		}
		conds = append(conds,
			"(LOWER(title) LIKE "+placeholder+" OR LOWER(description) LIKE "+placeholder+")")
		pattern := "%" + strings.ToLower(term) + "%"
		args = append(args, pattern, pattern)
	}
	if categoryHint != "" {
		conds = append(conds, "category = "+placeholder)
		args = append(args, categoryHint)
	}
	if len(conds) == 0 {
		return "", nil
	}

	query := `SELECT ` + listingColumns + ` FROM listings WHERE ` +
		strings.Join(conds, " OR ") +
		` ORDER BY published_at DESC LIMIT ` + placeholder
	args = append(args, limit)
	return query, args
}

// flatLocation is the column form of a models.Location.
type flatLocation struct {
	kind     string
	text     sql.NullString
	region   sql.NullString
	province sql.NullString
	district sql.NullString
	address  sql.NullString
	lat      sql.NullFloat64
	lng      sql.NullFloat64
}

func flattenLocation(l models.Location) flatLocation {
	f := flatLocation{kind: string(l.Kind)}
	switch l.Kind {
	case models.LocationText:
		f.text = nullString(l.Text)
	case models.LocationStructured:
		if s := l.Structured; s != nil {
			f.region = nullString(s.Region)
			f.province = nullString(s.Province)
			f.district = nullString(s.District)
			f.address = nullString(s.Address)
			if s.Lat != 0 || s.Lng != 0 {
				f.lat = sql.NullFloat64{Float64: s.Lat, Valid: true}
				f.lng = sql.NullFloat64{Float64: s.Lng, Valid: true}
			}
		}
	}
	return f
}

func (f flatLocation) toLocation() models.Location {
	switch models.LocationKind(f.kind) {
	case models.LocationText:
		return models.TextLocation(f.text.String)
	case models.LocationStructured:
		return models.StructuredLoc(models.StructuredLocation{
			Region:   f.region.String,
			Province: f.province.String,
			District: f.district.String,
			Address:  f.address.String,
			Lat:      f.lat.Float64,
			Lng:      f.lng.Float64,
		})
	}
	return models.Location{}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	var listing models.Listing
	var loc flatLocation
	var kind sql.NullString

	err := row.Scan(
		&listing.ID, &listing.Title, &listing.Description, &listing.Category,
		&kind, &loc.text, &loc.region, &loc.province, &loc.district,
		&loc.address, &loc.lat, &loc.lng,
		&listing.Price, &listing.Rooms,
		&listing.PublishedAt, &listing.IsActive, &listing.IsHistorical,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	loc.kind = kind.String
	listing.Location = loc.toLocation()
	return &listing, nil
}

func collectListings(rows *sql.Rows) ([]*models.Listing, error) {
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}
