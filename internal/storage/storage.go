// Package storage defines the persistence interface for listings.
package storage

import (
	"context"
	"errors"

	"github.com/qosqo/buscador/internal/models"
)

// ErrNotFound is returned when a listing does not exist.
var ErrNotFound = errors.New("listing not found")

// ListingStore defines listing persistence and candidate retrieval.
type ListingStore interface {
	// Listing operations
	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	UpdateListing(ctx context.Context, listing *models.Listing) error
	DeleteListing(ctx context.Context, id string) error

	// Candidate retrieval. All three return listings ordered most recent
	// first, capped at limit.
	FindMatchingAny(ctx context.Context, terms []string, categoryHint models.Category, limit int) ([]*models.Listing, error)
	FindByCategory(ctx context.Context, category models.Category, limit int) ([]*models.Listing, error)
	FindRecent(ctx context.Context, limit int) ([]*models.Listing, error)

	// Stats
	CountListings(ctx context.Context) (int64, error)

	Close() error
}
