// Package models defines core data structures for listings, query intents, and search results.
package models

import (
	"strings"
	"time"
)

// Category identifies a classified-ad category.
type Category string

const (
	CategoryEmployment Category = "empleo"
	CategoryRealEstate Category = "inmuebles"
	CategoryVehicles   Category = "vehiculos"
	CategoryServices   Category = "servicios"
	CategoryProducts   Category = "productos"
	CategoryOther      Category = "otros"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryEmployment, CategoryRealEstate, CategoryVehicles,
		CategoryServices, CategoryProducts, CategoryOther:
		return true
	}
	return false
}

// LocationKind discriminates the Location variant.
type LocationKind string

const (
	// LocationText is a free-form location string.
	LocationText LocationKind = "text"
	// LocationStructured is a structured place with region/province/district.
	LocationStructured LocationKind = "structured"
)

// StructuredLocation is a fully-specified place.
type StructuredLocation struct {
	Region   string  `json:"region" yaml:"region"`
	Province string  `json:"province,omitempty" yaml:"province"`
	District string  `json:"district,omitempty" yaml:"district"`
	Address  string  `json:"address,omitempty" yaml:"address"`
	Lat      float64 `json:"lat,omitempty" yaml:"lat"`
	Lng      float64 `json:"lng,omitempty" yaml:"lng"`
}

// Location is a tagged variant: either free-form text or a structured place.
// The zero value has no location.
type Location struct {
	Kind       LocationKind        `json:"kind,omitempty"`
	Text       string              `json:"text,omitempty"`
	Structured *StructuredLocation `json:"structured,omitempty"`
}

// TextLocation returns a free-form text location.
func TextLocation(text string) Location {
	return Location{Kind: LocationText, Text: text}
}

// StructuredLoc returns a structured location.
func StructuredLoc(s StructuredLocation) Location {
	return Location{Kind: LocationStructured, Structured: &s}
}

// IsZero reports whether no location is set.
func (l Location) IsZero() bool {
	return l.Kind == ""
}

// SearchText returns the text used for location matching. Every kind is
// handled; an unset or unknown kind yields an empty string.
func (l Location) SearchText() string {
	switch l.Kind {
	case LocationText:
		return l.Text
	case LocationStructured:
		if l.Structured == nil {
			return ""
		}
		parts := make([]string, 0, 4)
		for _, p := range []string{l.Structured.District, l.Structured.Address, l.Structured.Province, l.Structured.Region} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// Listing represents a single classified advertisement. The search core only
// reads listings; it never mutates them.
type Listing struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	Category     Category  `json:"category" db:"category"`
	Location     Location  `json:"location"`
	Price        *float64  `json:"price,omitempty" db:"price"`
	Rooms        *int      `json:"rooms,omitempty" db:"rooms"`
	PublishedAt  time.Time `json:"published_at" db:"published_at"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsHistorical bool      `json:"is_historical" db:"is_historical"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ListingInput is the input for creating a listing.
type ListingInput struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Location    Location `json:"location"`
	Price       *float64 `json:"price,omitempty"`
	Rooms       *int     `json:"rooms,omitempty"`
}
