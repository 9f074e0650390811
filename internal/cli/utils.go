// Package cli provides CLI output utilities for buscador.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact is one result per line.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		for _, result := range response.Results {
			l := result.Listing
			fmt.Fprintf(w, "%.1f\t%s\t%s\t%s\n", result.Score, l.ID, l.Category, l.Title)
		}
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms\n", response.Total, response.QueryTime)
	if response.Error != "" {
		fmt.Fprintf(w, "WARNING: results degraded: %s\n", response.Error)
	}
	if response.Intent != nil {
		writeIntentText(w, response.Intent)
	}
	fmt.Fprintln(w)
	for i, result := range response.Results {
		writeOneResult(w, i+1, result)
	}
}

func writeOneResult(w io.Writer, rank int, result *models.ScoredListing) {
	l := result.Listing
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Rank: %d | Score: %.1f\n", rank, result.Score)
	fmt.Fprintf(w, "ID: %s\n", l.ID)
	fmt.Fprintf(w, "Title: %s\n", l.Title)
	fmt.Fprintf(w, "Category: %s", l.Category)
	if loc := l.Location.SearchText(); loc != "" {
		fmt.Fprintf(w, " | Location: %s", loc)
	}
	if l.Price != nil {
		fmt.Fprintf(w, " | S/ %.0f", *l.Price)
	}
	fmt.Fprintln(w)
	if l.Description != "" {
		fmt.Fprintf(w, "\n%s\n", utils.Truncate(l.Description, 200))
	}
	fmt.Fprintln(w)
}

// WriteIntent writes a query intent to w in the given format.
func WriteIntent(w io.Writer, intent *models.QueryIntent, format SearchOutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(intent)
	}
	writeIntentText(w, intent)
	return nil
}

func writeIntentText(w io.Writer, intent *models.QueryIntent) {
	fmt.Fprintf(w, "Query: %s\n", intent.RawQuery)
	fmt.Fprintf(w, "Terms: %s\n", strings.Join(intent.RawTerms, ", "))
	if len(intent.ExpandedTerms) > len(intent.RawTerms) {
		fmt.Fprintf(w, "Expanded: %s\n", strings.Join(intent.ExpandedTerms, ", "))
	}
	if intent.PrimaryCategory != "" {
		fmt.Fprintf(w, "Category: %s", intent.PrimaryCategory)
		if intent.SecondaryCategory != "" {
			fmt.Fprintf(w, " (also %s)", intent.SecondaryCategory)
		}
		fmt.Fprintln(w)
	}
	loc := intent.Location
	if intent.LocationFallback {
		loc += " (fallback)"
	}
	fmt.Fprintf(w, "Location: %s\n", loc)
	if intent.Address != "" {
		fmt.Fprintf(w, "Address: %s\n", intent.Address)
	}
	if len(intent.NearbyRefs) > 0 {
		fmt.Fprintf(w, "Near: %s\n", strings.Join(intent.NearbyRefs, ", "))
	}
	if f := intent.Filters; f.PriceMin != nil || f.PriceMax != nil || f.RoomCount != nil {
		fmt.Fprint(w, "Filters:")
		if f.PriceMin != nil {
			fmt.Fprintf(w, " min S/ %.0f", *f.PriceMin)
		}
		if f.PriceMax != nil {
			fmt.Fprintf(w, " max S/ %.0f", *f.PriceMax)
		}
		if f.RoomCount != nil {
			fmt.Fprintf(w, " rooms %d", *f.RoomCount)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Confidence: %.2f\n", intent.Confidence)
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}
