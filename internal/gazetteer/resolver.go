// Package gazetteer resolves free-text place references against the
// gazetteer: district names with spelling variants, specific street
// addresses, and "near <landmark>" style references.
package gazetteer

import (
	"regexp"
	"strings"

	"github.com/qosqo/buscador/internal/refdata"
	"github.com/qosqo/buscador/internal/textnorm"
)

// Place is a resolved canonical place.
type Place struct {
	CanonicalName string   `json:"canonical_name"`
	Region        string   `json:"region"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	Landmarks     []string `json:"landmarks,omitempty"`
}

// Resolver matches place names and address patterns in query text.
// All methods are total: absence is a boolean, never an error.
type Resolver struct {
	store *refdata.Store
}

// NewResolver creates a resolver over the given reference-data store.
func NewResolver(store *refdata.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the gazetteer entry whose canonical name or variant occurs
// in text. Variants are tried longest-first, so a multi-word district
// contained in a longer name wins over a shorter substring.
func (r *Resolver) Resolve(text string) (*Place, bool) {
	tables := r.store.Tables()
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return nil, false
	}
	for _, v := range tables.Variants() {
		if textnorm.ContainsWord(normalized, v.Text) {
			return placeFromEntry(tables.Place(v.Entry)), true
		}
	}
	return nil, false
}

// ResolveOrHome resolves text, falling back to the configured home place when
// nothing matches. The second return value reports whether the text itself
// matched; it is false for the fallback.
func (r *Resolver) ResolveOrHome(text string) (*Place, bool) {
	if p, ok := r.Resolve(text); ok {
		return p, true
	}
	return placeFromEntry(r.store.Tables().Home()), false
}

func placeFromEntry(e refdata.PlaceEntry) *Place {
	return &Place{
		CanonicalName: e.CanonicalName,
		Region:        e.Region,
		Lat:           e.Lat,
		Lng:           e.Lng,
		Landmarks:     e.Landmarks,
	}
}

// Address-like fragments: street/avenue prefixes with a name and optional
// number, and lot/block notation.
var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:calle|av\.?|avenida|jr\.?|jiron|jirón|pasaje|psje\.?|urb\.?|urbanizacion|urbanización|prolongacion|prolongación)\s+[\p{L}\d]+(?:\s+[\p{L}\d]+)?(?:\s*(?:n°|nro\.?|#)?\s*\d+(?:-[a-z])?)?`),
	regexp.MustCompile(`(?i)\b(?:mz|mza|manzana)\.?\s*[a-z0-9]+(?:\s*,?\s*(?:lt|lote)\.?\s*[a-z0-9]+)?`),
	regexp.MustCompile(`(?i)\b(?:lt|lote)\.?\s*\d+[a-z]?\b`),
}

// ExtractSpecificAddress returns the longest address-like fragment in text.
func (r *Resolver) ExtractSpecificAddress(text string) (string, bool) {
	best := ""
	for _, pat := range addressPatterns {
		for _, m := range pat.FindAllString(text, -1) {
			m = strings.TrimSpace(m)
			if len(m) > len(best) {
				best = m
			}
		}
	}
	return best, best != ""
}

var nearbyPattern = regexp.MustCompile(`(?i)\b(?:cerca\s+(?:de\s+la|de\s+el|del|de|a\s+la|al)|frente\s+(?:a\s+la|al|a)|detr[aá]s\s+(?:de\s+la|del|de)|junto\s+(?:a\s+la|al|a)|a\s+espaldas\s+(?:de\s+la|del|de)|espaldas\s+(?:del|de))\s+((?:[\p{L}\d]+\s?){1,3})`)

// ExtractNearbyReferences returns the landmark references mentioned after
// "cerca de", "frente a", "detrás de" and similar markers.
func (r *Resolver) ExtractNearbyReferences(text string) []string {
	var refs []string
	for _, m := range nearbyPattern.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 {
			if ref := strings.TrimSpace(m[1]); ref != "" {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}
