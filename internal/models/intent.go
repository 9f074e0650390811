package models

// Filters holds numeric constraints extracted from a query. Unset fields mean
// the query expressed no such constraint.
type Filters struct {
	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
	RoomCount *int     `json:"room_count,omitempty"`
}

// QueryIntent is the structured form of a free-text search query.
// It is built once per request by the analyzer and not modified afterwards.
type QueryIntent struct {
	// RawQuery is the original message text.
	RawQuery string `json:"raw_query"`
	// RawTerms are the retained search terms in order of appearance.
	RawTerms []string `json:"raw_terms"`
	// ExpandedTerms is a superset of RawTerms widened through the synonym
	// table: raw terms first (original order), then added synonyms sorted.
	ExpandedTerms []string `json:"expanded_terms"`
	// PrimaryCategory is empty when no category could be determined.
	PrimaryCategory Category `json:"primary_category,omitempty"`
	// SecondaryCategory is the runner-up category, when one scored above zero.
	SecondaryCategory Category `json:"secondary_category,omitempty"`
	// Location is the canonical place name the query resolved to.
	Location string `json:"location,omitempty"`
	// LocationFallback is true when Location is the configured home place
	// rather than a match found in the query text.
	LocationFallback bool `json:"location_fallback,omitempty"`
	// Address is a specific street/lot reference found in the text, if any.
	Address string `json:"address,omitempty"`
	// NearbyRefs are "near <landmark>" style references found in the text.
	NearbyRefs []string `json:"nearby_refs,omitempty"`
	Filters    Filters  `json:"filters"`
	// Confidence is in [0,1].
	Confidence float64 `json:"confidence"`
}

// HasTerms reports whether any search terms were retained.
func (qi *QueryIntent) HasTerms() bool {
	return len(qi.RawTerms) > 0
}
