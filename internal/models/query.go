package models

// SearchQuery represents a search request.
type SearchQuery struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// Validate normalizes the query fields. An empty query is allowed: analysis
// degrades to an empty intent and retrieval falls back to recent listings.
func (q *SearchQuery) Validate() {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}
