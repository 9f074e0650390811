package models

// ScoredListing pairs a listing with its relevance score for one ranking pass.
type ScoredListing struct {
	Listing *Listing `json:"listing"`
	Score   float64  `json:"score"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results   []*ScoredListing `json:"results"`
	Intent    *QueryIntent     `json:"intent,omitempty"`
	Total     int              `json:"total"`
	QueryTime int64            `json:"query_time_ms"`
	Query     string           `json:"query"`
	// Error is set when candidate retrieval failed and the result set
	// degraded to empty. The request itself still succeeds.
	Error string `json:"error,omitempty"`
}
