package ranking

import (
	"time"

	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/textnorm"
)

// Scorer computes the relevance score of one listing for one intent.
// Scoring is pure: the same listing, intent, and reference time always
// produce the same score.
type Scorer struct {
	config ScoringConfig
}

// NewScorer creates a scorer with the given weights.
func NewScorer(config ScoringConfig) *Scorer {
	return &Scorer{config: config}
}

// Score computes the relevance of listing for intent at reference time now.
func (s *Scorer) Score(listing *models.Listing, intent *models.QueryIntent, now time.Time) float64 {
	var score float64

	title := textnorm.Normalize(listing.Title)
	desc := textnorm.Normalize(listing.Description)

	// A term in the title outranks the same term in the description; one
	// term never scores both fields.
	raw := make(map[string]struct{}, len(intent.RawTerms))
	for _, term := range intent.RawTerms {
		raw[term] = struct{}{}
		switch {
		case textnorm.ContainsWord(title, term):
			score += s.config.TitleTermScore
		case textnorm.ContainsWord(desc, term):
			score += s.config.DescriptionTermScore
		}
	}

	for _, term := range intent.ExpandedTerms {
		if _, isRaw := raw[term]; isRaw {
			continue
		}
		if textnorm.ContainsWord(title, term) || textnorm.ContainsWord(desc, term) {
			score += s.config.SynonymScore
		}
	}

	if intent.PrimaryCategory != "" && listing.Category == intent.PrimaryCategory {
		score += s.config.CategoryScore
	}

	if intent.Location != "" {
		loc := textnorm.Normalize(listing.Location.SearchText())
		if loc != "" && textnorm.ContainsWord(loc, textnorm.Normalize(intent.Location)) {
			score += s.config.LocationScore
		}
	}

	score += s.freshness(listing.PublishedAt, now)

	if listing.IsActive {
		score += s.config.ActiveBonus
	}
	if listing.IsHistorical {
		score -= s.config.HistoricalPenalty
	}
	return score
}

func (s *Scorer) freshness(publishedAt time.Time, now time.Time) float64 {
	if publishedAt.IsZero() {
		return 0
	}
	age := now.Sub(publishedAt)
	switch {
	case age < 0:
		return s.config.FreshnessUnder3d
	case age < 3*24*time.Hour:
		return s.config.FreshnessUnder3d
	case age < 7*24*time.Hour:
		return s.config.FreshnessUnder7d
	case age < 30*24*time.Hour:
		return s.config.FreshnessUnder30d
	}
	return 0
}
