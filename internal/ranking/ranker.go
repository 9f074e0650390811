package ranking

import (
	"sort"
	"time"

	"github.com/qosqo/buscador/internal/models"
)

// Ranker scores, filters, and orders candidate listings.
type Ranker struct {
	config ScoringConfig
	scorer *Scorer
}

// NewRanker creates a ranker. A nil config uses the default weights.
func NewRanker(config *ScoringConfig) *Ranker {
	cfg := DefaultScoringConfig()
	if config != nil {
		cfg = *config
		cfg.ApplyDefaults()
	}
	return &Ranker{config: cfg, scorer: NewScorer(cfg)}
}

// Rank orders candidates by relevance to intent and returns at most limit
// results, as of the current time.
func (r *Ranker) Rank(candidates []*models.Listing, intent *models.QueryIntent, limit int) []*models.ScoredListing {
	return r.RankAt(time.Now(), candidates, intent, limit)
}

// RankAt is Rank with an explicit reference time.
// Listings at or below the noise threshold are dropped. Ties are broken by
// recency, and the sort is stable, so equal listings keep their input order.
func (r *Ranker) RankAt(now time.Time, candidates []*models.Listing, intent *models.QueryIntent, limit int) []*models.ScoredListing {
	scored := make([]*models.ScoredListing, 0, len(candidates))
	for _, l := range candidates {
		score := r.scorer.Score(l, intent, now)
		if score <= r.config.NoiseThreshold {
			continue
		}
		scored = append(scored, &models.ScoredListing{Listing: l, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Listing.PublishedAt.After(scored[j].Listing.PublishedAt)
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
