// Package ranking scores candidate listings against a query intent and
// orders them by relevance.
package ranking

// ScoringConfig holds the additive score contributions. All values are
// points; a listing's score is the sum of every factor that applies.
type ScoringConfig struct {
	TitleTermScore       float64 `yaml:"title_term_score"`
	DescriptionTermScore float64 `yaml:"description_term_score"`
	SynonymScore         float64 `yaml:"synonym_score"`
	CategoryScore        float64 `yaml:"category_score"`
	LocationScore        float64 `yaml:"location_score"`

	FreshnessUnder3d  float64 `yaml:"freshness_under_3d"`
	FreshnessUnder7d  float64 `yaml:"freshness_under_7d"`
	FreshnessUnder30d float64 `yaml:"freshness_under_30d"`

	ActiveBonus       float64 `yaml:"active_bonus"`
	HistoricalPenalty float64 `yaml:"historical_penalty"`

	// NoiseThreshold excludes weak matches: a listing enters the results only
	// when its score is strictly greater than this.
	NoiseThreshold float64 `yaml:"noise_threshold"`
}

// DefaultScoringConfig returns the standard scoring weights.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		TitleTermScore:       20,
		DescriptionTermScore: 10,
		SynonymScore:         5,
		CategoryScore:        15,
		LocationScore:        10,
		FreshnessUnder3d:     10,
		FreshnessUnder7d:     5,
		FreshnessUnder30d:    2,
		ActiveBonus:          5,
		HistoricalPenalty:    10,
		NoiseThreshold:       10,
	}
}

// ApplyDefaults fills zero-valued fields with the defaults, so a partial
// config file only overrides what it names.
func (c *ScoringConfig) ApplyDefaults() {
	d := DefaultScoringConfig()
	if c.TitleTermScore == 0 {
		c.TitleTermScore = d.TitleTermScore
	}
	if c.DescriptionTermScore == 0 {
		c.DescriptionTermScore = d.DescriptionTermScore
	}
	if c.SynonymScore == 0 {
		c.SynonymScore = d.SynonymScore
	}
	if c.CategoryScore == 0 {
		c.CategoryScore = d.CategoryScore
	}
	if c.LocationScore == 0 {
		c.LocationScore = d.LocationScore
	}
	if c.FreshnessUnder3d == 0 {
		c.FreshnessUnder3d = d.FreshnessUnder3d
	}
	if c.FreshnessUnder7d == 0 {
		c.FreshnessUnder7d = d.FreshnessUnder7d
	}
	if c.FreshnessUnder30d == 0 {
		c.FreshnessUnder30d = d.FreshnessUnder30d
	}
	if c.ActiveBonus == 0 {
		c.ActiveBonus = d.ActiveBonus
	}
	if c.HistoricalPenalty == 0 {
		c.HistoricalPenalty = d.HistoricalPenalty
	}
	if c.NoiseThreshold == 0 {
		c.NoiseThreshold = d.NoiseThreshold
	}
}
