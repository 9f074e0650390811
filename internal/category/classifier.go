// Package category classifies free text into listing categories using
// weighted keyword scoring with contextual phrase boosts.
package category

import (
	"sort"
	"strings"

	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/refdata"
)

// partialMinLen is the minimum length for a token or keyword to take part in
// partial matching. Shorter strings produce too many accidental substrings.
const partialMinLen = 5

// Match records one keyword hit during classification. The analyzer uses it
// to decide which matched keywords to keep as search terms.
type Match struct {
	Token    string
	Keyword  string
	Category models.Category
	Weight   float64
	Partial  bool
}

// Result is the outcome of classifying one query.
type Result struct {
	// Primary is empty when nothing scored.
	Primary models.Category
	// Secondary is the runner-up, set only when it scored above zero.
	Secondary models.Category
	Scores    map[models.Category]float64
	Matches   []Match
}

// Classifier scores text against the keyword weight table.
type Classifier struct {
	store *refdata.Store
}

// NewClassifier creates a classifier over the given reference-data store.
func NewClassifier(store *refdata.Store) *Classifier {
	return &Classifier{store: store}
}

// Classify scores normalized text and returns the top one or two categories.
// Ties are broken by the category's first appearance in the weight table, so
// results are reproducible for identical inputs.
func (c *Classifier) Classify(normalized string) Result {
	tables := c.store.Tables()
	res := Result{Scores: make(map[models.Category]float64)}
	if normalized == "" {
		return res
	}

	for _, tok := range strings.Fields(normalized) {
		if kw, ok := tables.Keyword(tok); ok {
			res.Scores[kw.Category] += kw.Weight
			res.Matches = append(res.Matches, Match{
				Token: tok, Keyword: kw.Keyword, Category: kw.Category, Weight: kw.Weight,
			})
			continue
		}
		if len(tok) < partialMinLen {
			continue
		}
		// Inflected or compounded forms ("cocineros", "minidepartamento")
		// still contribute, at half weight.
		for _, kw := range tables.Keywords() {
			if len(kw.Keyword) < partialMinLen {
				continue
			}
			if strings.Contains(tok, kw.Keyword) || strings.Contains(kw.Keyword, tok) {
				res.Scores[kw.Category] += kw.Weight / 2
				res.Matches = append(res.Matches, Match{
					Token: tok, Keyword: kw.Keyword, Category: kw.Category, Weight: kw.Weight, Partial: true,
				})
				break
			}
		}
	}

	padded := " " + normalized + " "
	for _, pb := range tables.Phrases() {
		if strings.Contains(padded, " "+pb.Phrase+" ") {
			res.Scores[pb.Category] += pb.Boost
		}
	}

	ranked := make([]models.Category, 0, len(res.Scores))
	for cat, score := range res.Scores {
		if score > 0 {
			ranked = append(ranked, cat)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := res.Scores[ranked[i]], res.Scores[ranked[j]]
		if si != sj {
			return si > sj
		}
		return tables.CategoryOrder(ranked[i]) < tables.CategoryOrder(ranked[j])
	})

	if len(ranked) > 0 {
		res.Primary = ranked[0]
	}
	if len(ranked) > 1 {
		res.Secondary = ranked[1]
	}
	return res
}
