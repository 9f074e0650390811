// Package analyzer turns a free-text query into a structured QueryIntent:
// normalized search terms, a category guess, a resolved location, and any
// price or room constraints found in the text.
package analyzer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/qosqo/buscador/internal/category"
	"github.com/qosqo/buscador/internal/filters"
	"github.com/qosqo/buscador/internal/gazetteer"
	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/refdata"
	"github.com/qosqo/buscador/internal/synonyms"
	"github.com/qosqo/buscador/internal/textnorm"
	"github.com/qosqo/buscador/pkg/utils"
)

// Confidence increments. Base covers any non-empty query; the rest reward
// the signals that were actually found.
const (
	confidenceBase     = 0.3
	confidenceCategory = 0.25
	confidenceLocation = 0.25
	confidenceTerms    = 0.2
)

// Analyzer runs the full query-understanding pipeline.
type Analyzer struct {
	store      *refdata.Store
	resolver   *gazetteer.Resolver
	classifier *category.Classifier
	expander   *synonyms.Expander
	logger     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a logger for per-query debug output.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// New creates an analyzer over the given reference-data store.
func New(store *refdata.Store, opts ...Option) *Analyzer {
	a := &Analyzer{
		store:      store,
		resolver:   gazetteer.NewResolver(store),
		classifier: category.NewClassifier(store),
		expander:   synonyms.NewExpander(store),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze builds the intent for one query message. It never fails: a message
// with no usable signal yields an intent with zero confidence and the home
// place as location, which downstream code treats as a browse request.
func (a *Analyzer) Analyze(message string) *models.QueryIntent {
	intent := &models.QueryIntent{RawQuery: message}

	normalized := textnorm.Normalize(message)
	if normalized == "" {
		home := a.store.Tables().Home()
		intent.Location = home.CanonicalName
		intent.LocationFallback = true
		return intent
	}

	cls := a.classifier.Classify(normalized)
	intent.PrimaryCategory = cls.Primary
	intent.SecondaryCategory = cls.Secondary

	intent.RawTerms = a.retainTerms(normalized, cls)
	intent.ExpandedTerms = a.expander.Expand(intent.RawTerms)

	place, matched := a.resolver.ResolveOrHome(message)
	intent.Location = place.CanonicalName
	intent.LocationFallback = !matched
	if addr, ok := a.resolver.ExtractSpecificAddress(message); ok {
		intent.Address = addr
	}
	intent.NearbyRefs = a.resolver.ExtractNearbyReferences(message)

	// Price patterns anchor on "s/", which normalization strips.
	intent.Filters = filters.Extract(strings.ToLower(message))

	confidence := confidenceBase
	if intent.PrimaryCategory != "" {
		confidence += confidenceCategory
	}
	if matched {
		confidence += confidenceLocation
	}
	if intent.HasTerms() {
		confidence += confidenceTerms
	}
	intent.Confidence = utils.Clamp01(confidence)

	if a.logger != nil {
		a.logger.Debug("query analyzed",
			zap.String("query", message),
			zap.Strings("terms", intent.RawTerms),
			zap.String("category", string(intent.PrimaryCategory)),
			zap.String("location", intent.Location),
			zap.Bool("location_fallback", intent.LocationFallback),
			zap.Float64("confidence", intent.Confidence))
	}
	return intent
}

// retainTerms filters the normalized tokens down to the ones worth searching
// with: stop words, bare numbers, and single characters go, and so do matched
// category keywords too generic to discriminate between listings.
func (a *Analyzer) retainTerms(normalized string, cls category.Result) []string {
	tables := a.store.Tables()

	generic := make(map[string]struct{})
	if cls.Primary != "" {
		for _, m := range cls.Matches {
			if !m.Partial && m.Category == cls.Primary && m.Weight < tables.RetentionWeight() {
				generic[m.Token] = struct{}{}
			}
		}
	}

	seen := make(map[string]struct{})
	var terms []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) < 2 || tables.StopWord(tok) || allDigits(tok) {
			continue
		}
		if _, ok := generic[tok]; ok {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
