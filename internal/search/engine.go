// Package search wires query analysis, candidate retrieval, and ranking into
// the end-to-end search flow.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/qosqo/buscador/internal/analyzer"
	"github.com/qosqo/buscador/internal/config"
	"github.com/qosqo/buscador/internal/models"
	"github.com/qosqo/buscador/internal/ranking"
	"github.com/qosqo/buscador/internal/storage"
)

// Engine executes search requests.
type Engine struct {
	store    storage.ListingStore
	analyzer *analyzer.Analyzer
	ranker   *ranking.Ranker
	cfg      config.SearchConfig
	logger   *zap.Logger
}

// NewEngine creates a search engine.
func NewEngine(store storage.ListingStore, a *analyzer.Analyzer, r *ranking.Ranker, cfg config.SearchConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, analyzer: a, ranker: r, cfg: cfg, logger: logger}
}

// Analyze runs query understanding only.
func (e *Engine) Analyze(message string) *models.QueryIntent {
	return e.analyzer.Analyze(message)
}

// Search analyzes the query, retrieves candidates, and ranks them.
// When retrieval fails the response still carries the intent with an empty
// result set and the error message; the returned error reports the cause.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	start := time.Now()
	query.Validate()

	intent := e.analyzer.Analyze(query.Query)
	resp := &models.SearchResponse{
		Results: []*models.ScoredListing{},
		Intent:  intent,
		Query:   query.Query,
	}

	results, err := e.ResolveRankedResults(ctx, intent, query.Limit)
	if err != nil {
		e.logger.Error("candidate retrieval failed",
			zap.String("query", query.Query), zap.Error(err))
		resp.Error = err.Error()
		resp.QueryTime = time.Since(start).Milliseconds()
		return resp, err
	}

	resp.Results = results
	resp.Total = len(results)
	resp.QueryTime = time.Since(start).Milliseconds()

	e.logger.Info("search completed",
		zap.String("query", query.Query),
		zap.String("category", string(intent.PrimaryCategory)),
		zap.String("location", intent.Location),
		zap.Int("results", resp.Total),
		zap.Int64("took_ms", resp.QueryTime))
	return resp, nil
}

// ResolveRankedResults retrieves candidates for an already-analyzed intent
// and ranks them, returning at most limit results.
func (e *Engine) ResolveRankedResults(ctx context.Context, intent *models.QueryIntent, limit int) ([]*models.ScoredListing, error) {
	candidates, err := e.retrieveCandidates(ctx, intent, limit)
	if err != nil {
		return nil, err
	}
	return e.ranker.Rank(candidates, intent, limit), nil
}

// retrieveCandidates picks the broadest useful retrieval strategy: term
// matching when the query has terms, the category feed when it only has a
// category, and the recency feed otherwise.
func (e *Engine) retrieveCandidates(ctx context.Context, intent *models.QueryIntent, limit int) ([]*models.Listing, error) {
	fetch := limit * e.cfg.OverfetchFactor
	if fetch <= 0 {
		fetch = limit
	}

	if intent.HasTerms() {
		terms := intent.ExpandedTerms
		if len(terms) > e.cfg.MaxQueryTerms && e.cfg.MaxQueryTerms > 0 {
			terms = terms[:e.cfg.MaxQueryTerms]
		}
		return e.store.FindMatchingAny(ctx, terms, intent.PrimaryCategory, fetch)
	}
	if intent.PrimaryCategory != "" {
		return e.store.FindByCategory(ctx, intent.PrimaryCategory, fetch)
	}
	return e.store.FindRecent(ctx, fetch)
}
