// Package source discovers candidate leads from business directories,
// search results, the Places API, IndiaMART listings and seed files.
package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/pace"
)

// Query targets one category/city combination.
type Query struct {
	Category string
	City     string
	Limit    int
}

// Adapter yields candidate leads for a query. Adapters return raw candidates;
// normalization and deduplication happen downstream.
type Adapter interface {
	Name() string
	Discover(ctx context.Context, q Query) ([]model.Lead, error)
}

// Runner fans a set of queries across all registered adapters.
type Runner struct {
	adapters []Adapter
	pacer    pace.Pacer
}

// NewRunner creates a Runner that waits on the pacer between adapter calls.
func NewRunner(pacer pace.Pacer, adapters ...Adapter) *Runner {
	return &Runner{adapters: adapters, pacer: pacer}
}

// Discover runs every query against every adapter. A failing adapter/query
// pair is logged and skipped; one flaky source never sinks the whole sweep.
// Returns the collected candidates and the number of failed pairs.
func (r *Runner) Discover(ctx context.Context, queries []Query) ([]model.Lead, int) {
	var all []model.Lead
	failures := 0

	for _, q := range queries {
		for _, a := range r.adapters {
			if err := r.pacer.Wait(ctx); err != nil {
				zap.L().Warn("discovery interrupted", zap.Error(err))
				return all, failures
			}

			candidates, err := a.Discover(ctx, q)
			if err != nil {
				failures++
				zap.L().Warn("source query failed",
					zap.String("adapter", a.Name()),
					zap.String("category", q.Category),
					zap.String("city", q.City),
					zap.Error(err),
				)
				continue
			}

			zap.L().Info("source query done",
				zap.String("adapter", a.Name()),
				zap.String("category", q.Category),
				zap.String("city", q.City),
				zap.Int("candidates", len(candidates)),
			)
			all = append(all, candidates...)
		}
	}
	return all, failures
}

func capResults(leads []model.Lead, limit int) []model.Lead {
	if limit > 0 && len(leads) > limit {
		return leads[:limit]
	}
	return leads
}
