package enrich

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/pace"
	"github.com/ArunMS01/ai-sales/internal/store"
)

// Result summarizes a bulk enrichment pass.
type Result struct {
	Processed int      `json:"processed"`
	Enriched  int      `json:"enriched"`
	Errors    []string `json:"errors,omitempty"`
}

// Bulk runs the cascade over stored leads that still lack contact details.
type Bulk struct {
	store   store.Store
	cascade *Cascade
	pacer   pace.Pacer
	limit   int
}

// NewBulk creates a bulk enricher processing at most limit leads per run.
func NewBulk(st store.Store, cascade *Cascade, pacer pace.Pacer, limit int) *Bulk {
	if limit <= 0 {
		limit = 30
	}
	return &Bulk{store: st, cascade: cascade, pacer: pacer, limit: limit}
}

// Run enriches leads of any stage that still miss a phone or email, newest
// first, up to the per-run limit. Per-lead failures are collected, not fatal.
func (b *Bulk) Run(ctx context.Context) (Result, error) {
	var res Result

	leads, err := b.store.List(ctx, store.LeadFilter{
		MissingContact: true,
		Limit:          b.limit,
	})
	if err != nil {
		return res, eris.Wrap(err, "enrich: list leads")
	}

	for i := range leads {
		lead := leads[i]

		if err := b.pacer.Wait(ctx); err != nil {
			return res, eris.Wrap(err, "enrich: interrupted")
		}
		res.Processed++

		if !b.cascade.Enrich(ctx, &lead) {
			continue
		}
		if err := b.store.Update(ctx, &lead); err != nil {
			res.Errors = append(res.Errors, eris.Wrapf(err, "update %s", lead.Company).Error())
			continue
		}
		res.Enriched++
	}

	zap.L().Info("bulk enrichment done",
		zap.Int("processed", res.Processed),
		zap.Int("enriched", res.Enriched),
		zap.Int("errors", len(res.Errors)),
	)
	return res, nil
}
