// Package orchestrator drives the daily pipeline: discover candidates,
// absorb them into the store, enrich missing contacts, score websites and
// run the day's outreach. Every phase tolerates partial failure; the run
// carries on and reports what broke.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/dedupe"
	"github.com/ArunMS01/ai-sales/internal/enrich"
	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/outreach"
	"github.com/ArunMS01/ai-sales/internal/score"
	"github.com/ArunMS01/ai-sales/internal/source"
	"github.com/ArunMS01/ai-sales/internal/store"
)

// Result reports what one pipeline run accomplished.
type Result struct {
	Scraped    int      `json:"scraped"`
	Saved      int      `json:"saved"`
	Merged     int      `json:"merged"`
	Enriched   int      `json:"enriched"`
	Scored     int      `json:"scored"`
	Messaged   int      `json:"messaged"`
	FollowedUp int      `json:"followed_up"`
	Errors     []string `json:"errors,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Summary renders a one-line digest for logs and CLI output.
func (r *Result) Summary() string {
	return fmt.Sprintf("scraped=%d saved=%d merged=%d enriched=%d scored=%d messaged=%d followups=%d errors=%d in %s",
		r.Scraped, r.Saved, r.Merged, r.Enriched, r.Scored, r.Messaged, r.FollowedUp,
		len(r.Errors), r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}

// Params wires the pipeline's collaborators. People, Scorer and Scheduler
// may be nil to skip their phases.
type Params struct {
	Store      store.Store
	Runner     *source.Runner
	People     *source.People
	Enricher   *enrich.Bulk
	Scorer     *score.Scorer
	Scheduler  *outreach.Scheduler
	Queries    []source.Query
	ScoreLimit int
}

// Orchestrator runs the pipeline end to end.
type Orchestrator struct {
	p Params
}

// New creates an Orchestrator.
func New(p Params) *Orchestrator {
	if p.ScoreLimit <= 0 {
		p.ScoreLimit = 25
	}
	return &Orchestrator{p: p}
}

// Run executes one full pipeline pass.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	res := &Result{StartedAt: time.Now().UTC()}
	defer func() { res.FinishedAt = time.Now().UTC() }()

	o.discover(ctx, res)
	o.enrichPhase(ctx, res)
	o.scorePhase(ctx, res)
	o.outreachPhase(ctx, res)

	zap.L().Info("pipeline run done", zap.String("summary", res.Summary()))
	return res, nil
}

func (o *Orchestrator) discover(ctx context.Context, res *Result) {
	if o.p.Runner == nil || len(o.p.Queries) == 0 {
		return
	}

	candidates, failures := o.p.Runner.Discover(ctx, o.p.Queries)
	res.Scraped = len(candidates)
	for i := 0; i < failures; i++ {
		res.Errors = append(res.Errors, "source query failed")
	}

	// Decision-maker lookups run before absorption so merged duplicates
	// inherit the fields.
	if o.p.People != nil {
		o.p.People.Enrich(ctx, candidates)
	}

	d, err := dedupe.New(ctx, o.p.Store)
	if err != nil {
		res.Errors = append(res.Errors, eris.Wrap(err, "seed deduper").Error())
		return
	}
	absorbed := d.Absorb(ctx, candidates)
	res.Saved = absorbed.Saved
	res.Merged = absorbed.Merged
	res.Errors = append(res.Errors, absorbed.Errors...)
}

func (o *Orchestrator) enrichPhase(ctx context.Context, res *Result) {
	if o.p.Enricher == nil {
		return
	}
	er, err := o.p.Enricher.Run(ctx)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return
	}
	res.Enriched = er.Enriched
	res.Errors = append(res.Errors, er.Errors...)
}

func (o *Orchestrator) scorePhase(ctx context.Context, res *Result) {
	if o.p.Scorer == nil {
		return
	}

	leads, err := o.p.Store.List(ctx, store.LeadFilter{Stage: model.StageNew, Limit: o.p.ScoreLimit * 4})
	if err != nil {
		res.Errors = append(res.Errors, eris.Wrap(err, "list for scoring").Error())
		return
	}

	for i := range leads {
		if res.Scored >= o.p.ScoreLimit {
			break
		}
		lead := leads[i]
		if lead.Website == "" || lead.SpeedScore != nil {
			continue
		}
		if err := o.p.Scorer.Score(ctx, &lead); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		if err := o.p.Store.Update(ctx, &lead); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Scored++
	}
}

func (o *Orchestrator) outreachPhase(ctx context.Context, res *Result) {
	if o.p.Scheduler == nil {
		return
	}
	or, err := o.p.Scheduler.Run(ctx)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return
	}
	res.Messaged = or.Contacted
	res.FollowedUp = or.FollowedUp
	res.Errors = append(res.Errors, or.Errors...)
}
