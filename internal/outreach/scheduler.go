package outreach

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/pace"
	"github.com/ArunMS01/ai-sales/internal/score"
	"github.com/ArunMS01/ai-sales/internal/store"
)

const listBatchSize = 500

// Result summarizes one scheduler run.
type Result struct {
	Contacted  int      `json:"contacted"`
	FollowedUp int      `json:"followed_up"`
	Errors     []string `json:"errors,omitempty"`
}

// Options tunes a Scheduler.
type Options struct {
	// DailyCap bounds first-contact intros per run. Follow-ups are
	// cadence-driven and not counted against it.
	DailyCap int

	// FollowupDays lists, in days since first contact, when each
	// follow-up round fires.
	FollowupDays []int

	// Live sends real messages. When false the scheduler only logs,
	// but stage transitions still happen so funnels can be rehearsed.
	Live bool

	Pacer pace.Pacer

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Scheduler walks the funnel once a day: follow-ups for contacted leads
// first, then intros to the hottest fresh leads, all within the daily cap.
type Scheduler struct {
	store     store.Store
	transport Transport
	composer  *Composer
	opts      Options
}

// NewScheduler creates a Scheduler.
func NewScheduler(st store.Store, transport Transport, composer *Composer, opts Options) *Scheduler {
	if opts.DailyCap <= 0 {
		opts.DailyCap = 20
	}
	if len(opts.FollowupDays) == 0 {
		opts.FollowupDays = []int{2, 5, 10}
	}
	if opts.Pacer == nil {
		opts.Pacer = pace.None()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Scheduler{store: st, transport: transport, composer: composer, opts: opts}
}

// Run executes one outreach pass. Per-lead failures are collected; a dead
// number never stops the rest of the day's sends.
func (s *Scheduler) Run(ctx context.Context) (Result, error) {
	var res Result

	if err := s.followUps(ctx, &res); err != nil {
		return res, err
	}
	if err := s.intros(ctx, &res); err != nil {
		return res, err
	}

	zap.L().Info("outreach run done",
		zap.Int("contacted", res.Contacted),
		zap.Int("followed_up", res.FollowedUp),
		zap.Int("errors", len(res.Errors)),
		zap.Bool("live", s.opts.Live),
	)
	return res, nil
}

func (s *Scheduler) followUps(ctx context.Context, res *Result) error {
	leads, err := s.store.List(ctx, store.LeadFilter{
		Stage:    model.StageContacted,
		HasPhone: true,
		Limit:    listBatchSize,
	})
	if err != nil {
		return eris.Wrap(err, "outreach: list contacted")
	}

	now := s.opts.Now()
	for i := range leads {
		lead := leads[i]

		round := followupRound(now, lead.UpdatedAt, s.opts.FollowupDays)
		if round == 0 {
			continue
		}

		if err := s.deliver(ctx, &lead, s.composer.FollowUp(&lead, round)); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		// The row is deliberately not touched: the cadence stays anchored
		// to the first contact.
		res.FollowedUp++
	}
	return nil
}

func (s *Scheduler) intros(ctx context.Context, res *Result) error {
	leads, err := s.store.List(ctx, store.LeadFilter{
		Stage:    model.StageNew,
		HasPhone: true,
		Limit:    listBatchSize,
	})
	if err != nil {
		return eris.Wrap(err, "outreach: list fresh")
	}
	score.Prioritize(leads)

	for i := range leads {
		if res.Contacted >= s.opts.DailyCap {
			break
		}
		lead := leads[i]

		if err := s.deliver(ctx, &lead, s.composer.Intro(&lead)); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		if err := s.store.UpdateStage(ctx, lead.ID, model.StageContacted); err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Contacted++
	}
	return nil
}

func (s *Scheduler) deliver(ctx context.Context, lead *model.Lead, msg Message) error {
	if err := s.opts.Pacer.Wait(ctx); err != nil {
		return eris.Wrap(err, "outreach: interrupted")
	}
	if !s.opts.Live {
		zap.L().Info("simulated send",
			zap.String("company", lead.Company),
			zap.String("phone", lead.Phone),
			zap.String("body", msg.Body),
		)
		return nil
	}
	return s.transport.Send(ctx, lead, msg)
}

// followupRound returns which follow-up (1-based) is due exactly today,
// or 0 when none is. Day counts are whole days since first contact.
func followupRound(now, contactedAt time.Time, days []int) int {
	elapsed := int(now.Sub(contactedAt).Hours() / 24)
	for i, d := range days {
		if elapsed == d {
			return i + 1
		}
	}
	return 0
}
