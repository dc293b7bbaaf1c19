// Package dedupe merges scraped candidates into the lead store, collapsing
// duplicates on the normalized company-name key. Existing field values always
// win; an incoming duplicate can only fill gaps.
package dedupe

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/normalize"
	"github.com/ArunMS01/ai-sales/internal/store"
)

// Result summarizes an Absorb pass. Merged counts every duplicate collapsed
// into an existing lead, whether or not it contributed new field values.
type Result struct {
	Saved  int      `json:"saved"`
	Merged int      `json:"merged"`
	Errors []string `json:"errors,omitempty"`
}

// Deduper tracks which dedup keys already exist in the store so a batch can
// be absorbed with one lookup per duplicate instead of one per candidate.
type Deduper struct {
	store store.Store
	seen  map[string]string // dedup key -> lead id
}

// New seeds a Deduper from the keys already persisted in the store.
func New(ctx context.Context, st store.Store) (*Deduper, error) {
	keys, err := st.DedupKeys(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "dedupe: seed keys")
	}
	return &Deduper{store: st, seen: keys}, nil
}

// Absorb normalizes and upserts a batch of candidates. Each candidate either
// inserts a new lead or gap-fills an existing one. A failing candidate is
// recorded and skipped; the rest of the batch still lands.
func (d *Deduper) Absorb(ctx context.Context, candidates []model.Lead) Result {
	var res Result
	for i := range candidates {
		lead := candidates[i]
		normalize.Lead(&lead)

		key := lead.DedupKey()
		if key == "" {
			res.Errors = append(res.Errors, "candidate without company or name skipped")
			continue
		}

		if id, ok := d.seen[key]; ok {
			if err := d.merge(ctx, id, &lead); err != nil {
				res.Errors = append(res.Errors, err.Error())
				continue
			}
			res.Merged++
			continue
		}

		if err := d.store.Insert(ctx, &lead); err != nil {
			res.Errors = append(res.Errors, eris.Wrapf(err, "insert %s", lead.Company).Error())
			continue
		}
		d.seen[key] = lead.ID
		res.Saved++
	}

	zap.L().Info("absorbed candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("saved", res.Saved),
		zap.Int("merged", res.Merged),
		zap.Int("errors", len(res.Errors)),
	)
	return res
}

// merge gap-fills the existing lead from the incoming duplicate. The row is
// only written when a field actually changed.
func (d *Deduper) merge(ctx context.Context, id string, incoming *model.Lead) error {
	existing, err := d.store.Get(ctx, id)
	if err != nil {
		return eris.Wrapf(err, "load existing %s", id)
	}
	if existing == nil {
		return eris.Errorf("existing lead vanished: %s", id)
	}

	if !Merge(existing, incoming) {
		return nil
	}
	if err := d.store.Update(ctx, existing); err != nil {
		return eris.Wrapf(err, "update merged %s", id)
	}
	return nil
}

// Merge copies incoming values into dst only where dst is empty. Reports
// whether dst changed. Stage and timestamps are never touched.
func Merge(dst, incoming *model.Lead) bool {
	changed := false
	fill := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
			changed = true
		}
	}

	fill(&dst.Name, incoming.Name)
	fill(&dst.Website, incoming.Website)
	fill(&dst.Phone, incoming.Phone)
	fill(&dst.Email, incoming.Email)
	fill(&dst.City, incoming.City)
	fill(&dst.Category, incoming.Category)
	fill(&dst.JobTitle, incoming.JobTitle)
	fill(&dst.LinkedInURL, incoming.LinkedInURL)
	fill(&dst.WhatsAppURL, incoming.WhatsAppURL)

	if dst.SEOScore == nil && incoming.SEOScore != nil {
		dst.SEOScore = incoming.SEOScore
		changed = true
	}
	if dst.SpeedScore == nil && incoming.SpeedScore != nil {
		dst.SpeedScore = incoming.SpeedScore
		changed = true
	}
	if len(dst.PainPoints) == 0 && len(incoming.PainPoints) > 0 {
		dst.PainPoints = incoming.PainPoints
		changed = true
	}
	if dst.Followers == 0 && incoming.Followers > 0 {
		dst.Followers = incoming.Followers
		changed = true
	}
	return changed
}
