// Package score rates lead websites with PageSpeed Insights and tags the
// pain points that make a lead worth pitching.
package score

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/normalize"
	"github.com/ArunMS01/ai-sales/internal/pace"
	"github.com/ArunMS01/ai-sales/pkg/pagespeed"
)

// Thresholds below which a score becomes a pitchable pain point.
const (
	SlowSiteThreshold = 50
	WeakSEOThreshold  = 60
)

// Scorer attaches performance and SEO scores to leads.
type Scorer struct {
	client pagespeed.Client
	pacer  pace.Pacer
}

// New creates a Scorer.
func New(client pagespeed.Client, pacer pace.Pacer) *Scorer {
	return &Scorer{client: client, pacer: pacer}
}

// Score analyzes the lead's website and fills SEOScore, SpeedScore and the
// derived pain points. Leads without a website are left untouched.
func (s *Scorer) Score(ctx context.Context, lead *model.Lead) error {
	if lead.Website == "" {
		return nil
	}
	if err := s.pacer.Wait(ctx); err != nil {
		return eris.Wrap(err, "score: interrupted")
	}

	res, err := s.client.Analyze(ctx, lead.Website)
	if err != nil {
		return eris.Wrapf(err, "score %s", lead.Website)
	}

	lead.SpeedScore = &res.Performance
	lead.SEOScore = &res.SEO
	Tag(lead)

	zap.L().Debug("scored lead",
		zap.String("company", lead.Company),
		zap.Int("speed", res.Performance),
		zap.Int("seo", res.SEO),
	)
	return nil
}

// Tag appends threshold-derived pain points, skipping ones already present.
func Tag(lead *model.Lead) {
	add := func(point string) {
		for _, p := range lead.PainPoints {
			if p == point {
				return
			}
		}
		if len(lead.PainPoints) < normalize.MaxPainPoints {
			lead.PainPoints = append(lead.PainPoints, point)
		}
	}

	if lead.SpeedScore != nil && *lead.SpeedScore < SlowSiteThreshold {
		add("website loads slowly on mobile")
	}
	if lead.SEOScore != nil && *lead.SEOScore < WeakSEOThreshold {
		add("weak SEO, losing search traffic")
	}
}

// Prioritize orders leads hottest first: lowest combined score wins, with
// ties broken by newest first.
func Prioritize(leads []model.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		hi, hj := leads[i].Hotness(), leads[j].Hotness()
		if hi != hj {
			return hi < hj
		}
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
}
