package source

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/pace"
	"github.com/ArunMS01/ai-sales/pkg/serpapi"
)

// People fills decision-maker details on freshly sourced candidates by
// searching public LinkedIn profiles. It runs in the sourcing phase so the
// fields land before candidates are absorbed into the store.
type People struct {
	client serpapi.Client
	pacer  pace.Pacer
	limit  int
}

// NewPeople creates a People lookup doing at most limit searches per run.
func NewPeople(client serpapi.Client, pacer pace.Pacer, limit int) *People {
	if limit <= 0 {
		limit = 15
	}
	if pacer == nil {
		pacer = pace.None()
	}
	return &People{client: client, pacer: pacer, limit: limit}
}

// Enrich fills Name, JobTitle and LinkedInURL in place on candidates that
// lack a profile. Lookup failures skip the candidate, never the batch.
func (p *People) Enrich(ctx context.Context, leads []model.Lead) {
	looked := 0
	for i := range leads {
		if looked >= p.limit {
			break
		}
		if leads[i].LinkedInURL != "" || leads[i].Company == "" {
			continue
		}
		if err := p.pacer.Wait(ctx); err != nil {
			zap.L().Warn("people lookup interrupted", zap.Error(err))
			return
		}
		looked++

		resp, err := p.client.Search(ctx, serpapi.SearchParams{
			Query: fmt.Sprintf("%q %s site:linkedin.com/in", leads[i].Company, leads[i].City),
			Num:   5,
		})
		if err != nil {
			zap.L().Warn("people lookup failed",
				zap.String("company", leads[i].Company),
				zap.Error(err),
			)
			continue
		}

		for _, r := range resp.OrganicResults {
			if !strings.Contains(r.Link, "linkedin.com/in") {
				continue
			}
			name, job := parseProfileTitle(r.Title)
			if name == "" {
				continue
			}
			leads[i].LinkedInURL = r.Link
			if leads[i].Name == "" {
				leads[i].Name = name
			}
			if leads[i].JobTitle == "" {
				leads[i].JobTitle = job
			}
			break
		}
	}
}

// parseProfileTitle splits a result title like
// "Ramesh Shah - Founder - Acme Fashions | LinkedIn" into name and job.
func parseProfileTitle(title string) (name, job string) {
	if i := strings.Index(title, "|"); i >= 0 {
		title = title[:i]
	}
	parts := strings.Split(title, " - ")
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		job = strings.TrimSpace(parts[1])
	}
	return name, job
}
