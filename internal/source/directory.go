package source

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/extract"
	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/pkg/serpapi"
)

// DirectoryAdapter mines JustDial listings through SerpAPI site-restricted
// queries, reading company names from result titles and phone numbers from
// snippets.
type DirectoryAdapter struct {
	client serpapi.Client
	domain string // e.g. "justdial.com"
}

// NewDirectory creates a DirectoryAdapter for the given directory domain.
func NewDirectory(client serpapi.Client, domain string) *DirectoryAdapter {
	if domain == "" {
		domain = "justdial.com"
	}
	return &DirectoryAdapter{client: client, domain: domain}
}

func (a *DirectoryAdapter) Name() string { return "justdial" }

func (a *DirectoryAdapter) Discover(ctx context.Context, q Query) ([]model.Lead, error) {
	resp, err := a.client.Search(ctx, serpapi.SearchParams{
		Query: fmt.Sprintf("%s in %s site:%s", q.Category, q.City, a.domain),
		Num:   20,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "directory search %q in %s", q.Category, q.City)
	}

	var leads []model.Lead
	for _, r := range resp.OrganicResults {
		company := extract.CleanTitle(r.Title)
		if company == "" {
			continue
		}
		leads = append(leads, model.Lead{
			Company:  company,
			Phone:    extract.FirstPhone(r.Snippet),
			Email:    extract.FirstEmail(r.Snippet, nil),
			City:     q.City,
			Category: q.Category,
			Source:   a.Name(),
		})
	}
	return capResults(leads, q.Limit), nil
}
