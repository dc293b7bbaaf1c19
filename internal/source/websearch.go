package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/extract"
	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/pkg/serpapi"
)

// WebSearchAdapter analyzes plain organic results for businesses with their
// own websites. Results pointing at directories, marketplaces and social
// platforms are skipped; those are either covered by other adapters or
// useless as a lead website.
type WebSearchAdapter struct {
	client      serpapi.Client
	skipDomains []string
}

// NewWebSearch creates a WebSearchAdapter that ignores links containing any
// of the given domain fragments.
func NewWebSearch(client serpapi.Client, skipDomains []string) *WebSearchAdapter {
	return &WebSearchAdapter{client: client, skipDomains: skipDomains}
}

func (a *WebSearchAdapter) Name() string { return "websearch" }

func (a *WebSearchAdapter) Discover(ctx context.Context, q Query) ([]model.Lead, error) {
	resp, err := a.client.Search(ctx, serpapi.SearchParams{
		Query: fmt.Sprintf("%s in %s", q.Category, q.City),
		Num:   20,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "web search %q in %s", q.Category, q.City)
	}

	var leads []model.Lead
	for _, r := range resp.OrganicResults {
		if a.skip(r.Link) {
			continue
		}
		company := extract.CleanTitle(r.Title)
		if company == "" {
			continue
		}
		leads = append(leads, model.Lead{
			Company:  company,
			Website:  r.Link,
			Phone:    extract.FirstPhone(r.Snippet),
			Email:    extract.FirstEmail(r.Snippet, nil),
			City:     q.City,
			Category: q.Category,
			Source:   a.Name(),
		})
	}
	return capResults(leads, q.Limit), nil
}

func (a *WebSearchAdapter) skip(link string) bool {
	if link == "" {
		return true
	}
	lower := strings.ToLower(link)
	for _, d := range a.skipDomains {
		if d != "" && strings.Contains(lower, strings.ToLower(d)) {
			return true
		}
	}
	return false
}
