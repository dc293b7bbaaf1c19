package source

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/extract"
	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/pkg/serpapi"
)

// Instagram profile titles carry the handle and a boilerplate tail,
// e.g. "Acme Fashions (@acmefashions) • Instagram photos and videos".
var profileNoise = regexp.MustCompile(`\s*\(@[^)]*\)|\s*[•·].*$`)

// SocialAdapter finds businesses that sell through an Instagram page rather
// than a website. Profile snippets expose the audience size and often a bio
// phone or email.
type SocialAdapter struct {
	client serpapi.Client
}

// NewSocial creates a SocialAdapter.
func NewSocial(client serpapi.Client) *SocialAdapter {
	return &SocialAdapter{client: client}
}

func (a *SocialAdapter) Name() string { return "instagram" }

func (a *SocialAdapter) Discover(ctx context.Context, q Query) ([]model.Lead, error) {
	resp, err := a.client.Search(ctx, serpapi.SearchParams{
		Query: fmt.Sprintf("%s %s site:instagram.com", q.Category, q.City),
		Num:   20,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "instagram search %q in %s", q.Category, q.City)
	}

	var leads []model.Lead
	for _, r := range resp.OrganicResults {
		company := extract.CleanTitle(profileNoise.ReplaceAllString(r.Title, ""))
		if company == "" {
			continue
		}
		leads = append(leads, model.Lead{
			Company:   company,
			Phone:     extract.FirstPhone(r.Snippet),
			Email:     extract.FirstEmail(r.Snippet, nil),
			City:      q.City,
			Category:  q.Category,
			JobTitle:  "Founder / Owner",
			Followers: extract.Followers(r.Snippet),
			Source:    a.Name(),
		})
	}
	return capResults(leads, q.Limit), nil
}
