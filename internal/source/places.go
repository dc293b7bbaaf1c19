package source

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/normalize"
	"github.com/ArunMS01/ai-sales/pkg/places"
)

// PlacesAdapter discovers businesses through Google Places text search.
// The map pack is the richest source: most listings already carry a phone
// number and often a website.
type PlacesAdapter struct {
	client places.Client
}

// NewPlaces creates a PlacesAdapter.
func NewPlaces(client places.Client) *PlacesAdapter {
	return &PlacesAdapter{client: client}
}

func (a *PlacesAdapter) Name() string { return "gmaps" }

func (a *PlacesAdapter) Discover(ctx context.Context, q Query) ([]model.Lead, error) {
	resp, err := a.client.TextSearch(ctx, fmt.Sprintf("%s in %s", q.Category, q.City))
	if err != nil {
		return nil, eris.Wrapf(err, "places search %q in %s", q.Category, q.City)
	}

	var leads []model.Lead
	for _, p := range resp.Places {
		company := p.DisplayName.Text
		if company == "" {
			continue
		}
		leads = append(leads, model.Lead{
			Company:  company,
			Website:  p.WebsiteURI,
			Phone:    normalize.Phone(p.NationalPhoneNumber),
			City:     q.City,
			Category: q.Category,
			Source:   a.Name(),
		})
	}
	return capResults(leads, q.Limit), nil
}
