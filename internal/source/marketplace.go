package source

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/normalize"
	"github.com/ArunMS01/ai-sales/pkg/indiamart"
)

// MarketplaceAdapter pulls B2B supplier listings from IndiaMART.
type MarketplaceAdapter struct {
	client indiamart.Client
}

// NewMarketplace creates a MarketplaceAdapter.
func NewMarketplace(client indiamart.Client) *MarketplaceAdapter {
	return &MarketplaceAdapter{client: client}
}

func (a *MarketplaceAdapter) Name() string { return "indiamart" }

func (a *MarketplaceAdapter) Discover(ctx context.Context, q Query) ([]model.Lead, error) {
	resp, err := a.client.SearchSellers(ctx, indiamart.SellerQuery{
		Keyword: q.Category,
		City:    q.City,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "marketplace search %q in %s", q.Category, q.City)
	}

	var leads []model.Lead
	for _, s := range resp.Sellers {
		if s.CompanyName == "" {
			continue
		}
		city := s.City
		if city == "" {
			city = q.City
		}
		leads = append(leads, model.Lead{
			Company:  s.CompanyName,
			Name:     s.ContactPerson,
			Phone:    normalize.Phone(s.Mobile),
			Email:    s.Email,
			Website:  s.CatalogURL,
			City:     city,
			Category: q.Category,
			Source:   a.Name(),
		})
	}
	return capResults(leads, q.Limit), nil
}
