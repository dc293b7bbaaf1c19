package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/pace"
	"github.com/ArunMS01/ai-sales/pkg/indiamart"
	indiamartmocks "github.com/ArunMS01/ai-sales/pkg/indiamart/mocks"
	"github.com/ArunMS01/ai-sales/pkg/places"
	placesmocks "github.com/ArunMS01/ai-sales/pkg/places/mocks"
	"github.com/ArunMS01/ai-sales/pkg/serpapi"
	serpmocks "github.com/ArunMS01/ai-sales/pkg/serpapi/mocks"
)

func TestDirectoryAdapter_Discover(t *testing.T) {
	client := &serpmocks.MockClient{}
	client.On("Search", mock.Anything, serpapi.SearchParams{
		Query: "boutiques in Surat site:justdial.com",
		Num:   20,
	}).Return(&serpapi.SearchResponse{
		OrganicResults: []serpapi.OrganicResult{
			{Title: "Acme Fashions - Justdial", Snippet: "Best boutique. Call 9876543210"},
			{Title: "", Snippet: "nameless listing"},
		},
	}, nil)

	a := NewDirectory(client, "")
	leads, err := a.Discover(context.Background(), Query{Category: "boutiques", City: "Surat"})

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme Fashions", leads[0].Company)
	assert.Equal(t, "9876543210", leads[0].Phone)
	assert.Equal(t, "Surat", leads[0].City)
	assert.Equal(t, "justdial", leads[0].Source)
	client.AssertExpectations(t)
}

func TestWebSearchAdapter_SkipsDirectories(t *testing.T) {
	client := &serpmocks.MockClient{}
	client.On("Search", mock.Anything, mock.Anything).Return(&serpapi.SearchResponse{
		OrganicResults: []serpapi.OrganicResult{
			{Title: "Acme Fashions | Sarees", Link: "https://acmefashions.in"},
			{Title: "Top 10 boutiques", Link: "https://www.justdial.com/surat/boutiques"},
			{Title: "Beta on Instagram", Link: "https://instagram.com/beta"},
		},
	}, nil)

	a := NewWebSearch(client, []string{"justdial", "instagram"})
	leads, err := a.Discover(context.Background(), Query{Category: "boutiques", City: "Surat"})

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme Fashions", leads[0].Company)
	assert.Equal(t, "https://acmefashions.in", leads[0].Website)
	assert.Equal(t, "websearch", leads[0].Source)
}

func TestSocialAdapter_Discover(t *testing.T) {
	client := &serpmocks.MockClient{}
	client.On("Search", mock.Anything, serpapi.SearchParams{
		Query: "boutiques Surat site:instagram.com",
		Num:   20,
	}).Return(&serpapi.SearchResponse{
		OrganicResults: []serpapi.OrganicResult{
			{
				Title:   "Acme Fashions (@acmefashions) • Instagram photos and videos",
				Link:    "https://www.instagram.com/acmefashions/",
				Snippet: "12K Followers, 340 Following. Boutique in Surat. Call 9876543210",
			},
			{Title: "• Instagram", Snippet: "junk result"},
		},
	}, nil)

	a := NewSocial(client)
	leads, err := a.Discover(context.Background(), Query{Category: "boutiques", City: "Surat"})

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme Fashions", leads[0].Company)
	assert.Equal(t, 12000, leads[0].Followers)
	assert.Equal(t, "9876543210", leads[0].Phone)
	assert.Equal(t, "Founder / Owner", leads[0].JobTitle)
	assert.Equal(t, "instagram", leads[0].Source)
	client.AssertExpectations(t)
}

func TestPeople_FillsProfileFields(t *testing.T) {
	client := &serpmocks.MockClient{}
	client.On("Search", mock.Anything, serpapi.SearchParams{
		Query: `"Acme Fashions" Surat site:linkedin.com/in`,
		Num:   5,
	}).Return(&serpapi.SearchResponse{
		OrganicResults: []serpapi.OrganicResult{
			{Title: "Boutiques in Surat", Link: "https://www.linkedin.com/company/acme"},
			{Title: "Ramesh Shah - Founder - Acme Fashions | LinkedIn", Link: "https://www.linkedin.com/in/rameshshah"},
		},
	}, nil)

	leads := []model.Lead{
		{Company: "Acme Fashions", City: "Surat"},
		{Company: "Beta Textiles", City: "Jaipur", LinkedInURL: "https://www.linkedin.com/in/existing"},
	}

	p := NewPeople(client, pace.None(), 10)
	p.Enrich(context.Background(), leads)

	assert.Equal(t, "https://www.linkedin.com/in/rameshshah", leads[0].LinkedInURL)
	assert.Equal(t, "Ramesh Shah", leads[0].Name)
	assert.Equal(t, "Founder", leads[0].JobTitle)
	assert.Equal(t, "https://www.linkedin.com/in/existing", leads[1].LinkedInURL) // untouched
	client.AssertExpectations(t)
}

func TestPeople_LimitBoundsLookups(t *testing.T) {
	client := &serpmocks.MockClient{}
	client.On("Search", mock.Anything, mock.Anything).Return(&serpapi.SearchResponse{}, nil).Once()

	leads := []model.Lead{
		{Company: "Alpha Co"},
		{Company: "Beta Co"},
	}

	p := NewPeople(client, pace.None(), 1)
	p.Enrich(context.Background(), leads)

	client.AssertExpectations(t)
	assert.Empty(t, leads[0].LinkedInURL)
	assert.Empty(t, leads[1].LinkedInURL)
}

func TestParseProfileTitle(t *testing.T) {
	name, job := parseProfileTitle("Ramesh Shah - Founder - Acme Fashions | LinkedIn")
	assert.Equal(t, "Ramesh Shah", name)
	assert.Equal(t, "Founder", job)

	name, job = parseProfileTitle("Priya Patel | LinkedIn")
	assert.Equal(t, "Priya Patel", name)
	assert.Empty(t, job)
}

func TestPlacesAdapter_Discover(t *testing.T) {
	client := &placesmocks.MockClient{}
	client.On("TextSearch", mock.Anything, "boutiques in Surat").Return(&places.TextSearchResponse{
		Places: []places.Place{
			{
				DisplayName:         places.DisplayName{Text: "Acme Fashions"},
				NationalPhoneNumber: "098765 43210",
				WebsiteURI:          "https://acmefashions.in",
			},
		},
	}, nil)

	a := NewPlaces(client)
	leads, err := a.Discover(context.Background(), Query{Category: "boutiques", City: "Surat"})

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "9876543210", leads[0].Phone) // normalized
	assert.Equal(t, "gmaps", leads[0].Source)
}

func TestMarketplaceAdapter_Discover(t *testing.T) {
	client := &indiamartmocks.MockClient{}
	client.On("SearchSellers", mock.Anything, indiamart.SellerQuery{Keyword: "sarees", City: "Surat"}).
		Return(&indiamart.SellerResponse{
			Sellers: []indiamart.Seller{
				{CompanyName: "Acme Sarees", ContactPerson: "Ramesh Patel", Mobile: "+91-9876543210"},
			},
		}, nil)

	a := NewMarketplace(client)
	leads, err := a.Discover(context.Background(), Query{Category: "sarees", City: "Surat"})

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme Sarees", leads[0].Company)
	assert.Equal(t, "Ramesh Patel", leads[0].Name)
	assert.Equal(t, "9876543210", leads[0].Phone)
	assert.Equal(t, "Surat", leads[0].City) // falls back to query city
	assert.Equal(t, "indiamart", leads[0].Source)
}

func TestSeedListAdapter_Discover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.csv")
	csv := "company,phone,city,notes\nAcme Fashions,9876543210,Surat,ignored\nBeta Textiles,,Jaipur,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	a := NewSeedList(path)
	leads, err := a.Discover(context.Background(), Query{})

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "Acme Fashions", leads[0].Company)
	assert.Equal(t, "9876543210", leads[0].Phone)
	assert.Equal(t, "seed", leads[0].Source)
	assert.Equal(t, "Beta Textiles", leads[1].Company)
}

func TestSeedListAdapter_MissingCompanyColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.csv")
	require.NoError(t, os.WriteFile(path, []byte("phone,city\n9876543210,Surat\n"), 0o644))

	a := NewSeedList(path)
	_, err := a.Discover(context.Background(), Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no company column")
}
