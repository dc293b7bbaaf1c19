package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/extract"
	"github.com/ArunMS01/ai-sales/internal/fetch"
	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/pkg/serpapi"
)

// DirectoryProvider looks the company up on its JustDial listing via a
// site-restricted search and reads the phone number from snippets.
type DirectoryProvider struct {
	client serpapi.Client
	domain string
}

// NewDirectoryProvider creates a DirectoryProvider for the given domain.
func NewDirectoryProvider(client serpapi.Client, domain string) *DirectoryProvider {
	if domain == "" {
		domain = "justdial.com"
	}
	return &DirectoryProvider{client: client, domain: domain}
}

func (p *DirectoryProvider) Name() string    { return "directory" }
func (p *DirectoryProvider) Fields() []Field { return []Field{FieldPhone} }

func (p *DirectoryProvider) Lookup(ctx context.Context, lead *model.Lead) (Patch, error) {
	resp, err := p.client.Search(ctx, serpapi.SearchParams{
		Query: fmt.Sprintf("%q %s site:%s", lead.Company, lead.City, p.domain),
		Num:   5,
	})
	if err != nil {
		return Patch{}, eris.Wrap(err, "directory lookup")
	}

	for _, r := range resp.OrganicResults {
		if phone := extract.FirstPhone(r.Snippet + " " + r.Title); phone != "" {
			return Patch{Phone: phone}, nil
		}
	}
	return Patch{}, nil
}

// SearchProvider runs a plain contact-intent search and mines snippets for
// phone numbers, emails and the business's own website.
type SearchProvider struct {
	client    serpapi.Client
	emailDeny []string
	linkSkip  []string
}

// NewSearchProvider creates a SearchProvider. linkSkip filters directory and
// social links out of website candidates.
func NewSearchProvider(client serpapi.Client, emailDeny, linkSkip []string) *SearchProvider {
	return &SearchProvider{client: client, emailDeny: emailDeny, linkSkip: linkSkip}
}

func (p *SearchProvider) Name() string { return "websearch" }
func (p *SearchProvider) Fields() []Field {
	return []Field{FieldPhone, FieldEmail, FieldWebsite}
}

func (p *SearchProvider) Lookup(ctx context.Context, lead *model.Lead) (Patch, error) {
	resp, err := p.client.Search(ctx, serpapi.SearchParams{
		Query: fmt.Sprintf("%q %s contact phone email", lead.Company, lead.City),
		Num:   10,
	})
	if err != nil {
		return Patch{}, eris.Wrap(err, "contact search")
	}

	var patch Patch
	for _, r := range resp.OrganicResults {
		text := r.Title + " " + r.Snippet
		if patch.Phone == "" {
			patch.Phone = extract.FirstPhone(text)
		}
		if patch.Email == "" {
			patch.Email = extract.FirstEmail(text, p.emailDeny)
		}
		if patch.Website == "" && !extract.Denied(r.Link, p.linkSkip) {
			patch.Website = r.Link
		}
	}
	return patch, nil
}

// WebsiteProvider fetches the lead's website and its contact pages and runs
// on-page extraction. The most reliable source of emails, but only works
// when the lead has a website.
type WebsiteProvider struct {
	fetcher   fetch.Fetcher
	emailDeny []string
	pageLimit int
}

// NewWebsiteProvider creates a WebsiteProvider that fetches at most
// pageLimit contact pages after the homepage.
func NewWebsiteProvider(fetcher fetch.Fetcher, emailDeny []string, pageLimit int) *WebsiteProvider {
	if pageLimit <= 0 {
		pageLimit = 2
	}
	return &WebsiteProvider{fetcher: fetcher, emailDeny: emailDeny, pageLimit: pageLimit}
}

func (p *WebsiteProvider) Name() string    { return "website" }
func (p *WebsiteProvider) Fields() []Field { return []Field{FieldEmail, FieldPhone} }

func (p *WebsiteProvider) Lookup(ctx context.Context, lead *model.Lead) (Patch, error) {
	if lead.Website == "" {
		return Patch{}, nil
	}

	base := strings.TrimRight(lead.Website, "/")
	pages := []string{base}
	for _, suffix := range []string{"/contact", "/contact-us"} {
		if len(pages) > p.pageLimit {
			break
		}
		pages = append(pages, base+suffix)
	}

	var patch Patch
	var lastErr error
	for _, page := range pages {
		body, err := p.fetcher.Get(ctx, page)
		if err != nil {
			lastErr = err
			continue
		}
		text := extract.StripTags(body)
		if patch.Email == "" {
			patch.Email = extract.FirstEmail(text, p.emailDeny)
		}
		if patch.Phone == "" {
			patch.Phone = extract.FirstPhone(text)
		}
		if patch.Email != "" && patch.Phone != "" {
			break
		}
	}

	if patch == (Patch{}) && lastErr != nil {
		return Patch{}, eris.Wrap(lastErr, "website lookup")
	}
	return patch, nil
}
