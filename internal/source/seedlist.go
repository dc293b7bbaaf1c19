package source

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ArunMS01/ai-sales/internal/model"
)

// SeedListAdapter reads candidates from a CSV file with a header row.
// Recognized columns: company, name, phone, email, city, website, category.
// Unknown columns are ignored, so exports from other tools load as-is.
type SeedListAdapter struct {
	path string
}

// NewSeedList creates a SeedListAdapter for the given CSV path.
func NewSeedList(path string) *SeedListAdapter {
	return &SeedListAdapter{path: path}
}

func (a *SeedListAdapter) Name() string { return "seed" }

// Discover ignores the query's category/city; a seed file is taken verbatim.
func (a *SeedListAdapter) Discover(ctx context.Context, q Query) ([]model.Lead, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return nil, eris.Wrapf(err, "open seed file %s", a.path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "read seed header")
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["company"]; !ok {
		return nil, eris.Errorf("seed file %s has no company column", a.path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var leads []model.Lead
	for {
		if err := ctx.Err(); err != nil {
			return leads, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "read seed row")
		}
		leads = append(leads, model.Lead{
			Company:  field(row, "company"),
			Name:     field(row, "name"),
			Phone:    field(row, "phone"),
			Email:    field(row, "email"),
			City:     field(row, "city"),
			Website:  field(row, "website"),
			Category: field(row, "category"),
			Source:   a.Name(),
		})
	}
	return capResults(leads, q.Limit), nil
}
