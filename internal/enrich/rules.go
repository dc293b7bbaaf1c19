package enrich

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Provider names accepted in a rules file.
const (
	ProviderDirectory = "directory"
	ProviderSearch    = "search"
	ProviderWebsite   = "website"
)

var knownProviders = map[string]bool{
	ProviderDirectory: true,
	ProviderSearch:    true,
	ProviderWebsite:   true,
}

// Rules tunes the cascade from a yaml file: provider order, email deny list
// and per-provider limits. Zero values fall back to configuration defaults.
type Rules struct {
	Providers           []string `yaml:"providers"`
	EmailDenyList       []string `yaml:"email_deny_list"`
	ContactPageLimit    int      `yaml:"contact_page_limit"`
	ProviderTimeoutSecs int      `yaml:"provider_timeout_secs"`
}

// LoadRules reads and validates a cascade rules file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "enrich: read rules %s", path)
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrapf(err, "enrich: parse rules %s", path)
	}

	for _, p := range r.Providers {
		if !knownProviders[p] {
			return nil, eris.Errorf("enrich: unknown provider %q in %s", p, path)
		}
	}
	return &r, nil
}
