package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/enrich"
	"github.com/ArunMS01/ai-sales/internal/fetch"
	"github.com/ArunMS01/ai-sales/internal/orchestrator"
	"github.com/ArunMS01/ai-sales/internal/outreach"
	"github.com/ArunMS01/ai-sales/internal/pace"
	"github.com/ArunMS01/ai-sales/internal/score"
	"github.com/ArunMS01/ai-sales/internal/source"
	"github.com/ArunMS01/ai-sales/internal/store"
	"github.com/ArunMS01/ai-sales/pkg/indiamart"
	"github.com/ArunMS01/ai-sales/pkg/pagespeed"
	"github.com/ArunMS01/ai-sales/pkg/places"
	"github.com/ArunMS01/ai-sales/pkg/serpapi"
	"github.com/ArunMS01/ai-sales/pkg/twilio"
)

// openStore opens the configured backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		st, err = store.NewSQLite(cfg.Store.SQLitePath)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

func serpClient() serpapi.Client {
	return serpapi.NewClient(cfg.Serp.Key,
		serpapi.WithBaseURL(cfg.Serp.BaseURL),
		serpapi.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Serp.TimeoutSecs) * time.Second}),
	)
}

// buildRunner registers an adapter for every source with credentials.
// Returns nil when nothing is configured.
func buildRunner() *source.Runner {
	var adapters []source.Adapter
	if cfg.Serp.Key != "" {
		sc := serpClient()
		adapters = append(adapters,
			source.NewDirectory(sc, cfg.Enrich.DirectoryDomain),
			source.NewWebSearch(sc, cfg.Scrape.DirectoryDomains),
			source.NewSocial(sc),
		)
	}
	if cfg.Places.Key != "" {
		adapters = append(adapters, source.NewPlaces(
			places.NewClient(cfg.Places.Key, places.WithBaseURL(cfg.Places.BaseURL))))
	}
	if cfg.IndiaMart.Key != "" {
		adapters = append(adapters, source.NewMarketplace(
			indiamart.NewClient(cfg.IndiaMart.Key, indiamart.WithBaseURL(cfg.IndiaMart.BaseURL))))
	}
	if cfg.Scrape.SeedFile != "" {
		adapters = append(adapters, source.NewSeedList(cfg.Scrape.SeedFile))
	}
	if len(adapters) == 0 {
		return nil
	}
	return source.NewRunner(pace.Fixed(cfg.Scrape.Delay()), adapters...)
}

// buildPeople assembles the decision-maker lookup for the sourcing phase.
// Returns nil when SerpAPI is not configured.
func buildPeople() *source.People {
	if cfg.Serp.Key == "" {
		return nil
	}
	return source.NewPeople(serpClient(), pace.Fixed(cfg.Scrape.Delay()), cfg.Scrape.PeopleLimit)
}

// buildQueries expands the category and city lists into their cross product.
func buildQueries(categories, cities []string) []source.Query {
	var qs []source.Query
	for _, cat := range categories {
		for _, city := range cities {
			qs = append(qs, source.Query{Category: cat, City: city, Limit: cfg.Scrape.MaxPerAdapter})
		}
	}
	return qs
}

// buildEnricher assembles the contact cascade, cheapest providers first.
// An optional rules file overrides provider order and limits. The website
// scraper needs no credentials and defaults to last.
func buildEnricher(st store.Store) *enrich.Bulk {
	deny := cfg.Enrich.EmailDenyList
	pageLimit := cfg.Enrich.ContactPageLimit
	timeout := cfg.Enrich.ProviderTimeout
	order := []string{enrich.ProviderDirectory, enrich.ProviderSearch, enrich.ProviderWebsite}

	if cfg.Enrich.RulesFile != "" {
		rules, err := enrich.LoadRules(cfg.Enrich.RulesFile)
		if err != nil {
			zap.L().Warn("cascade rules file ignored", zap.Error(err))
		} else {
			if len(rules.Providers) > 0 {
				order = rules.Providers
			}
			if len(rules.EmailDenyList) > 0 {
				deny = rules.EmailDenyList
			}
			if rules.ContactPageLimit > 0 {
				pageLimit = rules.ContactPageLimit
			}
			if rules.ProviderTimeoutSecs > 0 {
				timeout = rules.ProviderTimeoutSecs
			}
		}
	}

	var sc serpapi.Client
	if cfg.Serp.Key != "" {
		sc = serpClient()
	}

	var providers []enrich.Provider
	for _, name := range order {
		switch name {
		case enrich.ProviderDirectory:
			if sc != nil {
				providers = append(providers, enrich.NewDirectoryProvider(sc, cfg.Enrich.DirectoryDomain))
			}
		case enrich.ProviderSearch:
			if sc != nil {
				providers = append(providers, enrich.NewSearchProvider(sc, deny, cfg.Scrape.DirectoryDomains))
			}
		case enrich.ProviderWebsite:
			providers = append(providers, enrich.NewWebsiteProvider(fetch.NewHTTP(fetch.Options{}), deny, pageLimit))
		}
	}

	cascade := enrich.NewCascade(time.Duration(timeout)*time.Second, providers...)
	return enrich.NewBulk(st, cascade, pace.Fixed(cfg.Enrich.Delay()), cfg.Enrich.Limit)
}

func buildScorer() *score.Scorer {
	if cfg.PageSpeed.Key == "" {
		return nil
	}
	client := pagespeed.NewClient(cfg.PageSpeed.Key, pagespeed.WithBaseURL(cfg.PageSpeed.BaseURL))
	return score.New(client, pace.Fixed(cfg.Scrape.Delay()))
}

func buildTransport(live bool) (outreach.Transport, error) {
	switch cfg.Outreach.Channel {
	case "email":
		if live && (cfg.SMTP.Host == "" || cfg.SMTP.From == "") {
			return nil, eris.New("smtp host and from address are required for live email outreach")
		}
		return outreach.NewEmail(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From), nil
	default:
		if live && (cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "") {
			return nil, eris.New("twilio credentials are required for live whatsapp outreach")
		}
		client := twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppFrom,
			twilio.WithBaseURL(cfg.Twilio.BaseURL))
		return outreach.NewWhatsApp(client), nil
	}
}

func buildScheduler(st store.Store, live bool) (*outreach.Scheduler, error) {
	tr, err := buildTransport(live)
	if err != nil {
		return nil, err
	}
	return outreach.NewScheduler(st, tr, outreach.NewComposer(cfg.Outreach.Agency), outreach.Options{
		DailyCap:     cfg.Outreach.DailyCap,
		FollowupDays: cfg.Outreach.FollowupDays,
		Live:         live,
		Pacer:        pace.Fixed(cfg.Outreach.SendDelay()),
	}), nil
}

// buildOrchestrator wires the full pipeline from configuration.
func buildOrchestrator(st store.Store, live bool) (*orchestrator.Orchestrator, error) {
	sched, err := buildScheduler(st, live)
	if err != nil {
		return nil, err
	}
	return orchestrator.New(orchestrator.Params{
		Store:      st,
		Runner:     buildRunner(),
		People:     buildPeople(),
		Enricher:   buildEnricher(st),
		Scorer:     buildScorer(),
		Scheduler:  sched,
		Queries:    buildQueries(cfg.Scrape.Categories, cfg.Scrape.Cities),
		ScoreLimit: cfg.Scrape.ScoreLimit,
	}), nil
}

// buildPipelines wires the full pipeline plus per-phase variants for the
// HTTP trigger routes. All variants share the same collaborators.
func buildPipelines(st store.Store, live bool) (map[string]*orchestrator.Orchestrator, error) {
	sched, err := buildScheduler(st, live)
	if err != nil {
		return nil, err
	}
	var (
		runner   = buildRunner()
		people   = buildPeople()
		enricher = buildEnricher(st)
		scorer   = buildScorer()
		queries  = buildQueries(cfg.Scrape.Categories, cfg.Scrape.Cities)
	)
	return map[string]*orchestrator.Orchestrator{
		"all": orchestrator.New(orchestrator.Params{
			Store: st, Runner: runner, People: people, Enricher: enricher, Scorer: scorer,
			Scheduler: sched, Queries: queries, ScoreLimit: cfg.Scrape.ScoreLimit,
		}),
		"scrape": orchestrator.New(orchestrator.Params{
			Store: st, Runner: runner, People: people, Queries: queries,
		}),
		"enrich": orchestrator.New(orchestrator.Params{
			Store: st, Enricher: enricher, Scorer: scorer, ScoreLimit: cfg.Scrape.ScoreLimit,
		}),
		"outreach": orchestrator.New(orchestrator.Params{
			Store: st, Scheduler: sched,
		}),
	}, nil
}
