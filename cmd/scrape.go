package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ArunMS01/ai-sales/internal/orchestrator"
	"github.com/ArunMS01/ai-sales/internal/score"
)

var (
	scrapeCity     string
	scrapeCategory string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Discover new leads from the configured sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runner := buildRunner()
		if runner == nil {
			return eris.New("no sources configured: set a serp/places/indiamart key or a seed file")
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		cities := cfg.Scrape.Cities
		if scrapeCity != "" {
			cities = []string{scrapeCity}
		}
		categories := cfg.Scrape.Categories
		if scrapeCategory != "" {
			categories = []string{scrapeCategory}
		}

		var scorer *score.Scorer
		if cfg.Scrape.Score {
			scorer = buildScorer()
		}

		o := orchestrator.New(orchestrator.Params{
			Store:      st,
			Runner:     runner,
			Scorer:     scorer,
			Queries:    buildQueries(categories, cities),
			ScoreLimit: cfg.Scrape.ScoreLimit,
		})
		res, err := o.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Println(res.Summary())
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeCity, "city", "", "scrape a single city instead of the configured list")
	scrapeCmd.Flags().StringVar(&scrapeCategory, "category", "", "scrape a single category instead of the configured list")
	rootCmd.AddCommand(scrapeCmd)
}
