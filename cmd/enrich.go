package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enrichLimit int

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill missing contact details on stored leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if enrichLimit > 0 {
			cfg.Enrich.Limit = enrichLimit
		}

		res, err := buildEnricher(st).Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("processed=%d enriched=%d errors=%d\n", res.Processed, res.Enriched, len(res.Errors))
		return nil
	},
}

func init() {
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max leads to enrich this run (default from config)")
	rootCmd.AddCommand(enrichCmd)
}
