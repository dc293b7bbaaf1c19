package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runLive bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline once: scrape, enrich, score, outreach",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		o, err := buildOrchestrator(st, cfg.Outreach.Enabled || runLive)
		if err != nil {
			return err
		}

		res, err := o.Run(ctx)
		if err != nil {
			return err
		}

		for _, e := range res.Errors {
			zap.L().Warn("pipeline error", zap.String("error", e))
		}
		fmt.Println(res.Summary())
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runLive, "live", false, "send real messages instead of simulating")
	rootCmd.AddCommand(runCmd)
}
