package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/store"
)

var (
	leadsStage string
	leadsCity  string
	leadsLimit int
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List stored leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if leadsStage != "" && !model.ValidStage(model.Stage(leadsStage)) {
			return eris.Errorf("unknown stage %q", leadsStage)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		leads, err := st.List(ctx, store.LeadFilter{
			Stage: model.Stage(leadsStage),
			City:  leadsCity,
			Limit: leadsLimit,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COMPANY\tCITY\tPHONE\tEMAIL\tSTAGE\tHOTNESS")
		for i := range leads {
			l := &leads[i]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
				l.Company, l.City, l.Phone, l.Email, l.Stage, l.Hotness())
		}
		return w.Flush()
	},
}

var leadsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show funnel counts by stage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		counts, err := st.CountByStage(ctx)
		if err != nil {
			return err
		}

		total := 0
		for _, stage := range []model.Stage{model.StageNew, model.StageContacted, model.StagePitched, model.StageClosed} {
			fmt.Printf("%-10s %d\n", stage, counts[stage])
			total += counts[stage]
		}
		fmt.Printf("%-10s %d\n", "total", total)
		return nil
	},
}

func init() {
	leadsCmd.Flags().StringVar(&leadsStage, "stage", "", "filter by funnel stage")
	leadsCmd.Flags().StringVar(&leadsCity, "city", "", "filter by city")
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", 50, "max rows to print")
	leadsCmd.AddCommand(leadsStatsCmd)
	rootCmd.AddCommand(leadsCmd)
}
