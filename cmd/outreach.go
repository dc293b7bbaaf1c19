package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outreachLive bool

var outreachCmd = &cobra.Command{
	Use:   "outreach",
	Short: "Send the day's intro and follow-up messages",
	Long:  "Sends follow-ups to contacted leads and intros to the hottest fresh leads, within the daily cap. Without --live (or outreach.enabled) messages are only logged, but stage transitions still happen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		live := cfg.Outreach.Enabled || outreachLive
		sched, err := buildScheduler(st, live)
		if err != nil {
			return err
		}

		res, err := sched.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("contacted=%d followups=%d errors=%d live=%v\n",
			res.Contacted, res.FollowedUp, len(res.Errors), live)
		return nil
	},
}

func init() {
	outreachCmd.Flags().BoolVar(&outreachLive, "live", false, "send real messages instead of simulating")
	rootCmd.AddCommand(outreachCmd)
}
