package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ai-sales",
	Short: "Lead acquisition and outreach pipeline for local businesses",
	Long:  "Discovers small-business leads from directories, search and marketplaces, enriches missing contact details, scores websites for pain signals and runs capped WhatsApp/email outreach.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
