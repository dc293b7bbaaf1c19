package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/outreach"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP surface and the daily pipeline cron",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		pipelines, err := buildPipelines(st, cfg.Outreach.Enabled)
		if err != nil {
			return err
		}
		srv := newServer(st, pipelines, outreach.NewInbound(st, nil))

		cr := cron.New()
		if _, err := cr.AddFunc(cfg.Server.CronSpec, func() {
			if !srv.triggerRun("all") {
				zap.L().Warn("cron trigger skipped, a run is already in progress")
			}
		}); err != nil {
			return eris.Wrapf(err, "bad cron spec %q", cfg.Server.CronSpec)
		}
		cr.Start()
		defer cr.Stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: srv.routes(),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = httpSrv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("cron", cfg.Server.CronSpec),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
