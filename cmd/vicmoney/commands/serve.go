package commands

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"vicmoney/internal/cli"
	apphttp "vicmoney/internal/http"
	"vicmoney/internal/log"
	"vicmoney/internal/tracker"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadAndValidateConfig(overrides)
			if err != nil {
				return err
			}
			logger := cli.SetupLogger(cfg, os.Stdout)

			ctx, stop := cli.SignalContext(cmd.Context())
			defer stop()

			t := tracker.New(logger)
			srv := apphttp.NewServer(cfg.Addr(), t, logger, apphttp.Options{
				RateLimitPerMinute: cfg.RateLimitPerMinute,
			})

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("Starting vicmoney server",
					log.FieldPort, cfg.Port,
					log.FieldOperation, log.OpStartup)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				logger.Error("Server error", log.FieldError, err, log.FieldPort, cfg.Port)
				return err
			}
			logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
			return nil
		},
	}
	cmd.Flags().StringVar(&overrides.Port, "port", "", "listen port (default $PORT or 8081)")
	cmd.Flags().StringVar(&overrides.LogLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	cmd.Flags().StringVar(&overrides.LogFormat, "log-format", "", "log format: text or json (default $LOG_FORMAT or text)")
	return cmd
}
