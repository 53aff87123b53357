package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fabwerk/ganttline/internal/api"
	"github.com/fabwerk/ganttline/internal/config"
)

// newServeCmd creates the serve command: run the HTTP API until the context
// is cancelled.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr string
		demo bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the timeline layout over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cfg, demo)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides the config file)")
	cmd.Flags().BoolVar(&demo, "demo", false, "serve built-in demo orders instead of the repository")

	return cmd
}

func runServe(ctx context.Context, cfg config.Config, demo bool) error {
	logger := loggerFromContext(ctx)

	repo, err := openRepository(ctx, cfg, demo)
	if err != nil {
		return err
	}
	defer repo.Close(context.Background())

	server := api.NewServer(repo, cfg.View.Bounds(), cfg.View.Units(), cfg.View.MarginDays, logger, nil)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
