package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/orders"
)

// newArchiveCmd creates the archive command: move finished orders whose end
// date lies far enough in the past into the archive collection.
func newArchiveCmd(configPath *string) *cobra.Command {
	var (
		olderThan time.Duration
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive finished work orders older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runArchive(cmd.Context(), cfg, olderThan, chunkSize)
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 90*24*time.Hour, "archive orders that ended at least this long ago")
	cmd.Flags().IntVar(&chunkSize, "chunk", 0, "orders moved per batch (0 uses the default)")

	return cmd
}

func runArchive(ctx context.Context, cfg config.Config, olderThan time.Duration, chunkSize int) error {
	logger := loggerFromContext(ctx)

	repo, err := orders.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	cutoff := time.Now().Add(-olderThan)
	logger.Debugf("Archiving finished orders that ended before %s", cutoff.Format("2006-01-02"))

	p := newProgress(logger)
	moved, err := repo.ArchiveCompleted(ctx, cutoff, chunkSize)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Archived %d orders", moved))
	return nil
}
