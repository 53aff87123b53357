package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// newSeedCmd creates the seed command: insert generated work orders into
// the repository for demos and load testing.
func newSeedCmd(configPath *string) *cobra.Command {
	var (
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert generated work orders into the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, count, seed)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 25, "number of orders to insert")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 derives one from the clock)")

	return cmd
}

var (
	seedLabels = []string{
		"Gear housing", "Drive shaft", "Bearing seat", "Flange plate",
		"Spindle unit", "Clamp lever", "Cover panel", "Coupling hub",
		"Piston rod", "Valve block", "Guide rail", "Motor bracket",
	}
	seedStatuses = []timeline.Status{
		timeline.StatusOpen, timeline.StatusReleased, timeline.StatusPending,
		timeline.StatusInProgress, timeline.StatusDone, timeline.StatusDelayed,
	}
	seedPriorities = []timeline.Priority{
		timeline.PriorityCritical, timeline.PriorityHigh, timeline.PriorityMediumHigh,
		timeline.PriorityMedium, timeline.PriorityLow,
	}
)

func runSeed(ctx context.Context, cfg config.Config, count int, seed int64) error {
	logger := loggerFromContext(ctx)

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Debugf("Generating %d orders with seed %d", count, seed)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	generated := make([]timeline.Order, 0, count)
	for i := 0; i < count; i++ {
		start := today.AddDate(0, 0, rng.Intn(90)-30)
		generated = append(generated, timeline.Order{
			ID:       uuid.NewString(),
			Label:    seedLabels[rng.Intn(len(seedLabels))],
			Document: fmt.Sprintf("PO-%05d", rng.Intn(100000)),
			Status:   seedStatuses[rng.Intn(len(seedStatuses))],
			Priority: seedPriorities[rng.Intn(len(seedPriorities))],
			Start:    start,
			End:      start.AddDate(0, 0, 1+rng.Intn(21)),
		})
	}

	repo, err := openRepository(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	p := newProgress(logger)
	if err := repo.Insert(ctx, generated...); err != nil {
		return err
	}
	p.done(fmt.Sprintf("Inserted %d orders", count))
	return nil
}
