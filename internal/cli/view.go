package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/orders"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// newViewCmd creates the view command: an interactive terminal timeline.
func newViewCmd(configPath *string) *cobra.Command {
	var (
		granularity string
		demo        bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the work-order timeline interactively",
		Long: `View opens an interactive terminal timeline.

Keys:
  up/down        select an order
  +/-            zoom in/out
  w, m, q        week, month, quarter scale
  s, p           cycle the status / priority filter
  t              jump to today
  r              reload orders
  enter          print the selected order ID and exit
  esc, ctrl+c    quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			g, err := timeline.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			return runView(cmd.Context(), cfg, g, demo)
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(timeline.GranularityMonth), "initial time scale: week, month, quarter")
	cmd.Flags().BoolVar(&demo, "demo", false, "browse built-in demo orders instead of the repository")

	return cmd
}

func runView(ctx context.Context, cfg config.Config, g timeline.Granularity, demo bool) error {
	repo, err := openRepository(ctx, cfg, demo)
	if err != nil {
		return err
	}
	defer repo.Close(context.Background())

	m := newTimelineModel(ctx, cfg, orders.Fetcher(repo), g)
	defer m.loader.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(timelineModel); ok && fm.chosen != "" {
		fmt.Println(fm.chosen)
	}
	return nil
}
