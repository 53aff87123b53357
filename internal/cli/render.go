package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/errors"
	"github.com/fabwerk/ganttline/pkg/orders"
	"github.com/fabwerk/ganttline/pkg/render/gantt"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple formats)
	formats     []string // output formats: "svg", "json"
	granularity string   // time scale: week, month, quarter
	ppd         float64  // pixels per day override, 0 keeps the granularity default
	status      string   // status filter
	priority    string   // priority filter
	legend      bool     // include the status color legend in SVG output
	demo        bool     // use the built-in demo repository
}

// newRenderCmd creates the render command: fetch orders, assemble the
// layout, and write it to SVG and/or JSON files.
func newRenderCmd(configPath *string) *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		granularity: string(timeline.GranularityMonth),
		legend:      true,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the work-order timeline to SVG or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "timeline", "output file or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVarP(&opts.granularity, "granularity", "g", opts.granularity, "time scale: week, month, quarter")
	cmd.Flags().Float64Var(&opts.ppd, "ppd", 0, "pixels per day (0 uses the granularity default)")
	cmd.Flags().StringVar(&opts.status, "status", "", "only orders with this status")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "only orders with this priority")
	cmd.Flags().BoolVar(&opts.legend, "legend", opts.legend, "include the status color legend")
	cmd.Flags().BoolVar(&opts.demo, "demo", false, "render built-in demo orders instead of the repository")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "json": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg' or 'json')", f)
		}
	}
	return nil
}

// runRender fetches the orders, assembles the layout, and writes one file
// per requested format.
func runRender(ctx context.Context, cfg config.Config, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	repo, err := openRepository(ctx, cfg, opts.demo)
	if err != nil {
		return err
	}
	defer repo.Close(ctx)

	layout, rowLabels, err := assembleLayout(ctx, cfg, repo, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Assembled layout: %d bars, %d columns, %.0fpx wide",
		len(layout.Bars), len(layout.Columns), layout.ChartWidth)

	base := strings.TrimSuffix(opts.output, filepath.Ext(opts.output))
	for _, format := range opts.formats {
		var data []byte
		switch format {
		case "json":
			data, err = gantt.MarshalLayout(layout)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
			}
		default:
			svgOpts := []gantt.SVGOption{gantt.WithRowLabels(rowLabels)}
			if opts.legend {
				svgOpts = append(svgOpts, gantt.WithLegend())
			}
			data = gantt.RenderSVG(layout, svgOpts...)
		}

		path := base + "." + format
		if len(opts.formats) == 1 && filepath.Ext(opts.output) != "" {
			path = opts.output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
	}
	return nil
}

// assembleLayout runs one full layout pass: fetch the filtered orders,
// widen the visible window to enclose them, and assemble the geometry.
// It also returns the per-order row labels used by the SVG gutter.
func assembleLayout(ctx context.Context, cfg config.Config, repo orders.Repository, opts *renderOpts) (timeline.Layout, map[string]string, error) {
	logger := loggerFromContext(ctx)

	g, err := timeline.ParseGranularity(opts.granularity)
	if err != nil {
		return timeline.Layout{}, nil, errors.Wrap(errors.ErrCodeInvalidGranularity, err, "granularity %q", opts.granularity)
	}

	view := timeline.NewViewState(g, cfg.View.Bounds(), cfg.View.Units())
	if opts.ppd > 0 {
		view.Zoom(opts.ppd - view.PixelsPerDay())
	}
	filter := timeline.Filter{Status: timeline.ParseStatus(opts.status)}
	if opts.priority != "" {
		filter.Priority = timeline.ParsePriority(opts.priority)
	}
	view.SetFilter(filter)

	p := newProgress(logger)
	loaded, err := repo.FetchOrders(ctx, orders.QueryFor(view.Filter()))
	if err != nil {
		return timeline.Layout{}, nil, errors.Wrap(errors.ErrCodeDataUnavailable, err, "fetch orders")
	}
	p.done(fmt.Sprintf("Fetched %d orders", len(loaded)))

	tracker := timeline.NewTracker(cfg.View.MarginDays, time.Now)
	tracker.Observe(loaded)

	rowLabels := make(map[string]string, len(loaded))
	for _, o := range loaded {
		rowLabels[o.ID] = o.Label
	}
	return timeline.Assemble(loaded, view, tracker.Window(), time.Now), rowLabels, nil
}
