package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/errors"
	"github.com/fabwerk/ganttline/pkg/render/gantt"
)

func testContext() context.Context {
	logger := charmlog.New(os.Stderr)
	logger.SetLevel(charmlog.FatalLevel)
	return withLogger(context.Background(), logger)
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("default formats = %v", got)
	}
	if got := parseFormats("svg,json"); len(got) != 2 {
		t.Errorf("formats = %v", got)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	err := validateFormats([]string{"pdf"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
}

func TestRunRenderDemo(t *testing.T) {
	dir := t.TempDir()
	opts := renderOpts{
		output:      filepath.Join(dir, "timeline"),
		formats:     []string{"svg", "json"},
		granularity: "month",
		legend:      true,
		demo:        true,
	}

	if err := runRender(testContext(), config.Default(), &opts); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "timeline.svg"))
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svg), "order-bar") {
		t.Error("SVG output has no order bars")
	}

	raw, err := os.ReadFile(filepath.Join(dir, "timeline.json"))
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	layout, err := gantt.UnmarshalLayout(raw)
	if err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(layout.Bars) != len(demoOrders(layout.Window.Start)) {
		t.Errorf("bars = %d", len(layout.Bars))
	}
}

func TestRunRenderBadGranularity(t *testing.T) {
	opts := renderOpts{
		output:      filepath.Join(t.TempDir(), "timeline"),
		formats:     []string{"svg"},
		granularity: "fortnight",
		demo:        true,
	}
	err := runRender(testContext(), config.Default(), &opts)
	if !errors.Is(err, errors.ErrCodeInvalidGranularity) {
		t.Errorf("expected INVALID_GRANULARITY, got %v", err)
	}
}

func TestRunRenderStatusFilter(t *testing.T) {
	dir := t.TempDir()
	opts := renderOpts{
		output:      filepath.Join(dir, "filtered"),
		formats:     []string{"json"},
		granularity: "week",
		status:      "Delayed",
		demo:        true,
	}
	if err := runRender(testContext(), config.Default(), &opts); err != nil {
		t.Fatalf("runRender: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "filtered.json"))
	if err != nil {
		t.Fatal(err)
	}
	layout, err := gantt.UnmarshalLayout(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Bars) != 1 {
		t.Errorf("filtered bars = %d", len(layout.Bars))
	}
}

func TestOpenCacheUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "memcached"
	_, err := openCache(context.Background(), cfg)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestDemoOrdersCoverStatuses(t *testing.T) {
	seen := map[string]bool{}
	for _, o := range demoOrders(time.Now()) {
		seen[string(o.Status)] = true
		if !o.End.After(o.Start) {
			t.Errorf("order %s has a malformed interval", o.ID)
		}
	}
	for _, want := range []string{"Open", "InProgress", "Done", "Delayed"} {
		if !seen[want] {
			t.Errorf("demo set misses status %s", want)
		}
	}
}
