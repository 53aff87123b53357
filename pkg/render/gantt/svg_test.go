package gantt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fabwerk/ganttline/pkg/timeline"
)

func testLayout(t *testing.T) timeline.Layout {
	t.Helper()
	view := timeline.NewViewState(timeline.GranularityMonth, timeline.Bounds{}, nil)
	window := timeline.Range{
		Start: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	orders := []timeline.Order{
		{ID: "wo-1", Label: "Housing", Document: "PO-1", Status: timeline.StatusInProgress,
			Priority: timeline.PriorityHigh,
			Start:    time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "wo-2", Label: "Shaft", Document: "PO-2", Status: timeline.StatusDelayed,
			Priority: timeline.PriorityCritical,
			Start:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			End:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
	}
	clock := func() time.Time { return time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC) }
	return timeline.Assemble(orders, view, window, clock)
}

func TestRenderSVGStructure(t *testing.T) {
	svg := string(RenderSVG(testLayout(t), WithLegend()))

	for _, want := range []string{
		"<svg xmlns=",
		"May 2025",
		"Jun 2025",
		`class="order-bar"`,
		`class="today-line"`,
		"<title>",
		"PO-1",
		string(timeline.ColorRed), // delayed fill
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("SVG not closed")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	l := testLayout(t)
	a := RenderSVG(l)
	b := RenderSVG(l)
	if !bytes.Equal(a, b) {
		t.Error("RenderSVG must be deterministic for a fixed layout")
	}
}

func TestRenderSVGNoTodayLineOutsideWindow(t *testing.T) {
	l := testLayout(t)
	l.TodayOffset = nil
	svg := string(RenderSVG(l))
	if strings.Contains(svg, "today-line") {
		t.Error("today line rendered although the marker is absent")
	}
}

func TestRenderSVGEscapesText(t *testing.T) {
	l := testLayout(t)
	l.Bars[0].Label = `<script>"x"</script>`
	svg := string(RenderSVG(l))
	if strings.Contains(svg, "<script>") {
		t.Error("bar label not escaped")
	}
}

func TestLayoutJSONRoundTrip(t *testing.T) {
	l := testLayout(t)
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	back, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if back.ChartWidth != l.ChartWidth || len(back.Bars) != len(l.Bars) {
		t.Errorf("round trip changed the layout: %+v", back)
	}
	if back.Bars[0].OrderID != "wo-1" {
		t.Errorf("bar order lost: %+v", back.Bars)
	}
	if back.TodayOffset == nil || *back.TodayOffset != *l.TodayOffset {
		t.Error("today offset lost in round trip")
	}
}
