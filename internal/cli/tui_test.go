package cli

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

func testModel(t *testing.T) timelineModel {
	t.Helper()
	fetch := func(ctx context.Context, f timeline.Filter) ([]timeline.Order, error) {
		return demoOrders(time.Now()), nil
	}
	m := newTimelineModel(context.Background(), config.Default(), fetch, timeline.GranularityMonth)
	t.Cleanup(m.loader.Close)
	m.width = 120
	m.height = 40
	m.orders = demoOrders(time.Now())
	m.tracker.Observe(m.orders)
	m.reassemble()
	return m
}

func pressKey(t *testing.T, m timelineModel, key string) timelineModel {
	t.Helper()
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	nm, ok := next.(timelineModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func TestGranularityKeys(t *testing.T) {
	m := testModel(t)

	m = pressKey(t, m, "w")
	if m.view.Granularity() != timeline.GranularityWeek {
		t.Errorf("after w: %s", m.view.Granularity())
	}
	if m.view.PixelsPerDay() != timeline.DefaultUnits[timeline.GranularityWeek] {
		t.Errorf("week zoom = %v", m.view.PixelsPerDay())
	}

	m = pressKey(t, m, "q")
	if m.view.Granularity() != timeline.GranularityQuarter {
		t.Errorf("after q: %s", m.view.Granularity())
	}

	m = pressKey(t, m, "m")
	if m.view.Granularity() != timeline.GranularityMonth {
		t.Errorf("after m: %s", m.view.Granularity())
	}
}

func TestZoomKeysClamp(t *testing.T) {
	m := testModel(t)
	for i := 0; i < 100; i++ {
		m = pressKey(t, m, "+")
	}
	if got := m.view.PixelsPerDay(); got != timeline.DefaultBounds.Max {
		t.Errorf("zoomed in ppd = %v", got)
	}
	for i := 0; i < 100; i++ {
		m = pressKey(t, m, "-")
	}
	if got := m.view.PixelsPerDay(); got != timeline.DefaultBounds.Min {
		t.Errorf("zoomed out ppd = %v", got)
	}
}

func TestSelectionAndPick(t *testing.T) {
	m := testModel(t)

	m = pressKey(t, m, "down")
	m = pressKey(t, m, "down")
	if m.selected != 2 {
		t.Errorf("selected = %d", m.selected)
	}
	m = pressKey(t, m, "up")
	if m.selected != 1 {
		t.Errorf("selected = %d", m.selected)
	}

	m = pressKey(t, m, "enter")
	if m.chosen != m.orders[1].ID {
		t.Errorf("chosen = %q", m.chosen)
	}
}

func TestSelectionStopsAtEdges(t *testing.T) {
	m := testModel(t)
	m = pressKey(t, m, "up")
	if m.selected != 0 {
		t.Errorf("selected = %d", m.selected)
	}
	for i := 0; i < len(m.orders)+5; i++ {
		m = pressKey(t, m, "down")
	}
	if m.selected != len(m.orders)-1 {
		t.Errorf("selected = %d", m.selected)
	}
}

func TestFilterCycleTriggersReload(t *testing.T) {
	m := testModel(t)
	before := m.view.Revision()

	m = pressKey(t, m, "s")
	if m.view.Filter().Status != statusCycle[1] {
		t.Errorf("status filter = %q", m.view.Filter().Status)
	}
	if !m.loading {
		t.Error("filter change should start a reload")
	}
	if m.view.Revision() == before {
		t.Error("filter change should bump the revision")
	}

	// Cycling through the whole list returns to "no filter".
	for i := 1; i < len(statusCycle); i++ {
		m = pressKey(t, m, "s")
	}
	if m.view.Filter().Status != "" {
		t.Errorf("status filter after full cycle = %q", m.view.Filter().Status)
	}
}

func TestJumpToTodayKeepsOrdersVisible(t *testing.T) {
	m := testModel(t)
	m = pressKey(t, m, "t")

	window := m.tracker.Window()
	for _, o := range m.orders {
		if o.Start.Before(window.Start) || o.End.After(window.End) {
			t.Errorf("order %s outside window after jump", o.ID)
		}
	}
}

func TestOrdersMsgUpdatesLayout(t *testing.T) {
	m := testModel(t)
	fresh := demoOrders(time.Now())[:3]
	next, cmd := m.Update(ordersMsg(timeline.LoadResult{Orders: fresh, Snapshot: "s"}))
	nm := next.(timelineModel)

	if len(nm.layout.Bars) != 3 {
		t.Errorf("bars = %d", len(nm.layout.Bars))
	}
	if nm.loading {
		t.Error("loading flag should clear on delivery")
	}
	if cmd == nil {
		t.Error("update must re-arm the results listener")
	}
}

func TestRowLineMultibyteLabel(t *testing.T) {
	m := testModel(t)
	m.orders[0].Label = "Gehäusedeckel Ø45 中文加长标签超过栏宽"
	m.reassemble()

	line := m.rowLine(0, m.layout.Bars[0], 40)
	if !utf8.ValidString(line) {
		t.Error("gutter truncation produced invalid UTF-8")
	}
	gutter := line[:strings.IndexRune(line, '█')]
	if w := runewidth.StringWidth(stripANSI(gutter)); w < gutterCol {
		t.Errorf("gutter display width = %d, want at least %d", w, gutterCol)
	}
}

// stripANSI removes terminal escape sequences so width assertions see only
// printable text.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestViewRenders(t *testing.T) {
	m := testModel(t)
	out := m.View()
	if out == "" {
		t.Fatal("empty view")
	}
	for _, want := range []string{"ganttline", "scale:", "Gear housing"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
