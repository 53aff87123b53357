package timeline

import "testing"

func TestZoomClampBounds(t *testing.T) {
	v := NewViewState(GranularityMonth, Bounds{Min: 10, Max: 100}, nil)

	// No delta magnitude or repeat count may escape the bounds.
	for i := 0; i < 50; i++ {
		v.Zoom(1e6)
		if ppd := v.PixelsPerDay(); ppd > 100 {
			t.Fatalf("zoom escaped upper bound: %v", ppd)
		}
	}
	if v.PixelsPerDay() != 100 {
		t.Errorf("pixels-per-day = %v, want pinned at 100", v.PixelsPerDay())
	}

	for i := 0; i < 50; i++ {
		v.Zoom(-1e6)
		if ppd := v.PixelsPerDay(); ppd < 10 {
			t.Fatalf("zoom escaped lower bound: %v", ppd)
		}
	}
	if v.PixelsPerDay() != 10 {
		t.Errorf("pixels-per-day = %v, want pinned at 10", v.PixelsPerDay())
	}
}

func TestSetGranularityResetsUnit(t *testing.T) {
	v := NewViewState(GranularityMonth, Bounds{}, nil)
	v.Zoom(37) // drift away from the default

	// Switching month -> week resets to the week default regardless of the
	// prior value.
	v.SetGranularity(GranularityWeek)
	if v.PixelsPerDay() != DefaultUnits[GranularityWeek] {
		t.Errorf("pixels-per-day after switch = %v, want %v",
			v.PixelsPerDay(), DefaultUnits[GranularityWeek])
	}

	v.SetGranularity(GranularityQuarter)
	if v.PixelsPerDay() != DefaultUnits[GranularityQuarter] {
		t.Errorf("pixels-per-day after switch = %v, want %v",
			v.PixelsPerDay(), DefaultUnits[GranularityQuarter])
	}
}

func TestSetGranularityRejectsIllegalState(t *testing.T) {
	v := NewViewState(Granularity("fortnight"), Bounds{}, nil)
	if v.Granularity() != GranularityMonth {
		t.Errorf("unsupported granularity should fall back to month, got %q", v.Granularity())
	}
}

func TestZoomKeepsGranularity(t *testing.T) {
	v := NewViewState(GranularityWeek, Bounds{}, nil)
	v.Zoom(5)
	if v.Granularity() != GranularityWeek {
		t.Error("zoom must not alter granularity")
	}
	if v.PixelsPerDay() != DefaultUnits[GranularityWeek]+5 {
		t.Errorf("pixels-per-day = %v, want additive step", v.PixelsPerDay())
	}
}

func TestSetFilterBumpsRevision(t *testing.T) {
	v := NewViewState(GranularityMonth, Bounds{}, nil)
	before := v.Revision()
	v.SetFilter(Filter{Status: StatusDelayed})
	if v.Revision() == before {
		t.Error("SetFilter must bump the revision counter")
	}
	if v.Filter().Status != StatusDelayed {
		t.Errorf("filter status = %q, want Delayed", v.Filter().Status)
	}
}

func TestFilterSnapshot(t *testing.T) {
	a := Filter{Status: StatusOpen}
	b := Filter{Status: StatusOpen, Priority: PriorityHigh}
	if a.Snapshot() == b.Snapshot() {
		t.Error("distinct filters must have distinct snapshots")
	}
	if a.Snapshot() != (Filter{Status: StatusOpen}).Snapshot() {
		t.Error("equal filters must have equal snapshots")
	}
}

func TestStatusAndPriorityParsing(t *testing.T) {
	if got := ParsePriority("High"); got != PriorityHigh {
		t.Errorf("ParsePriority(High) = %q", got)
	}
	if got := ParsePriority(""); got != DefaultPriority {
		t.Errorf("empty priority should default to Medium, got %q", got)
	}
	if got := ParsePriority("Urgent-ish"); got != DefaultPriority {
		t.Errorf("unknown priority should default to Medium, got %q", got)
	}
	// Unknown statuses pass through and still get the fallback color.
	s := ParseStatus("Quarantined")
	if StatusColor(s) != ColorGray {
		t.Errorf("unknown status color = %q, want fallback", StatusColor(s))
	}
}
