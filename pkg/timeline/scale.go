package timeline

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the calendar unit used to partition the visible window
// into labeled segments.
type Granularity string

// Supported granularities.
const (
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// Granularities lists every supported granularity in zoom-out order.
var Granularities = []Granularity{GranularityWeek, GranularityMonth, GranularityQuarter}

// ParseGranularity converts a raw string into a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(s)); g {
	case GranularityWeek, GranularityMonth, GranularityQuarter:
		return g, nil
	}
	return "", fmt.Errorf("invalid granularity: %q (must be one of: week, month, quarter)", s)
}

// LabelSegment is one labeled column of the time grid. Segments are
// contiguous: each starts where the previous one ends, and together they
// span at least the visible window.
type LabelSegment struct {
	// Start is the calendar boundary the segment begins on.
	Start time.Time `json:"start"`

	// Label is the display text, e.g. "Week 23", "May 2025", "Q2 2025".
	Label string `json:"label"`

	// Width is the segment's calendar span in days times pixels-per-day.
	Width float64 `json:"width"`
}

// GenerateLabels partitions the window into labeled segments at the given
// granularity. The first segment starts at the calendar boundary at or
// before window.Start; the cursor then advances one calendar unit per
// segment until it is no longer strictly before window.End. The loop bound
// is date-based, so termination holds for any positive pixelsPerDay.
//
// GenerateLabels is a pure function of its inputs; it retains no state.
func GenerateLabels(window Range, g Granularity, pixelsPerDay float64) []LabelSegment {
	var segments []LabelSegment
	cursor := alignToBoundary(window.Start, g)
	for cursor.Before(window.End) {
		next := advance(cursor, g)
		days := next.Sub(cursor).Hours() / 24
		segments = append(segments, LabelSegment{
			Start: cursor,
			Label: segmentLabel(cursor, g),
			Width: days * pixelsPerDay,
		})
		cursor = next
	}
	return segments
}

// ChartWidth returns the total width of the generated grid. This sum
// defines the scrollable chart width; bar placement uses the same value,
// keeping a single source of truth.
func ChartWidth(segments []LabelSegment) float64 {
	var total float64
	for _, s := range segments {
		total += s.Width
	}
	return total
}

// alignToBoundary returns the calendar boundary at or before t for the
// given granularity: the ISO week's Monday, the first of the month, or the
// first day of the quarter.
func alignToBoundary(t time.Time, g Granularity) time.Time {
	t = midnight(t)
	switch g {
	case GranularityWeek:
		// ISO weeks start on Monday.
		offset := (int(t.Weekday()) + 6) % 7
		return t.AddDate(0, 0, -offset)
	case GranularityQuarter:
		quarterStart := time.Month((int(t.Month())-1)/3*3 + 1)
		return time.Date(t.Year(), quarterStart, 1, 0, 0, 0, 0, t.Location())
	default: // month
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
}

// advance moves the cursor forward by one calendar unit.
func advance(t time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return t.AddDate(0, 0, 7)
	case GranularityQuarter:
		return t.AddDate(0, 3, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// segmentLabel formats the display label for a segment starting at t.
func segmentLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeek:
		_, week := t.ISOWeek()
		return fmt.Sprintf("Week %d", week)
	case GranularityQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, t.Year())
	default:
		return t.Format("Jan 2006")
	}
}
