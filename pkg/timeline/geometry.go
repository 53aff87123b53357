package timeline

import "time"

// DaysBetween returns the fractional number of days from a to b. Sub-day
// precision is deliberate: truncating to whole days would misplace orders
// that start or end mid-day.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// Position converts an absolute instant into a pixel offset from the left
// edge of the window. Instants before the window clamp to zero; instants
// after it extend past the right edge (the chart scrolls).
func Position(instant time.Time, window Range, pixelsPerDay float64) float64 {
	offset := DaysBetween(window.Start, instant) * pixelsPerDay
	if offset < 0 {
		return 0
	}
	return offset
}

// BarWidth converts an order interval into a pixel width. The floor is the
// larger of minWidth and one day's worth of pixels, so every bar stays
// clickable no matter how short the underlying duration. Malformed
// intervals (end before start) contribute zero duration.
func BarWidth(start, end time.Time, pixelsPerDay, minWidth float64) float64 {
	days := DaysBetween(start, end)
	if days < 0 {
		days = 0
	}
	width := days * pixelsPerDay
	if width < pixelsPerDay {
		width = pixelsPerDay
	}
	if width < minWidth {
		width = minWidth
	}
	return width
}

// TodayOffset returns the pixel offset of the today marker and whether it
// should be rendered at all. The containment test is half-open, matching
// the window invariant.
func TodayOffset(clock Clock, window Range, pixelsPerDay float64) (float64, bool) {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	if !window.Contains(now) {
		return 0, false
	}
	return Position(now, window, pixelsPerDay), true
}
