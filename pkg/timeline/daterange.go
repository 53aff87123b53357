package timeline

import "time"

// Defaults for the jump-to-today window and auto-expansion margin, in days.
const (
	DefaultTodayBackDays  = 7
	DefaultTodayAheadDays = 60
	DefaultMarginDays     = 7
)

// Range is a half-open date interval [Start, End). Start < End always holds
// for ranges produced by this package.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the half-open interval [Start, End).
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Days returns the fractional length of the range in days.
func (r Range) Days() float64 {
	return r.End.Sub(r.Start).Hours() / 24
}

// Expand widens envelope to enclose every order plus marginDays of padding
// on each side. With no orders the envelope is returned unchanged. The
// result is derived from the inputs alone: calling Expand again with the
// same orders and the unpadded envelope yields the same window, so
// expansion is monotonic per data refresh rather than cumulative per call.
func Expand(envelope Range, orders []Order, marginDays int) Range {
	if len(orders) == 0 {
		return envelope
	}
	earliest := envelope.Start
	latest := envelope.End
	for _, o := range orders {
		if o.Start.Before(earliest) {
			earliest = o.Start
		}
		if o.End.After(latest) {
			latest = o.End
		}
	}
	return Range{
		Start: earliest.AddDate(0, 0, -marginDays),
		End:   latest.AddDate(0, 0, marginDays),
	}
}

// Tracker owns the visible window. It keeps the unpadded envelope (the
// union of the jump-to-today base and all observed order extents) separate
// from the padded window handed to the layout, which is what makes repeated
// observation of the same orders idempotent.
type Tracker struct {
	clock      Clock
	marginDays int

	envelope Range
	padded   bool // whether any orders have been observed since the last jump
}

// NewTracker creates a tracker positioned on today's default window.
func NewTracker(marginDays int, clock Clock) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	t := &Tracker{clock: clock, marginDays: marginDays}
	t.JumpToToday()
	return t
}

// JumpToToday unconditionally resets the window to
// [today - 7d, today + 60d), discarding any prior expansion.
func (t *Tracker) JumpToToday() {
	today := midnight(t.clock())
	t.envelope = Range{
		Start: today.AddDate(0, 0, -DefaultTodayBackDays),
		End:   today.AddDate(0, 0, DefaultTodayAheadDays),
	}
	t.padded = false
}

// Observe widens the envelope to cover the given orders. Observing an empty
// order set leaves the window unchanged; observing the same set twice
// yields the same window as observing it once.
func (t *Tracker) Observe(orders []Order) {
	if len(orders) == 0 {
		return
	}
	for _, o := range orders {
		if o.Start.Before(t.envelope.Start) {
			t.envelope.Start = o.Start
		}
		if o.End.After(t.envelope.End) {
			t.envelope.End = o.End
		}
	}
	t.padded = true
}

// Window returns the visible window: the envelope, padded by the margin on
// each side once orders have been observed. Right after JumpToToday the
// default window is returned as-is.
func (t *Tracker) Window() Range {
	if !t.padded {
		return t.envelope
	}
	return Range{
		Start: t.envelope.Start.AddDate(0, 0, -t.marginDays),
		End:   t.envelope.End.AddDate(0, 0, t.marginDays),
	}
}

// midnight truncates t to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
