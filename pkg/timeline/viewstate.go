package timeline

import "fmt"

// Bounds limits pixels-per-day to an application-defined interval.
type Bounds struct {
	Min float64
	Max float64
}

// Clamp forces v into [Min, Max].
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Default view-state parameters. Each granularity has a suggested
// pixels-per-day so switching scale keeps labels legible.
var (
	DefaultBounds = Bounds{Min: 10, Max: 100}

	DefaultUnits = map[Granularity]float64{
		GranularityWeek:    40,
		GranularityMonth:   25,
		GranularityQuarter: 15,
	}
)

// Filter is the active status/priority filter. Zero values mean "no
// filter". Changing a filter invalidates the loaded order set but does not
// touch the visible window.
type Filter struct {
	Status   Status   `json:"status,omitempty"`
	Priority Priority `json:"priority,omitempty"`
}

// Snapshot returns a deterministic key identifying this filter state, used
// to tag in-flight fetches and cache entries.
func (f Filter) Snapshot() string {
	return fmt.Sprintf("status=%s|priority=%s", f.Status, f.Priority)
}

// ViewState owns the zoom unit, granularity, and filter state. There are no
// illegal states: the granularity is always one of the supported values and
// pixels-per-day is always within bounds. All transitions are synchronous
// and free of geometry side effects; callers observe the revision counter
// and recompute the layout wholesale after any change.
type ViewState struct {
	granularity  Granularity
	pixelsPerDay float64
	filter       Filter

	bounds   Bounds
	defaults map[Granularity]float64
	revision uint64
}

// NewViewState creates a view state at the given granularity with its
// default zoom unit. Nil defaults or zero bounds fall back to the package
// defaults.
func NewViewState(g Granularity, bounds Bounds, defaults map[Granularity]float64) *ViewState {
	if bounds == (Bounds{}) {
		bounds = DefaultBounds
	}
	if defaults == nil {
		defaults = DefaultUnits
	}
	v := &ViewState{bounds: bounds, defaults: defaults}
	v.SetGranularity(g)
	return v
}

// Granularity returns the current scale granularity.
func (v *ViewState) Granularity() Granularity { return v.granularity }

// PixelsPerDay returns the current zoom unit.
func (v *ViewState) PixelsPerDay() float64 { return v.pixelsPerDay }

// Filter returns the active filter state.
func (v *ViewState) Filter() Filter { return v.filter }

// Revision returns a counter bumped on every state change. The loader and
// presentation layer use it to detect that a recompute (or refetch) is due.
func (v *ViewState) Revision() uint64 { return v.revision }

// SetGranularity switches the scale granularity and resets pixels-per-day
// to that granularity's suggested default, clamped to bounds. Unsupported
// values fall back to month.
func (v *ViewState) SetGranularity(g Granularity) {
	switch g {
	case GranularityWeek, GranularityMonth, GranularityQuarter:
	default:
		g = GranularityMonth
	}
	v.granularity = g
	v.pixelsPerDay = v.bounds.Clamp(v.defaults[g])
	v.revision++
}

// Zoom adjusts pixels-per-day by delta, silently clamping to bounds. The
// granularity is unaffected.
func (v *ViewState) Zoom(delta float64) {
	v.pixelsPerDay = v.bounds.Clamp(v.pixelsPerDay + delta)
	v.revision++
}

// SetFilter replaces the filter state. The caller is expected to trigger a
// repository refetch for the new filter; the visible window is untouched.
func (v *ViewState) SetFilter(f Filter) {
	v.filter = f
	v.revision++
}
