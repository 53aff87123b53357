// Package timeline implements the Gantt layout engine for manufacturing
// work orders.
//
// The engine is a pure, deterministic function from (order set, view
// parameters) to (layout geometry, grid labels). It owns no persistence:
// orders arrive from a repository collaborator (see pkg/orders) and every
// layout pass recomputes all geometry from scratch.
//
// # Components
//
// The package mirrors the data flow of the view:
//
//   - Order, Status, Priority: the domain model ([Order])
//   - Status/priority color mapping ([StatusColor], [PriorityColor])
//   - Visible window tracking ([Range], [Tracker], [Expand])
//   - Scale label generation ([GenerateLabels], [ChartWidth])
//   - Pixel geometry ([Position], [BarWidth])
//   - View state ([ViewState]: granularity, zoom, filters)
//   - Layout assembly ([Assemble])
//   - Asynchronous order loading with stale-response protection ([Loader])
package timeline

import "time"

// Status is the lifecycle state of a work order. The set below covers the
// states produced by the order repository, but Status is an open string
// type: unknown states still parse and render with the fallback color.
type Status string

// Known order statuses.
const (
	StatusOpen       Status = "Open"
	StatusReleased   Status = "Released"
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
	StatusFinished   Status = "Finished"
	StatusCompleted  Status = "Completed"
	StatusDelayed    Status = "Delayed"
	StatusNotStarted Status = "NotStarted"
)

// ParseStatus converts a raw repository value into a Status. Unknown values
// pass through unchanged so novel states still render (with the default
// color) instead of failing the layout pass.
func ParseStatus(s string) Status {
	return Status(s)
}

// Priority is the scheduling priority of a work order.
type Priority string

// Known order priorities.
const (
	PriorityCritical   Priority = "Critical"
	PriorityHigh       Priority = "High"
	PriorityMediumHigh Priority = "Medium-High"
	PriorityMedium     Priority = "Medium"
	PriorityLow        Priority = "Low"
)

// DefaultPriority is assumed when an order carries no priority field.
const DefaultPriority = PriorityMedium

// ParsePriority converts a raw repository value into a Priority.
// Empty or unrecognized values fall back to DefaultPriority.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityCritical, PriorityHigh, PriorityMediumHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	}
	return DefaultPriority
}

// Order is a manufacturing work order: the unit placed on the timeline.
type Order struct {
	// ID is the unique, stable identifier of the order.
	ID string `json:"id"`

	// Label is the human-readable name shown on the bar and in tooltips.
	Label string `json:"label"`

	// Document references the source document (e.g. the production order
	// number in the originating system).
	Document string `json:"document,omitempty"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	// Start and End bound the scheduled execution window. End is expected
	// to be >= Start; violations are rendered with zero-clamped duration.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the scheduled duration, clamped to zero when the order's
// interval is malformed (End before Start).
func (o Order) Duration() time.Duration {
	if o.End.Before(o.Start) {
		return 0
	}
	return o.End.Sub(o.Start)
}

// Clock supplies the current instant. Injected instead of calling time.Now
// directly so tests can pin "today".
type Clock func() time.Time
