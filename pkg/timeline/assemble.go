package timeline

import "time"

// minLabelWidth is the bar width below which the bar's text label is
// omitted for legibility.
const minLabelWidth = 40

// dateFormat is how tooltip start/end instants are presented.
const dateFormat = "2006-01-02 15:04"

// Bar is the rendered geometry of one order. Bars are derived, never
// stored: every layout pass recomputes them from the order, the visible
// window, and the zoom unit.
type Bar struct {
	OrderID string `json:"order_id"`

	// Row is the vertical slot, assigned by stable input order: one row
	// per order, so no two bars can overlap rows.
	Row int `json:"row"`

	// Left and Width are pixel-space geometry relative to the grid origin.
	Left  float64 `json:"left"`
	Width float64 `json:"width"`

	Fill   Color `json:"fill"`
	Border Color `json:"border"`

	// Label is the bar text, empty when the bar is too narrow to carry it.
	Label string `json:"label,omitempty"`
}

// Tooltip is the plain-field hover payload for one order.
type Tooltip struct {
	OrderID  string `json:"order_id"`
	Document string `json:"document,omitempty"`
	Label    string `json:"label"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// Layout is the complete renderable model: grid columns, per-order bars,
// the today marker, and tooltip payloads. It is plain data; painting it
// (SVG, terminal, DOM) is the sink's concern.
type Layout struct {
	Window       Range       `json:"window"`
	Granularity  Granularity `json:"granularity"`
	PixelsPerDay float64     `json:"pixels_per_day"`

	// Origin is the calendar boundary the grid starts on (the first
	// column's start). All bar offsets are measured from it so that bar
	// placement and column widths share one coordinate system.
	Origin time.Time `json:"origin"`

	Columns    []LabelSegment `json:"columns"`
	ChartWidth float64        `json:"chart_width"`

	Bars     []Bar              `json:"bars"`
	Tooltips map[string]Tooltip `json:"tooltips"`

	// TodayOffset is the pixel position of the today marker, nil when
	// today lies outside the visible window.
	TodayOffset *float64 `json:"today_offset,omitempty"`
}

// Assemble combines the order list, the visible window, and the view state
// into a renderable layout. It is a pure combination with no business
// logic: rows follow stable input order, geometry comes from the geometry
// mapper, and columns from the label generator.
func Assemble(orders []Order, view *ViewState, window Range, clock Clock) Layout {
	ppd := view.PixelsPerDay()
	columns := GenerateLabels(window, view.Granularity(), ppd)

	l := Layout{
		Window:       window,
		Granularity:  view.Granularity(),
		PixelsPerDay: ppd,
		Columns:      columns,
		ChartWidth:   ChartWidth(columns),
		Bars:         make([]Bar, 0, len(orders)),
		Tooltips:     make(map[string]Tooltip, len(orders)),
	}

	grid := window
	if len(columns) > 0 {
		l.Origin = columns[0].Start
		grid = Range{Start: l.Origin, End: window.End}
	}

	for i, o := range orders {
		start, end := o.Start, o.End
		if end.Before(start) {
			end = start // zero-clamp malformed intervals, never negative
		}
		bar := Bar{
			OrderID: o.ID,
			Row:     i,
			Left:    Position(start, grid, ppd),
			Width:   BarWidth(start, end, ppd, ppd),
			Fill:    StatusColor(o.Status),
			Border:  PriorityColor(o.Priority),
		}
		if bar.Width >= minLabelWidth {
			bar.Label = o.Label
		}
		l.Bars = append(l.Bars, bar)

		l.Tooltips[o.ID] = Tooltip{
			OrderID:  o.ID,
			Document: o.Document,
			Label:    o.Label,
			Status:   string(o.Status),
			Priority: string(o.Priority),
			Start:    o.Start.Format(dateFormat),
			End:      o.End.Format(dateFormat),
		}
	}

	// The marker shares the grid coordinate system with the bars, but its
	// visibility test is against the visible window (half-open).
	if clock == nil {
		clock = time.Now
	}
	if now := clock(); window.Contains(now) {
		pos := Position(now, grid, ppd)
		l.TodayOffset = &pos
	}
	return l
}
