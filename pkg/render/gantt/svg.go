// Package gantt renders the assembled timeline layout. The layout model is
// plain data; these sinks decide how it is painted (SVG for files and the
// HTTP surface, JSON for machine consumers).
package gantt

import (
	"bytes"
	"fmt"
	"html"

	"github.com/fabwerk/ganttline/pkg/timeline"
)

// Fixed vertical metrics of the SVG chart, in user units.
const (
	headerHeight = 40
	rowHeight    = 28
	barPadding   = 4
	labelGutter  = 180
)

const chartCSS = `
    .grid-label { font-family: Arial, sans-serif; font-size: 12px; fill: #444; }
    .row-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }
    .grid-line { stroke: #e0e0e0; stroke-width: 1; }
    .order-bar { stroke-width: 2; }
    .bar-text { font-family: Arial, sans-serif; font-size: 10px; fill: white; }
    .today-line { stroke: #D32F2F; stroke-width: 2; stroke-dasharray: 4 3; }`

// SVGOption adjusts the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	rowLabels map[string]string
	legend    bool
}

// WithRowLabels maps order IDs to the text shown in the left gutter.
func WithRowLabels(labels map[string]string) SVGOption {
	return func(r *svgRenderer) { r.rowLabels = labels }
}

// WithLegend adds the status color legend.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// RenderSVG paints the layout as a standalone SVG document. Output is
// deterministic for a fixed layout.
func RenderSVG(l timeline.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	width := labelGutter + l.ChartWidth
	height := float64(headerHeight + len(l.Bars)*rowHeight + 20)
	if r.legend {
		height += 90
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, "<defs><style>%s</style></defs>\n", chartCSS)
	fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)

	renderGrid(&buf, l, height)
	renderBars(&buf, l, r.rowLabels)
	renderTodayLine(&buf, l, height)
	if r.legend {
		renderLegend(&buf, float64(headerHeight+len(l.Bars)*rowHeight+30))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderGrid draws one column per label segment: a boundary line and the
// segment label.
func renderGrid(buf *bytes.Buffer, l timeline.Layout, height float64) {
	var x float64
	for _, col := range l.Columns {
		left := labelGutter + x
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%.1f" class="grid-line"/>`+"\n",
			left, headerHeight, left, height-20)
		fmt.Fprintf(buf, `<text x="%.1f" y="%d" class="grid-label">%s</text>`+"\n",
			left+4, headerHeight-12, html.EscapeString(col.Label))
		x += col.Width
	}
	// Closing boundary of the last column.
	fmt.Fprintf(buf, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%.1f" class="grid-line"/>`+"\n",
		labelGutter+x, headerHeight, labelGutter+x, height-20)
}

// renderBars draws one row per order in layout order.
func renderBars(buf *bytes.Buffer, l timeline.Layout, rowLabels map[string]string) {
	for _, bar := range l.Bars {
		y := float64(headerHeight + bar.Row*rowHeight)

		if label, ok := rowLabels[bar.OrderID]; ok {
			fmt.Fprintf(buf, `<text x="%d" y="%.1f" class="row-label" text-anchor="end">%s</text>`+"\n",
				labelGutter-10, y+rowHeight/2+4, html.EscapeString(label))
		}

		fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%d" fill="%s" stroke="%s" class="order-bar">`,
			labelGutter+bar.Left, y+barPadding, bar.Width, rowHeight-2*barPadding, bar.Fill, bar.Border)
		if tip, ok := l.Tooltips[bar.OrderID]; ok {
			fmt.Fprintf(buf, `<title>%s</title>`, html.EscapeString(tooltipText(tip)))
		}
		buf.WriteString("</rect>\n")

		if bar.Label != "" {
			fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" class="bar-text">%s</text>`+"\n",
				labelGutter+bar.Left+4, y+rowHeight/2+4, html.EscapeString(bar.Label))
		}
	}
}

// renderTodayLine draws the today marker when the layout carries one.
func renderTodayLine(buf *bytes.Buffer, l timeline.Layout, height float64) {
	if l.TodayOffset == nil {
		return
	}
	x := labelGutter + *l.TodayOffset
	fmt.Fprintf(buf, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%.1f" class="today-line"/>`+"\n",
		x, headerHeight, x, height-20)
}

// renderLegend draws the status color swatches.
func renderLegend(buf *bytes.Buffer, y float64) {
	entries := []struct {
		color timeline.Color
		label string
	}{
		{timeline.StatusColor(timeline.StatusOpen), "Open"},
		{timeline.StatusColor(timeline.StatusInProgress), "In progress"},
		{timeline.StatusColor(timeline.StatusDone), "Done"},
		{timeline.StatusColor(timeline.StatusDelayed), "Delayed"},
		{timeline.StatusColor(timeline.StatusPending), "Pending"},
	}
	for i, e := range entries {
		rowY := y + float64(i)*14
		fmt.Fprintf(buf, `<rect x="20" y="%.1f" width="12" height="8" fill="%s"/>`+"\n", rowY, e.color)
		fmt.Fprintf(buf, `<text x="40" y="%.1f" class="grid-label">%s</text>`+"\n", rowY+8, e.label)
	}
}

// tooltipText flattens a tooltip payload into the SVG <title> line.
func tooltipText(t timeline.Tooltip) string {
	return fmt.Sprintf("%s | %s | %s / %s | %s - %s",
		t.Document, t.Label, t.Status, t.Priority, t.Start, t.End)
}
