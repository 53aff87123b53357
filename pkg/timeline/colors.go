package timeline

// Color is a visual category token, expressed as a hex color usable by any
// rendering surface (SVG fill, terminal approximation, CSS).
type Color string

// Color tokens for the fixed visual categories.
const (
	ColorGray   Color = "#9E9E9E"
	ColorBlue   Color = "#2196F3"
	ColorTeal   Color = "#00BCD4"
	ColorAmber  Color = "#FFC107"
	ColorGreen  Color = "#4CAF50"
	ColorRed    Color = "#F44336"
	ColorMaroon Color = "#B71C1C"
	ColorOrange Color = "#E65100"
	ColorYellow Color = "#F9A825"
	ColorSlate  Color = "#616161"
	ColorMist   Color = "#90A4AE"
)

// StatusColor maps an order status to its bar fill color. Unknown statuses
// map to the gray fallback.
func StatusColor(s Status) Color {
	switch s {
	case StatusOpen:
		return ColorGray
	case StatusReleased:
		return ColorTeal
	case StatusPending, StatusNotStarted:
		return ColorAmber
	case StatusInProgress:
		return ColorBlue
	case StatusDone, StatusFinished, StatusCompleted:
		return ColorGreen
	case StatusDelayed:
		return ColorRed
	}
	return ColorGray
}

// PriorityColor maps an order priority to its bar border accent color.
// Unknown priorities use the Medium accent.
func PriorityColor(p Priority) Color {
	switch p {
	case PriorityCritical:
		return ColorMaroon
	case PriorityHigh:
		return ColorOrange
	case PriorityMediumHigh:
		return ColorYellow
	case PriorityLow:
		return ColorMist
	}
	return ColorSlate
}
