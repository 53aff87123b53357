package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/fabwerk/ganttline/internal/config"
	"github.com/fabwerk/ganttline/pkg/timeline"
)

// Filter cycles offered by the s and p keys. The leading zero value means
// "no filter".
var (
	statusCycle = []timeline.Status{
		"", timeline.StatusOpen, timeline.StatusReleased, timeline.StatusPending,
		timeline.StatusInProgress, timeline.StatusDone, timeline.StatusDelayed,
	}
	priorityCycle = []timeline.Priority{
		"", timeline.PriorityCritical, timeline.PriorityHigh,
		timeline.PriorityMediumHigh, timeline.PriorityMedium, timeline.PriorityLow,
	}
)

const (
	zoomStep  = 5.0
	gutterCol = 22 // characters reserved for the order label gutter
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ordersMsg carries a completed (and still current) order fetch into the
// update loop.
type ordersMsg timeline.LoadResult

// timelineModel is the bubbletea model for the interactive viewer. All
// mutation happens in Update; the loader's callback only feeds the results
// channel, which waitForOrders turns back into messages.
type timelineModel struct {
	ctx     context.Context
	view    *timeline.ViewState
	tracker *timeline.Tracker
	loader  *timeline.Loader
	results chan timeline.LoadResult

	orders []timeline.Order
	layout timeline.Layout

	statusIdx   int
	priorityIdx int
	selected    int
	chosen      string
	loading     bool
	err         error

	width  int
	height int
}

func newTimelineModel(ctx context.Context, cfg config.Config, fetch timeline.FetchFunc, g timeline.Granularity) timelineModel {
	results := make(chan timeline.LoadResult, 1)
	return timelineModel{
		ctx:     ctx,
		view:    timeline.NewViewState(g, cfg.View.Bounds(), cfg.View.Units()),
		tracker: timeline.NewTracker(cfg.View.MarginDays, time.Now),
		loader: timeline.NewLoader(fetch, func(r timeline.LoadResult) {
			results <- r
		}),
		results: results,
		loading: true,
	}
}

func (m timelineModel) Init() tea.Cmd {
	m.loader.Load(m.ctx, m.view.Filter())
	return m.waitForOrders()
}

// waitForOrders blocks on the results channel until the loader delivers a
// current fetch.
func (m timelineModel) waitForOrders() tea.Cmd {
	return func() tea.Msg {
		return ordersMsg(<-m.results)
	}
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ordersMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.orders = msg.Orders
			m.tracker.Observe(m.orders)
			if m.selected >= len(m.orders) {
				m.selected = 0
			}
		}
		m.reassemble()
		return m, m.waitForOrders()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if m.selected < len(m.orders) {
			m.chosen = m.orders[m.selected].ID
		}
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < len(m.orders)-1 {
			m.selected++
		}
		return m, nil

	case "+", "=":
		m.view.Zoom(zoomStep)
		m.reassemble()
		return m, nil

	case "-":
		m.view.Zoom(-zoomStep)
		m.reassemble()
		return m, nil

	case "w":
		m.view.SetGranularity(timeline.GranularityWeek)
		m.reassemble()
		return m, nil

	case "m":
		m.view.SetGranularity(timeline.GranularityMonth)
		m.reassemble()
		return m, nil

	case "q":
		m.view.SetGranularity(timeline.GranularityQuarter)
		m.reassemble()
		return m, nil

	case "t":
		m.tracker.JumpToToday()
		m.tracker.Observe(m.orders)
		m.reassemble()
		return m, nil

	case "s":
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		return m.applyFilter()

	case "p":
		m.priorityIdx = (m.priorityIdx + 1) % len(priorityCycle)
		return m.applyFilter()

	case "r":
		return m.reload()
	}
	return m, nil
}

// applyFilter updates the view filter and triggers a refetch. The window is
// left alone; only the order set changes.
func (m timelineModel) applyFilter() (tea.Model, tea.Cmd) {
	m.view.SetFilter(timeline.Filter{
		Status:   statusCycle[m.statusIdx],
		Priority: priorityCycle[m.priorityIdx],
	})
	return m.reload()
}

func (m timelineModel) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.loader.Load(m.ctx, m.view.Filter())
	return m, nil
}

// reassemble recomputes the layout from the current orders and view state.
func (m *timelineModel) reassemble() {
	m.layout = timeline.Assemble(m.orders, m.view, m.tracker.Window(), time.Now)
}

func (m timelineModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.axisLine())
	b.WriteString("\n")

	chartCols := m.width - gutterCol
	if chartCols < 10 {
		chartCols = 10
	}
	for i, bar := range m.layout.Bars {
		b.WriteString(m.rowLine(i, bar, chartCols))
		b.WriteString("\n")
	}
	if len(m.layout.Bars) == 0 && !m.loading {
		b.WriteString(dimStyle.Render("  no orders match the current filter"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footerLine())
	return b.String()
}

func (m timelineModel) headerLine() string {
	f := m.view.Filter()
	status := string(f.Status)
	if status == "" {
		status = "all"
	}
	priority := string(f.Priority)
	if priority == "" {
		priority = "all"
	}
	head := headerStyle.Render("ganttline") +
		dimStyle.Render("  scale:") + string(m.view.Granularity()) +
		dimStyle.Render("  zoom:") + formatPPD(m.view.PixelsPerDay()) +
		dimStyle.Render("  status:") + status +
		dimStyle.Render("  priority:") + priority
	if m.loading {
		head += dimStyle.Render("  loading...")
	}
	if m.err != nil {
		head += "  " + errStyle.Render("data unavailable: "+m.err.Error())
	}
	return head
}

// axisLine renders the grid labels, each positioned proportionally to its
// column width.
func (m timelineModel) axisLine() string {
	chartCols := m.width - gutterCol
	if chartCols < 10 || m.layout.ChartWidth <= 0 {
		return ""
	}
	scale := float64(chartCols) / m.layout.ChartWidth

	line := make([]rune, chartCols)
	for i := range line {
		line[i] = ' '
	}
	var x float64
	for _, col := range m.layout.Columns {
		pos := int(x * scale)
		for j, r := range col.Label {
			if pos+j >= chartCols {
				break
			}
			line[pos+j] = r
		}
		x += col.Width
	}
	return strings.Repeat(" ", gutterCol) + dimStyle.Render(string(line))
}

// rowLine renders one order row: the label gutter and the scaled bar, with
// the today marker overlaid.
func (m timelineModel) rowLine(i int, bar timeline.Bar, chartCols int) string {
	label := ""
	if i < len(m.orders) {
		label = m.orders[i].Label
	}
	// Truncate and pad by display width, not bytes, so multibyte and
	// wide-rune labels keep the gutter aligned.
	label = runewidth.Truncate(label, gutterCol-2, "")
	gutter := label + strings.Repeat(" ", gutterCol-runewidth.StringWidth(label))

	scale := 1.0
	if m.layout.ChartWidth > 0 {
		scale = float64(chartCols) / m.layout.ChartWidth
	}
	left := int(bar.Left * scale)
	width := int(bar.Width * scale)
	if width < 1 {
		width = 1
	}
	if left >= chartCols {
		left = chartCols - 1
	}
	if left+width > chartCols {
		width = chartCols - left
	}

	row := make([]rune, chartCols)
	for j := range row {
		row[j] = ' '
	}
	for j := 0; j < width; j++ {
		row[left+j] = '█'
	}
	if m.layout.TodayOffset != nil {
		if pos := int(*m.layout.TodayOffset * scale); pos >= 0 && pos < chartCols && row[pos] == ' ' {
			row[pos] = '|'
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(bar.Fill)))
	rendered := gutter + barStyle.Render(string(row))
	if i == m.selected {
		return selectedStyle.Render(gutter) + barStyle.Render(string(row))
	}
	return rendered
}

func (m timelineModel) footerLine() string {
	return dimStyle.Render("up/down select · +/- zoom · w/m/q scale · s/p filter · t today · r reload · enter pick · esc quit")
}

func formatPPD(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px/d"
}
