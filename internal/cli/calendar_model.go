package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/cli/formatter"
	"github.com/mkaminska/studycal/internal/domain"
)

// The calendar lane maps one terminal row to one pixel: a cell is one row
// tall and the zoom level is therefore rows per hour.
const (
	laneCellHeightPx = 1.0
	timeGutterWidth  = 6
	columnGap        = 1
)

type tickMsg time.Time

type refreshedMsg struct {
	err error
}

type calendarKeyMap struct {
	PrevDay    key.Binding
	NextDay    key.Binding
	Today      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ModeDay    key.Binding
	ModeWeek   key.Binding
	ModeMonth  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k calendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Today, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

func (k calendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.Today, k.ScrollUp, k.ScrollDown},
		{k.ZoomIn, k.ZoomOut, k.ModeDay, k.ModeWeek, k.ModeMonth},
		{k.Help, k.Quit},
	}
}

func defaultCalendarKeyMap() calendarKeyMap {
	return calendarKeyMap{
		PrevDay:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		NextDay:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		ModeDay:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day view")),
		ModeWeek:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
		ModeMonth:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month view")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// calendarModel is the bubbletea Model for the interactive calendar view.
// It re-renders once a second so live session blocks grow in place.
type calendarModel struct {
	app   *App
	prefs domain.ViewPrefs
	loc   *time.Location

	focusDay  int // day index of the focused day
	scrollRow int
	width     int
	height    int

	keys     calendarKeyMap
	help     help.Model
	lastErr  error
	quitting bool
}

func newCalendarModel(app *App, prefs domain.ViewPrefs, focusDay int) calendarModel {
	return calendarModel{
		app:      app,
		prefs:    prefs.Clamped(),
		loc:      app.Calendar.Location(),
		focusDay: focusDay,
		keys:     defaultCalendarKeyMap(),
		help:     help.New(),
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// visibleDays returns the day indices the current mode shows, focused day
// included.
func (m calendarModel) visibleDays() []int {
	return visibleDayIndices(m.prefs, m.focusDay, m.loc)
}

func (m calendarModel) focusDate() time.Time {
	return calendar.DateFromDayIndex(m.focusDay, m.loc)
}

func (m calendarModel) refreshCmd() tea.Cmd {
	days := m.visibleDays()
	startMS := calendar.DayStartMS(days[0], m.loc)
	endMS := calendar.DayEndMS(days[len(days)-1], m.loc)
	return func() tea.Msg {
		_, err := m.app.Calendar.Refresh(context.Background(), startMS, endMS)
		return refreshedMsg{err: err}
	}
}

func (m calendarModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), tickCmd())
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		// Live sessions may have crossed midnight since the last tick;
		// the refresh re-slices them against the current clock.
		return m, tea.Batch(m.refreshCmd(), tickCmd())

	case refreshedMsg:
		m.lastErr = msg.err
		return m, nil

	case tea.KeyMsg:
		step := 1
		if m.prefs.DisplayMode == domain.ModeWeek {
			step = 7
		} else if m.prefs.DisplayMode == domain.ModeMonth {
			step = calendar.GridColumnCount(domain.ModeMonth, m.focusDate())
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevDay):
			m.focusDay -= step
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.NextDay):
			m.focusDay += step
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.Today):
			m.focusDay = calendar.DayIndex(m.app.Calendar.Now(), m.loc)
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.ScrollUp):
			m.scrollRow--
		case key.Matches(msg, m.keys.ScrollDown):
			m.scrollRow++
		case key.Matches(msg, m.keys.ZoomIn):
			if m.prefs.ZoomLevel < domain.MaxZoomLevel {
				m.prefs.ZoomLevel++
			}
		case key.Matches(msg, m.keys.ZoomOut):
			if m.prefs.ZoomLevel > domain.MinZoomLevel {
				m.prefs.ZoomLevel--
			}
		case key.Matches(msg, m.keys.ModeDay):
			m.prefs.DisplayMode = domain.ModeDay
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.ModeWeek):
			m.prefs.DisplayMode = domain.ModeWeek
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.ModeMonth):
			m.prefs.DisplayMode = domain.ModeMonth
			return m, m.refreshCmd()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// laneRows is the number of terminal rows available for the day lanes.
func (m calendarModel) laneRows() int {
	rows := m.height - 4 // title, weekday header, help, spacing
	if rows < 4 {
		rows = 4
	}
	return rows
}

func (m calendarModel) dayRows() int {
	return 24 * m.prefs.ZoomLevel
}

func (m calendarModel) metrics(colWidth int) calendar.Metrics {
	return calendar.Metrics{
		CellHeightPx:   laneCellHeightPx,
		ZoomLevel:      m.prefs.ZoomLevel,
		ColumnWidthPx:  float64(colWidth),
		ColumnHeightPx: float64(m.dayRows()),
	}
}

func (m calendarModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	days := m.visibleDays()
	colWidth := (m.width - timeGutterWidth - columnGap*len(days)) / len(days)
	if colWidth < 3 {
		colWidth = 3
	}

	rows := m.laneRows()
	maxScroll := m.dayRows() - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := m.scrollRow
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}

	nowMS := m.app.Calendar.Now()
	todayIdx := calendar.DayIndex(nowMS, m.loc)

	lanes := make([]*dayLane, len(days))
	for i, d := range days {
		lane := newDayLane(m.dayRows(), colWidth)
		for _, p := range m.app.Calendar.Placements(d, m.metrics(colWidth)) {
			lane.paint(p.ColumnSlice, p.Placement)
		}
		if d == todayIdx {
			lane.paintNowMarker(int(calendar.NowMarkerTopPx(nowMS, m.metrics(colWidth), m.loc)))
		}
		lanes[i] = lane
	}

	var b strings.Builder
	b.WriteString(m.titleLine(days))
	b.WriteString("\n")
	b.WriteString(m.headerLine(days, colWidth, todayIdx))
	b.WriteString("\n")

	for row := scroll; row < scroll+rows && row < m.dayRows(); row++ {
		b.WriteString(m.gutterLabel(row))
		for i := range lanes {
			b.WriteString(strings.Repeat(" ", columnGap))
			b.WriteString(lanes[i].renderRow(row))
		}
		b.WriteString("\n")
	}

	if m.lastErr != nil {
		b.WriteString(formatter.StyleRed.Render("error: " + m.lastErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m calendarModel) titleLine(days []int) string {
	focus := m.focusDate()
	switch m.prefs.DisplayMode {
	case domain.ModeDay:
		return formatter.Header(focus.Format("Monday, Jan 2 2006"))
	case domain.ModeMonth:
		return formatter.Header(focus.Format("January 2006"))
	default:
		first := calendar.DateFromDayIndex(days[0], m.loc)
		last := calendar.DateFromDayIndex(days[len(days)-1], m.loc)
		return formatter.Header(fmt.Sprintf("%s – %s", first.Format("Jan 2"), last.Format("Jan 2, 2006")))
	}
}

func (m calendarModel) headerLine(days []int, colWidth, todayIdx int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timeGutterWidth))
	for _, d := range days {
		b.WriteString(strings.Repeat(" ", columnGap))
		label := calendar.DateFromDayIndex(d, m.loc).Format("Mon 2")
		if lipgloss.Width(label) > colWidth {
			label = label[:colWidth]
		}
		label += strings.Repeat(" ", colWidth-lipgloss.Width(label))
		if d == todayIdx {
			b.WriteString(formatter.StyleHeader.Render(label))
		} else {
			b.WriteString(formatter.Dim(label))
		}
	}
	return b.String()
}

// gutterLabel renders the hour mark for rows that begin an hour.
func (m calendarModel) gutterLabel(row int) string {
	if row%m.prefs.ZoomLevel != 0 {
		return strings.Repeat(" ", timeGutterWidth)
	}
	return formatter.Dim(fmt.Sprintf("%5d ", row/m.prefs.ZoomLevel))
}

// dayLane is a paint buffer for one day column. Cells carry the topic color
// so consecutive runs can be styled together at render time.
type dayLane struct {
	rows, width int
	ch          []rune
	color       []domain.ColorCode
	painted     []bool
	nowRow      int
}

func newDayLane(rows, width int) *dayLane {
	l := &dayLane{
		rows:    rows,
		width:   width,
		ch:      make([]rune, rows*width),
		color:   make([]domain.ColorCode, rows*width),
		painted: make([]bool, rows*width),
		nowRow:  -1,
	}
	for i := range l.ch {
		l.ch[i] = ' '
	}
	return l
}

func (l *dayLane) paint(cs calendar.ColumnSlice, p calendar.Placement) {
	top := int(p.TopPx)
	bottom := int(p.TopPx + p.HeightPx)
	if bottom <= top {
		bottom = top + 1
	}
	left := int(p.LeftPx)
	right := int(p.LeftPx + p.WidthPx)
	if right <= left {
		right = left + 1
	}
	if right > l.width {
		right = l.width
	}

	label := []rune(cs.Session.TopicTitle)
	for row := top; row < bottom && row < l.rows; row++ {
		for col := left; col < right; col++ {
			i := row*l.width + col
			l.ch[i] = '░'
			if row == top {
				if li := col - left; li < len(label) {
					l.ch[i] = label[li]
				}
			}
			l.color[i] = cs.Session.Color
			l.painted[i] = true
		}
	}
}

func (l *dayLane) paintNowMarker(row int) {
	l.nowRow = row
}

func (l *dayLane) renderRow(row int) string {
	if row < 0 || row >= l.rows {
		return strings.Repeat(" ", l.width)
	}
	if row == l.nowRow {
		return formatter.StyleRed.Render(strings.Repeat("─", l.width))
	}

	var b strings.Builder
	start := row * l.width
	col := 0
	for col < l.width {
		i := start + col
		if !l.painted[i] {
			b.WriteRune(' ')
			col++
			continue
		}
		// Group the run of cells sharing this color into one render call.
		runColor := l.color[i]
		var run strings.Builder
		for col < l.width && l.painted[start+col] && l.color[start+col] == runColor {
			run.WriteRune(l.ch[start+col])
			col++
		}
		b.WriteString(formatter.TopicStyle(runColor).Render(run.String()))
	}
	return b.String()
}
