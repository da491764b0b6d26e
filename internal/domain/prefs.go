package domain

// Zoom level bounds for the calendar view (cells per hour).
const (
	MinZoomLevel = 1
	MaxZoomLevel = 11
)

// DefaultCellHeightPx matches the smallest cell the rendering layer draws
// legibly; the consuming UI may not go below roughly 6px.
const DefaultCellHeightPx = 30.0

// ViewPrefs holds the calendar display preferences for the single local user.
type ViewPrefs struct {
	ID           string
	DisplayMode  DisplayMode
	WeekStartsOn int // 0 = Sunday .. 6 = Saturday
	CellHeightPx float64
	ZoomLevel    int
}

// DefaultViewPrefs returns the seed preference row.
func DefaultViewPrefs() ViewPrefs {
	return ViewPrefs{
		ID:           "default",
		DisplayMode:  ModeWeek,
		WeekStartsOn: 0,
		CellHeightPx: DefaultCellHeightPx,
		ZoomLevel:    2,
	}
}

// Clamped returns a copy with all fields forced into their valid ranges.
func (p ViewPrefs) Clamped() ViewPrefs {
	out := p
	if out.ZoomLevel < MinZoomLevel {
		out.ZoomLevel = MinZoomLevel
	}
	if out.ZoomLevel > MaxZoomLevel {
		out.ZoomLevel = MaxZoomLevel
	}
	if out.WeekStartsOn < 0 || out.WeekStartsOn > 6 {
		out.WeekStartsOn = 0
	}
	if out.CellHeightPx <= 0 {
		out.CellHeightPx = DefaultCellHeightPx
	}
	if !ValidDisplayModes[string(out.DisplayMode)] {
		out.DisplayMode = ModeWeek
	}
	return out
}
