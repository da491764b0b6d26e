package calendar

import "time"

// MinSliceHeightPx keeps zero and near-zero duration slices visible and
// clickable.
const MinSliceHeightPx = 5.0

// fallbackPx substitutes for container measurements that have not been
// observed yet (zero or negative), so geometry never goes NaN or negative.
const fallbackPx = 1.0

// Metrics carries the live measurements and preferences a placement depends
// on: cell height and zoom from the user's prefs, column width/height from
// the rendered container.
type Metrics struct {
	CellHeightPx   float64
	ZoomLevel      int // cells per hour, clamped to [1,11] by the prefs layer
	ColumnWidthPx  float64
	ColumnHeightPx float64
}

// HourHeightPx is the rendered height of one hour.
func (m Metrics) HourHeightPx() float64 {
	zoom := m.ZoomLevel
	if zoom < 1 {
		zoom = 1
	}
	cell := m.CellHeightPx
	if cell <= 0 {
		cell = fallbackPx
	}
	return cell * float64(zoom)
}

// Placement is the pixel geometry of one slice within its day column.
// Recomputed on every clock tick, resize, or zoom change; never persisted.
type Placement struct {
	TopPx    float64
	HeightPx float64
	LeftPx   float64
	WidthPx  float64
}

// ComputePlacement converts a column-assigned slice plus current
// measurements into pixel geometry. For a slice tracking the live clock the
// end is re-derived from nowMS, so all live slices on screen move together.
func ComputePlacement(cs ColumnSlice, nowMS int64, m Metrics, loc *time.Location) Placement {
	hourHeight := m.HourHeightPx()
	top := hourOfDay(cs.SliceStartMS, loc) * hourHeight

	end := cs.SliceEndMS
	if cs.TracksNow && nowMS > end {
		end = nowMS
	}
	height := float64(end-cs.SliceStartMS) / float64(MSPerHour) * hourHeight
	if height < MinSliceHeightPx {
		height = MinSliceHeightPx
	}
	// The bottom clamp wins over the minimum: a slice starting within
	// MinSliceHeightPx of the column bottom shrinks rather than spilling
	// past the column.
	if m.ColumnHeightPx > 0 && height > m.ColumnHeightPx-top {
		height = m.ColumnHeightPx - top
		if height < 0 {
			height = 0
		}
	}

	colWidth := m.ColumnWidthPx
	if colWidth <= 0 {
		colWidth = fallbackPx
	}
	cols := cs.LocalMaxColumn + 1
	if cols < 1 {
		cols = 1
	}
	width := colWidth / float64(cols)

	return Placement{
		TopPx:    top,
		HeightPx: height,
		LeftPx:   float64(cs.ColumnIndex) * width,
		WidthPx:  width,
	}
}

// NowMarkerTopPx returns the vertical offset of the current-time marker
// within its day column.
func NowMarkerTopPx(nowMS int64, m Metrics, loc *time.Location) float64 {
	return hourOfDay(nowMS, loc) * m.HourHeightPx()
}

// hourOfDay returns the local hour with fractional minutes (hours + min/60).
func hourOfDay(ms int64, loc *time.Location) float64 {
	t := time.UnixMilli(ms).In(loc)
	return float64(t.Hour()) + float64(t.Minute())/60
}
