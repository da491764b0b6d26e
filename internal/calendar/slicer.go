package calendar

import (
	"time"

	"github.com/mkaminska/studycal/internal/domain"
)

// Slice is the portion of a study session confined to one calendar day in
// the viewer's location. A multi-day session decomposes into an ordered run
// of slices whose ranges exactly reconstruct [StartMS, effectiveEnd].
type Slice struct {
	Session      domain.StudySession
	DayIndex     int
	SliceStartMS int64
	SliceEndMS   int64

	// TracksNow marks the final slice of a live session: its rendered end
	// follows the shared clock instead of SliceEndMS.
	TracksNow bool
}

// DurationMS returns the span covered by the slice as of nowMS.
func (s Slice) DurationMS(nowMS int64) int64 {
	end := s.SliceEndMS
	if s.TracksNow && nowMS > end {
		end = nowMS
	}
	return end - s.SliceStartMS
}

// SliceSession splits a session at local day boundaries. The effective end
// of a live session is nowMS. A session confined to one local day yields a
// single slice; a zero-length session yields a single zero-duration slice.
// Malformed input (start after effective end) yields no slices.
func SliceSession(s domain.StudySession, nowMS int64, loc *time.Location) []Slice {
	effectiveEnd := s.EffectiveEndMS(nowMS)
	if s.StartMS > effectiveEnd {
		return nil
	}

	startDay := DayIndex(s.StartMS, loc)
	endDay := DayIndex(effectiveEnd, loc)

	slices := make([]Slice, 0, endDay-startDay+1)
	for day := startDay; day <= endDay; day++ {
		sliceStart := DayStartMS(day, loc)
		if day == startDay {
			sliceStart = s.StartMS
		}
		sliceEnd := DayEndMS(day, loc)
		last := day == endDay
		if last {
			sliceEnd = effectiveEnd
		}
		slices = append(slices, Slice{
			Session:      s,
			DayIndex:     day,
			SliceStartMS: sliceStart,
			SliceEndMS:   sliceEnd,
			TracksNow:    last && s.Live(),
		})
	}
	return slices
}
