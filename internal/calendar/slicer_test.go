package calendar

import (
	"testing"
	"time"

	"github.com/mkaminska/studycal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stoppedSession(id string, startMS, endMS int64) domain.StudySession {
	return domain.StudySession{
		ID:      id,
		TopicID: "topic-1",
		StartMS: startMS,
		EndMS:   &endMS,
		Status:  domain.SessionStopped,
	}
}

func liveSession(id string, startMS int64) domain.StudySession {
	return domain.StudySession{
		ID:      id,
		TopicID: "topic-1",
		StartMS: startMS,
		Status:  domain.SessionActive,
	}
}

func TestSliceSession_SingleDay(t *testing.T) {
	start := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2024, 1, 17, 10, 30, 0, 0, time.UTC).UnixMilli()

	slices := SliceSession(stoppedSession("s1", start, end), end+MSPerHour, time.UTC)

	require.Len(t, slices, 1)
	assert.Equal(t, start, slices[0].SliceStartMS)
	assert.Equal(t, end, slices[0].SliceEndMS)
	assert.Equal(t, DayIndex(start, time.UTC), slices[0].DayIndex)
	assert.False(t, slices[0].TracksNow)
}

func TestSliceSession_TwoDays(t *testing.T) {
	start := time.Date(2024, 1, 17, 23, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2024, 1, 18, 1, 0, 0, 0, time.UTC).UnixMilli()

	slices := SliceSession(stoppedSession("s1", start, end), end, time.UTC)

	require.Len(t, slices, 2)
	assert.Equal(t, start, slices[0].SliceStartMS)
	assert.Equal(t, time.Date(2024, 1, 17, 23, 59, 59, 999_000_000, time.UTC).UnixMilli(), slices[0].SliceEndMS)
	assert.Equal(t, time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC).UnixMilli(), slices[1].SliceStartMS)
	assert.Equal(t, end, slices[1].SliceEndMS)
	assert.Equal(t, slices[0].DayIndex+1, slices[1].DayIndex)
}

func TestSliceSession_SpansSeveralFullDays(t *testing.T) {
	start := time.Date(2024, 1, 15, 22, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2024, 1, 18, 3, 0, 0, 0, time.UTC).UnixMilli()

	slices := SliceSession(stoppedSession("s1", start, end), end, time.UTC)

	require.Len(t, slices, 4)
	// Middle slices cover their whole day.
	for _, sl := range slices[1 : len(slices)-1] {
		assert.Equal(t, DayStartMS(sl.DayIndex, time.UTC), sl.SliceStartMS)
		assert.Equal(t, DayEndMS(sl.DayIndex, time.UTC), sl.SliceEndMS)
	}
	assertSlicesReconstruct(t, slices, start, end)
}

func TestSliceSession_ZeroLength(t *testing.T) {
	at := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC).UnixMilli()

	slices := SliceSession(stoppedSession("s1", at, at), at, time.UTC)

	require.Len(t, slices, 1)
	assert.Equal(t, at, slices[0].SliceStartMS)
	assert.Equal(t, at, slices[0].SliceEndMS)
}

func TestSliceSession_LiveUsesNowAsEnd(t *testing.T) {
	start := time.Date(2024, 1, 17, 22, 0, 0, 0, time.UTC).UnixMilli()
	now := time.Date(2024, 1, 18, 0, 30, 0, 0, time.UTC).UnixMilli()

	slices := SliceSession(liveSession("s1", start), now, time.UTC)

	require.Len(t, slices, 2)
	assert.False(t, slices[0].TracksNow, "only the final slice follows the clock")
	assert.True(t, slices[1].TracksNow)
	assert.Equal(t, now, slices[1].SliceEndMS)
}

func TestSliceSession_MalformedYieldsNothing(t *testing.T) {
	start := time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC).UnixMilli()

	slices := SliceSession(stoppedSession("s1", start, start-MSPerHour), start, time.UTC)

	assert.Empty(t, slices)
}

func TestSliceSession_RoundTripReconstruction(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"one morning", time.Date(2024, 1, 17, 9, 0, 0, 0, loc), time.Date(2024, 1, 17, 11, 15, 0, 0, loc)},
		{"across midnight", time.Date(2024, 1, 17, 23, 50, 0, 0, loc), time.Date(2024, 1, 18, 0, 10, 0, 0, loc)},
		{"five days", time.Date(2024, 1, 15, 6, 0, 0, 0, loc), time.Date(2024, 1, 19, 20, 0, 0, 0, loc)},
		{"across spring forward", time.Date(2024, 3, 9, 20, 0, 0, 0, loc), time.Date(2024, 3, 10, 8, 0, 0, 0, loc)},
		{"across fall back", time.Date(2024, 11, 2, 20, 0, 0, 0, loc), time.Date(2024, 11, 3, 8, 0, 0, 0, loc)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := stoppedSession("s1", tc.start.UnixMilli(), tc.end.UnixMilli())
			slices := SliceSession(s, tc.end.UnixMilli(), loc)
			require.NotEmpty(t, slices)
			assertSlicesReconstruct(t, slices, tc.start.UnixMilli(), tc.end.UnixMilli())
			for _, sl := range slices {
				assert.Equal(t, sl.DayIndex, DayIndex(sl.SliceStartMS, loc))
				assert.Equal(t, sl.DayIndex, DayIndex(sl.SliceEndMS, loc),
					"slice may not leak past its day")
				assert.LessOrEqual(t, sl.SliceStartMS, sl.SliceEndMS)
			}
		})
	}
}

// assertSlicesReconstruct checks the slices cover [start, end] exactly:
// contiguous days, no gaps, no overlaps.
func assertSlicesReconstruct(t *testing.T, slices []Slice, start, end int64) {
	t.Helper()
	require.NotEmpty(t, slices)
	assert.Equal(t, start, slices[0].SliceStartMS)
	assert.Equal(t, end, slices[len(slices)-1].SliceEndMS)
	for i := 1; i < len(slices); i++ {
		assert.Equal(t, slices[i-1].SliceEndMS+1, slices[i].SliceStartMS,
			"slice %d should start one millisecond after its predecessor ends", i)
		assert.Equal(t, slices[i-1].DayIndex+1, slices[i].DayIndex,
			"days must be contiguous")
	}
}
