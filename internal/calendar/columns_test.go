package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// daySlice builds a bare slice on 2024-01-17 UTC for column tests.
func daySlice(id string, startHour, startMin, endHour, endMin int) Slice {
	day := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	s := day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute)
	e := day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute)
	sl := stoppedSession(id, s.UnixMilli(), e.UnixMilli())
	return Slice{
		Session:      sl,
		DayIndex:     DayIndex(s.UnixMilli(), time.UTC),
		SliceStartMS: s.UnixMilli(),
		SliceEndMS:   e.UnixMilli(),
	}
}

func columnByID(t *testing.T, out []ColumnSlice, id string) ColumnSlice {
	t.Helper()
	for _, cs := range out {
		if cs.Session.ID == id {
			return cs
		}
	}
	t.Fatalf("no column slice with id %s", id)
	return ColumnSlice{}
}

func TestAssignColumns_OverlapChain(t *testing.T) {
	// A [9:00,10:00], B [9:30,10:30], C [10:15,11:00]: C overlaps B but
	// not A. The sweep assigns top-of-stack + 1, and B is still open when
	// C starts, so C lands in column 2 even though column 0 is free by
	// then. Greedy, not width-optimal; what it buys is that two slices
	// sharing a column never overlap.
	out := AssignColumns([]Slice{
		daySlice("A", 9, 0, 10, 0),
		daySlice("B", 9, 30, 10, 30),
		daySlice("C", 10, 15, 11, 0),
	})

	require.Len(t, out, 3)
	assert.Equal(t, 0, columnByID(t, out, "A").ColumnIndex)
	assert.Equal(t, 1, columnByID(t, out, "B").ColumnIndex)
	assert.Equal(t, 2, columnByID(t, out, "C").ColumnIndex)
	for _, cs := range out {
		assert.Equal(t, 2, cs.LocalMaxColumn, "chain forms one cluster")
	}
}

func TestAssignColumns_DisjointSlicesAllColumnZero(t *testing.T) {
	out := AssignColumns([]Slice{
		daySlice("A", 9, 0, 10, 0),
		daySlice("B", 11, 0, 12, 0),
		daySlice("C", 14, 0, 15, 0),
	})

	for _, cs := range out {
		assert.Equal(t, 0, cs.ColumnIndex)
		assert.Equal(t, 0, cs.LocalMaxColumn)
	}
}

func TestAssignColumns_BackToBackDoNotOverlap(t *testing.T) {
	// B starts exactly when A ends; the <= pop rule separates them.
	out := AssignColumns([]Slice{
		daySlice("A", 9, 0, 10, 0),
		daySlice("B", 10, 0, 11, 0),
	})

	assert.Equal(t, 0, columnByID(t, out, "A").ColumnIndex)
	assert.Equal(t, 0, columnByID(t, out, "B").ColumnIndex)
	assert.Equal(t, 0, columnByID(t, out, "B").LocalMaxColumn)
}

func TestAssignColumns_SeparateClustersGetOwnMax(t *testing.T) {
	out := AssignColumns([]Slice{
		// Cluster 1: three-deep overlap.
		daySlice("A", 9, 0, 11, 0),
		daySlice("B", 9, 15, 11, 0),
		daySlice("C", 9, 30, 11, 0),
		// Cluster 2: no overlap at all.
		daySlice("D", 13, 0, 14, 0),
	})

	assert.Equal(t, 2, columnByID(t, out, "A").LocalMaxColumn)
	assert.Equal(t, 2, columnByID(t, out, "B").LocalMaxColumn)
	assert.Equal(t, 2, columnByID(t, out, "C").LocalMaxColumn)
	assert.Equal(t, 0, columnByID(t, out, "D").LocalMaxColumn)
	assert.Equal(t, 0, columnByID(t, out, "D").ColumnIndex)
}

func TestAssignColumns_EqualStartsKeepInputOrder(t *testing.T) {
	out := AssignColumns([]Slice{
		daySlice("first", 9, 0, 10, 0),
		daySlice("second", 9, 0, 10, 30),
	})

	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].Session.ID, "stable sort keeps pre-sort order on ties")
	assert.Equal(t, 0, out[0].ColumnIndex)
	assert.Equal(t, 1, out[1].ColumnIndex)
}

func TestAssignColumns_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, AssignColumns(nil))

	out := AssignColumns([]Slice{daySlice("only", 9, 0, 9, 0)})
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].ColumnIndex)
	assert.Equal(t, 0, out[0].LocalMaxColumn)
}

func TestAssignColumns_SameColumnNeverOverlaps(t *testing.T) {
	// A dense, messy day; the invariant must hold regardless of shape.
	out := AssignColumns([]Slice{
		daySlice("a", 8, 0, 9, 30),
		daySlice("b", 8, 15, 8, 45),
		daySlice("c", 8, 30, 10, 0),
		daySlice("d", 9, 0, 9, 15),
		daySlice("e", 9, 45, 11, 0),
		daySlice("f", 10, 0, 10, 30),
		daySlice("g", 10, 30, 12, 0),
		daySlice("h", 11, 59, 12, 1),
	})

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			a, b := out[i], out[j]
			if a.ColumnIndex != b.ColumnIndex {
				continue
			}
			overlaps := a.SliceStartMS < b.SliceEndMS && b.SliceStartMS < a.SliceEndMS
			assert.False(t, overlaps,
				"slices %s and %s share column %d but overlap", a.Session.ID, b.Session.ID, a.ColumnIndex)
		}
	}
}

func TestAssignColumns_DoesNotMutateInput(t *testing.T) {
	in := []Slice{
		daySlice("B", 10, 0, 11, 0),
		daySlice("A", 9, 0, 10, 30),
	}

	AssignColumns(in)

	assert.Equal(t, "B", in[0].Session.ID, "input order must be preserved")
	assert.Equal(t, "A", in[1].Session.ID)
}
