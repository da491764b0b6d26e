package calendar

import "sort"

// ColumnSlice is a slice annotated with its horizontal slot for rendering.
// Assignments are ephemeral: they must be recomputed whenever the slice set
// for a day changes.
type ColumnSlice struct {
	Slice

	// ColumnIndex is the slot within the overlap cluster, 0 = leftmost.
	ColumnIndex int
	// LocalMaxColumn is the maximum ColumnIndex across the cluster; a
	// member's rendered width is columnWidth / (LocalMaxColumn + 1).
	LocalMaxColumn int
}

// AssignColumns sorts the day's slices by start time and assigns each a
// column via a single sweep over a stack of currently-open slices. Slices
// whose ranges merely touch (end == next start) do not overlap. Equal start
// times keep their incoming relative order.
//
// The sweep is greedy: deterministic and O(n log n), but it can use more
// columns than optimal interval-graph coloring for some overlap shapes.
func AssignColumns(slices []Slice) []ColumnSlice {
	sorted := make([]Slice, len(slices))
	copy(sorted, slices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SliceStartMS < sorted[j].SliceStartMS
	})

	out := make([]ColumnSlice, 0, len(sorted))
	var stack []int // indices into out, in the order the slices were opened
	clusterStart := 0
	runningMax := 0

	for _, sl := range sorted {
		// Drop every open slice that ended at or before this start.
		open := stack[:0]
		for _, idx := range stack {
			if out[idx].SliceEndMS > sl.SliceStartMS {
				open = append(open, idx)
			}
		}
		stack = open

		cs := ColumnSlice{Slice: sl}
		if len(stack) == 0 {
			// New cluster: seal the previous one with its final max.
			for i := clusterStart; i < len(out); i++ {
				out[i].LocalMaxColumn = runningMax
			}
			clusterStart = len(out)
			runningMax = 0
			cs.ColumnIndex = 0
		} else {
			cs.ColumnIndex = out[stack[len(stack)-1]].ColumnIndex + 1
			if cs.ColumnIndex > runningMax {
				runningMax = cs.ColumnIndex
			}
		}

		out = append(out, cs)
		stack = append(stack, len(out)-1)
	}

	for i := clusterStart; i < len(out); i++ {
		out[i].LocalMaxColumn = runningMax
	}
	return out
}
