package calendar

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mkaminska/studycal/internal/domain"
)

// ErrNotProcessed signals an operation on a session id that has no
// materialized slices. Callers treat it as a race between UI state and data
// state, not a corrupt model.
var ErrNotProcessed = errors.New("session not processed")

// DayBucket holds the slices that fall on one calendar day.
type DayBucket struct {
	Day    time.Time
	Slices []Slice
}

// BucketIndex owns the day-bucket map and the processed-session record and
// keeps them consistent: a session id is either absent from the record or
// present with exactly the day indices that currently hold its slices.
// Single-owner, not safe for concurrent use.
type BucketIndex struct {
	loc       *time.Location
	logger    *slog.Logger
	buckets   map[int]*DayBucket
	processed map[string]map[int]struct{}
}

// NewBucketIndex creates an empty index for the viewer's location.
// A nil logger discards the non-fatal consistency warnings.
func NewBucketIndex(loc *time.Location, logger *slog.Logger) *BucketIndex {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BucketIndex{
		loc:       loc,
		logger:    logger,
		buckets:   make(map[int]*DayBucket),
		processed: make(map[string]map[int]struct{}),
	}
}

// Location returns the location the index buckets days in.
func (x *BucketIndex) Location() *time.Location {
	return x.loc
}

// Ingest slices and inserts every session not already processed. A session
// is fully sliced and inserted before it is marked processed, so repeated
// ingestion of an unchanged list never duplicates slices.
// Returns the number of sessions newly processed.
func (x *BucketIndex) Ingest(sessions []domain.StudySession, nowMS int64) int {
	ingested := 0
	for _, s := range sessions {
		if _, done := x.processed[s.ID]; done {
			continue
		}
		slices := SliceSession(s, nowMS, x.loc)
		if len(slices) == 0 {
			x.logger.Error("skipping malformed session",
				"session_id", s.ID, "start_ms", s.StartMS, "end_ms", s.EndMS)
			continue
		}
		days := make(map[int]struct{}, len(slices))
		for _, sl := range slices {
			x.InsertSlice(sl)
			days[sl.DayIndex] = struct{}{}
		}
		x.processed[s.ID] = days
		ingested++
	}
	return ingested
}

// InsertSlice appends the slice to its day bucket, creating the bucket if
// absent. A no-op when the owning session is already marked processed.
func (x *BucketIndex) InsertSlice(sl Slice) {
	if _, done := x.processed[sl.Session.ID]; done {
		x.logger.Warn("insert skipped, session already processed", "session_id", sl.Session.ID)
		return
	}
	day := DayIndex(sl.SliceStartMS, x.loc)
	bucket, ok := x.buckets[day]
	if !ok {
		bucket = &DayBucket{Day: DateFromDayIndex(day, x.loc)}
		x.buckets[day] = bucket
	}
	bucket.Slices = append(bucket.Slices, sl)
}

// RemoveSession drops every slice for the session and marks it unprocessed,
// so a later Ingest will re-slice it if it reappears. An unknown id logs
// and returns ErrNotProcessed without mutating state.
func (x *BucketIndex) RemoveSession(sessionID string) error {
	days, ok := x.processed[sessionID]
	if !ok {
		x.logger.Error("remove of unprocessed session", "session_id", sessionID)
		return fmt.Errorf("removing session %s: %w", sessionID, ErrNotProcessed)
	}
	for day := range days {
		bucket, ok := x.buckets[day]
		if !ok {
			x.logger.Error("processed record points at missing bucket",
				"session_id", sessionID, "day_index", day)
			continue
		}
		kept := bucket.Slices[:0]
		for _, sl := range bucket.Slices {
			if sl.Session.ID != sessionID {
				kept = append(kept, sl)
			}
		}
		bucket.Slices = kept
		if len(bucket.Slices) == 0 {
			delete(x.buckets, day)
		}
	}
	delete(x.processed, sessionID)
	return nil
}

// MarkUnprocessed clears the processed record for the session without
// touching bucket contents. Used when a session's fields changed and its
// stale slices are about to be replaced; callers normally prefer Reingest.
func (x *BucketIndex) MarkUnprocessed(sessionID string) {
	delete(x.processed, sessionID)
}

// Reingest replaces a changed session's slices: removes the old ones if
// present, then slices and inserts the new record.
func (x *BucketIndex) Reingest(s domain.StudySession, nowMS int64) {
	if _, done := x.processed[s.ID]; done {
		if err := x.RemoveSession(s.ID); err != nil {
			return
		}
	}
	x.Ingest([]domain.StudySession{s}, nowMS)
}

// Restore reinserts previously removed slices for a session, e.g. when an
// optimistic delete is rolled back after the backing store refused it.
func (x *BucketIndex) Restore(sessionID string, slices []Slice) {
	if _, done := x.processed[sessionID]; done {
		x.logger.Warn("restore skipped, session already processed", "session_id", sessionID)
		return
	}
	days := make(map[int]struct{}, len(slices))
	for _, sl := range slices {
		if sl.Session.ID != sessionID {
			continue
		}
		x.InsertSlice(sl)
		days[sl.DayIndex] = struct{}{}
	}
	if len(days) > 0 {
		x.processed[sessionID] = days
	}
}

// Processed reports whether the session currently has materialized slices.
func (x *BucketIndex) Processed(sessionID string) bool {
	_, ok := x.processed[sessionID]
	return ok
}

// SlicesForSession gathers the session's current slices from its recorded
// day buckets, ordered by day. ok is false when the session is not
// processed.
func (x *BucketIndex) SlicesForSession(sessionID string) (slices []Slice, ok bool) {
	days, found := x.processed[sessionID]
	if !found {
		return nil, false
	}
	for day := range days {
		bucket, ok := x.buckets[day]
		if !ok {
			x.logger.Error("processed record points at missing bucket",
				"session_id", sessionID, "day_index", day)
			continue
		}
		for _, sl := range bucket.Slices {
			if sl.Session.ID == sessionID {
				slices = append(slices, sl)
			}
		}
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].DayIndex < slices[j].DayIndex
	})
	return slices, true
}

// DaySlices returns the slices bucketed on the given day, in insertion
// order. Returns nil for an empty day.
func (x *BucketIndex) DaySlices(dayIndex int) []Slice {
	bucket, ok := x.buckets[dayIndex]
	if !ok {
		return nil
	}
	return bucket.Slices
}

// Reset drops all buckets and processed records.
func (x *BucketIndex) Reset() {
	x.buckets = make(map[int]*DayBucket)
	x.processed = make(map[string]map[int]struct{})
}
