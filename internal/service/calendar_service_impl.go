package service

import (
	"context"
	"time"

	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/mkaminska/studycal/internal/repository"
)

type calendarService struct {
	sessions repository.SessionRepo
	index    *calendar.BucketIndex
	clock    calendar.Clock
	loc      *time.Location
	observer UseCaseObserver
}

// NewCalendarService builds the view-scoped calendar state. The index is
// created empty and filled by Refresh; the clock is shared by every live
// placement so all in-progress blocks advance together.
func NewCalendarService(sessions repository.SessionRepo, index *calendar.BucketIndex, clock calendar.Clock, observers ...UseCaseObserver) CalendarService {
	if clock == nil {
		clock = calendar.SystemClock
	}
	return &calendarService{
		sessions: sessions,
		index:    index,
		clock:    clock,
		loc:      index.Location(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *calendarService) Refresh(ctx context.Context, startMS, endMS int64) (ingested int, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "calendar_refresh", startedAt, err,
			map[string]any{"ingested": ingested})
	}()

	snapshot, err := s.sessions.ListInRange(ctx, startMS, endMS)
	if err != nil {
		return 0, err
	}

	now := s.clock()
	var fresh []domain.StudySession
	for _, sess := range snapshot {
		if sess.Live() {
			// A live session's slice set can grow past midnight between
			// refreshes; always re-slice it against the current clock.
			s.index.Reingest(*sess, now)
			continue
		}
		fresh = append(fresh, *sess)
	}
	ingested = s.index.Ingest(fresh, now)
	return ingested, nil
}

func (s *calendarService) Day(dayIndex int) []calendar.ColumnSlice {
	return calendar.AssignColumns(s.index.DaySlices(dayIndex))
}

func (s *calendarService) Placements(dayIndex int, m calendar.Metrics) []PlacedSlice {
	columns := s.Day(dayIndex)
	if len(columns) == 0 {
		return nil
	}
	now := s.clock()
	placed := make([]PlacedSlice, 0, len(columns))
	for _, cs := range columns {
		placed = append(placed, PlacedSlice{
			ColumnSlice: cs,
			Placement:   calendar.ComputePlacement(cs, now, m, s.loc),
		})
	}
	return placed
}

func (s *calendarService) SlicesForSession(sessionID string) ([]calendar.Slice, bool) {
	return s.index.SlicesForSession(sessionID)
}

func (s *calendarService) RemoveSession(ctx context.Context, sessionID string) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "calendar_remove_session", startedAt, err,
			map[string]any{"session_id": sessionID})
	}()

	// Optimistic: drop from the index first so the view reacts instantly,
	// reinsert if the store refuses the delete.
	saved, indexed := s.index.SlicesForSession(sessionID)
	if indexed {
		if err := s.index.RemoveSession(sessionID); err != nil {
			return err
		}
	}

	if err = s.sessions.Delete(ctx, sessionID); err != nil {
		if indexed {
			s.index.Restore(sessionID, saved)
		}
		return err
	}
	return nil
}

func (s *calendarService) SessionUpdated(sess domain.StudySession) {
	s.index.Reingest(sess, s.clock())
}

func (s *calendarService) Now() int64 {
	return s.clock()
}

func (s *calendarService) Location() *time.Location {
	return s.loc
}

func (s *calendarService) Reset() {
	s.index.Reset()
}
