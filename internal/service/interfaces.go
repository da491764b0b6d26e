package service

import (
	"context"
	"errors"
	"time"

	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/domain"
)

var (
	// ErrSessionRunning rejects starting a second live session.
	ErrSessionRunning = errors.New("a session is already running")
	// ErrNoActiveSession rejects stopping when nothing is running.
	ErrNoActiveSession = errors.New("no active session")
	// ErrInvalidRange rejects sessions whose start is after their end.
	ErrInvalidRange = errors.New("session start must not be after its end")
)

type TopicService interface {
	Create(ctx context.Context, title string, color domain.ColorCode) (*domain.Topic, error)
	GetByID(ctx context.Context, id string) (*domain.Topic, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Topic, error)
	Update(ctx context.Context, t *domain.Topic) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// TotalStudiedMS sums the durations of all of a topic's sessions;
	// a live session counts up to the service clock.
	TotalStudiedMS(ctx context.Context, topicID string) (int64, error)
}

type SessionService interface {
	// Start opens a live session on the topic. Fails with
	// ErrSessionRunning when another session is still active.
	Start(ctx context.Context, topicID string) (*domain.StudySession, error)
	// Stop closes the running session at the current clock reading.
	Stop(ctx context.Context) (*domain.StudySession, error)
	// Log records an already-finished session.
	Log(ctx context.Context, topicID string, startMS, endMS int64) (*domain.StudySession, error)
	Active(ctx context.Context) (*domain.StudySession, error)
	ListInRange(ctx context.Context, startMS, endMS int64) ([]*domain.StudySession, error)
	ListByTopic(ctx context.Context, topicID string) ([]*domain.StudySession, error)
	Delete(ctx context.Context, id string) error
}

type PrefsService interface {
	Get(ctx context.Context) (domain.ViewPrefs, error)
	Update(ctx context.Context, p domain.ViewPrefs) (domain.ViewPrefs, error)
}

// PlacedSlice pairs a column-assigned slice with its pixel geometry.
type PlacedSlice struct {
	calendar.ColumnSlice
	Placement calendar.Placement
}

// CalendarService owns the derived calendar state for one open view: the
// day-bucket index, the shared clock, and the viewer's location. It is the
// single mutator of the index; callers drive it from discrete triggers
// (data refresh, user edits, clock ticks).
type CalendarService interface {
	// Refresh snapshots the stored sessions intersecting the range and
	// ingests them. Live sessions are re-sliced so a session that crossed
	// midnight grows a new slice. Returns the number of sessions ingested.
	Refresh(ctx context.Context, startMS, endMS int64) (int, error)
	// Day returns the day's slices with fresh column assignments.
	Day(dayIndex int) []calendar.ColumnSlice
	// Placements returns the day's slices with geometry for the given
	// measurements, derived from the shared clock.
	Placements(dayIndex int, m calendar.Metrics) []PlacedSlice
	SlicesForSession(sessionID string) ([]calendar.Slice, bool)
	// RemoveSession deletes the session from the store and the index.
	// The index removal is optimistic: if the store refuses, the removed
	// slices are reinserted before the error is returned.
	RemoveSession(ctx context.Context, sessionID string) error
	// SessionUpdated replaces the index's stale slices for a changed session.
	SessionUpdated(s domain.StudySession)
	Now() int64
	Location() *time.Location
	Reset()
}
