package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mkaminska/studycal/internal/domain"
)

// Topic options
type TopicOption func(*domain.Topic)

func WithColor(c domain.ColorCode) TopicOption {
	return func(t *domain.Topic) {
		t.Color = c
	}
}

func WithArchived(at time.Time) TopicOption {
	return func(t *domain.Topic) {
		t.ArchivedAt = &at
	}
}

func NewTestTopic(title string, opts ...TopicOption) *domain.Topic {
	now := time.Now().UTC()
	t := &domain.Topic{
		ID:        uuid.New().String(),
		Title:     title,
		Color:     domain.ColorBlue,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Session options
type SessionOption func(*domain.StudySession)

func WithStatus(s domain.SessionStatus) SessionOption {
	return func(sess *domain.StudySession) {
		sess.Status = s
	}
}

// Live clears the end time and marks the session active.
func Live() SessionOption {
	return func(sess *domain.StudySession) {
		sess.EndMS = nil
		sess.Status = domain.SessionActive
	}
}

// NewTestSession builds a stopped session on the given topic covering
// [startMS, endMS].
func NewTestSession(topicID string, startMS, endMS int64, opts ...SessionOption) *domain.StudySession {
	s := &domain.StudySession{
		ID:        uuid.New().String(),
		TopicID:   topicID,
		StartMS:   startMS,
		EndMS:     &endMS,
		Status:    domain.SessionStopped,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MSAt is shorthand for a UTC instant in milliseconds.
func MSAt(year int, month time.Month, day, hour, minute int) int64 {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC).UnixMilli()
}
