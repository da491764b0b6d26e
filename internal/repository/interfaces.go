package repository

import (
	"context"
	"errors"

	"github.com/mkaminska/studycal/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type TopicRepo interface {
	Create(ctx context.Context, t *domain.Topic) error
	GetByID(ctx context.Context, id string) (*domain.Topic, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Topic, error)
	Update(ctx context.Context, t *domain.Topic) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.StudySession) error
	GetByID(ctx context.Context, id string) (*domain.StudySession, error)
	// ListInRange returns the sessions intersecting [startMS, endMS]; a
	// live session (NULL end) intersects every range its start precedes.
	ListInRange(ctx context.Context, startMS, endMS int64) ([]*domain.StudySession, error)
	ListByTopic(ctx context.Context, topicID string) ([]*domain.StudySession, error)
	// GetActive returns the running session, or ErrNotFound when none is.
	GetActive(ctx context.Context) (*domain.StudySession, error)
	Update(ctx context.Context, s *domain.StudySession) error
	Delete(ctx context.Context, id string) error
}

type PrefsRepo interface {
	Get(ctx context.Context) (*domain.ViewPrefs, error)
	Upsert(ctx context.Context, p *domain.ViewPrefs) error
}
