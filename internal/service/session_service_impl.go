package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/db"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/mkaminska/studycal/internal/repository"
)

type sessionService struct {
	sessions repository.SessionRepo
	topics   repository.TopicRepo
	uow      db.UnitOfWork
	clock    calendar.Clock
	observer UseCaseObserver
}

func NewSessionService(sessions repository.SessionRepo, topics repository.TopicRepo, uow db.UnitOfWork, clock calendar.Clock, observers ...UseCaseObserver) SessionService {
	if clock == nil {
		clock = calendar.SystemClock
	}
	return &sessionService{
		sessions: sessions,
		topics:   topics,
		uow:      uow,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) Start(ctx context.Context, topicID string) (session *domain.StudySession, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_start", startedAt, err, map[string]any{"topic_id": topicID})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txTopics := repository.NewSQLiteTopicRepo(tx)

		topic, err := txTopics.GetByID(ctx, topicID)
		if err != nil {
			return err
		}

		// Only one session runs at a time.
		if _, err := txSessions.GetActive(ctx); err == nil {
			return ErrSessionRunning
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		session = &domain.StudySession{
			ID:         uuid.New().String(),
			TopicID:    topic.ID,
			TopicTitle: topic.Title,
			Color:      topic.Color,
			StartMS:    s.clock(),
			Status:     domain.SessionActive,
			CreatedAt:  time.Now().UTC(),
		}
		return txSessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Stop(ctx context.Context) (session *domain.StudySession, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_stop", startedAt, err, nil)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		active, err := txSessions.GetActive(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNoActiveSession
			}
			return err
		}

		end := s.clock()
		if end < active.StartMS {
			end = active.StartMS
		}
		active.EndMS = &end
		active.Status = domain.SessionStopped
		if err := txSessions.Update(ctx, active); err != nil {
			return err
		}
		session = active
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Log(ctx context.Context, topicID string, startMS, endMS int64) (session *domain.StudySession, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "session_log", startedAt, err, map[string]any{"topic_id": topicID})
	}()

	if startMS > endMS {
		return nil, ErrInvalidRange
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}

	session = &domain.StudySession{
		ID:         uuid.New().String(),
		TopicID:    topic.ID,
		TopicTitle: topic.Title,
		Color:      topic.Color,
		StartMS:    startMS,
		EndMS:      &endMS,
		Status:     domain.SessionStopped,
		CreatedAt:  time.Now().UTC(),
	}
	if err = s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Active(ctx context.Context) (*domain.StudySession, error) {
	return s.sessions.GetActive(ctx)
}

func (s *sessionService) ListInRange(ctx context.Context, startMS, endMS int64) ([]*domain.StudySession, error) {
	return s.sessions.ListInRange(ctx, startMS, endMS)
}

func (s *sessionService) ListByTopic(ctx context.Context, topicID string) ([]*domain.StudySession, error) {
	return s.sessions.ListByTopic(ctx, topicID)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}
