package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkaminska/studycal/internal/calendar"
	"github.com/mkaminska/studycal/internal/domain"
	"github.com/mkaminska/studycal/internal/repository"
)

type topicService struct {
	topics   repository.TopicRepo
	sessions repository.SessionRepo
	clock    calendar.Clock
}

func NewTopicService(topics repository.TopicRepo, sessions repository.SessionRepo, clock calendar.Clock) TopicService {
	if clock == nil {
		clock = calendar.SystemClock
	}
	return &topicService{topics: topics, sessions: sessions, clock: clock}
}

func (s *topicService) Create(ctx context.Context, title string, color domain.ColorCode) (*domain.Topic, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("topic title must not be empty")
	}
	if color == "" {
		color = domain.ColorBlue
	}
	if !domain.ValidColorCodes[string(color)] {
		return nil, fmt.Errorf("unknown color %q", color)
	}

	now := time.Now().UTC()
	t := &domain.Topic{
		ID:        uuid.New().String(),
		Title:     title,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.topics.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *topicService) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	return s.topics.GetByID(ctx, id)
}

func (s *topicService) List(ctx context.Context, includeArchived bool) ([]*domain.Topic, error) {
	return s.topics.List(ctx, includeArchived)
}

func (s *topicService) Update(ctx context.Context, t *domain.Topic) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("topic title must not be empty")
	}
	if !domain.ValidColorCodes[string(t.Color)] {
		return fmt.Errorf("unknown color %q", t.Color)
	}
	return s.topics.Update(ctx, t)
}

func (s *topicService) Archive(ctx context.Context, id string) error {
	return s.topics.Archive(ctx, id)
}

func (s *topicService) Delete(ctx context.Context, id string) error {
	return s.topics.Delete(ctx, id)
}

func (s *topicService) TotalStudiedMS(ctx context.Context, topicID string) (int64, error) {
	sessions, err := s.sessions.ListByTopic(ctx, topicID)
	if err != nil {
		return 0, err
	}
	now := s.clock()
	var total int64
	for _, sess := range sessions {
		total += sess.DurationMS(now)
	}
	return total, nil
}
