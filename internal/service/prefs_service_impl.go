package service

import (
	"context"
	"errors"

	"github.com/mkaminska/studycal/internal/domain"
	"github.com/mkaminska/studycal/internal/repository"
)

type prefsService struct {
	prefs repository.PrefsRepo
}

func NewPrefsService(prefs repository.PrefsRepo) PrefsService {
	return &prefsService{prefs: prefs}
}

// Get returns the stored preferences clamped into their valid ranges. A
// missing row falls back to defaults instead of failing the view.
func (s *prefsService) Get(ctx context.Context) (domain.ViewPrefs, error) {
	p, err := s.prefs.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.DefaultViewPrefs(), nil
		}
		return domain.ViewPrefs{}, err
	}
	return p.Clamped(), nil
}

// Update clamps and persists, returning what was actually stored.
func (s *prefsService) Update(ctx context.Context, p domain.ViewPrefs) (domain.ViewPrefs, error) {
	p.ID = "default"
	clamped := p.Clamped()
	if err := s.prefs.Upsert(ctx, &clamped); err != nil {
		return domain.ViewPrefs{}, err
	}
	return clamped, nil
}
