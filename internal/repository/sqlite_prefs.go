package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkaminska/studycal/internal/db"
	"github.com/mkaminska/studycal/internal/domain"
)

// SQLitePrefsRepo implements PrefsRepo over the single-row view_prefs table.
type SQLitePrefsRepo struct {
	db db.DBTX
}

// NewSQLitePrefsRepo creates a new SQLitePrefsRepo.
func NewSQLitePrefsRepo(db db.DBTX) *SQLitePrefsRepo {
	return &SQLitePrefsRepo{db: db}
}

func (r *SQLitePrefsRepo) Get(ctx context.Context) (*domain.ViewPrefs, error) {
	query := `SELECT id, display_mode, week_starts_on, cell_height_px, zoom_level
		FROM view_prefs WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.ViewPrefs
	var mode string
	err := row.Scan(&p.ID, &mode, &p.WeekStartsOn, &p.CellHeightPx, &p.ZoomLevel)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("view prefs: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning view prefs: %w", err)
	}
	p.DisplayMode = domain.DisplayMode(mode)
	return &p, nil
}

func (r *SQLitePrefsRepo) Upsert(ctx context.Context, p *domain.ViewPrefs) error {
	query := `INSERT INTO view_prefs (id, display_mode, week_starts_on, cell_height_px, zoom_level)
		VALUES ('default', ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_mode   = excluded.display_mode,
			week_starts_on = excluded.week_starts_on,
			cell_height_px = excluded.cell_height_px,
			zoom_level     = excluded.zoom_level`
	_, err := r.db.ExecContext(ctx, query,
		string(p.DisplayMode), p.WeekStartsOn, p.CellHeightPx, p.ZoomLevel)
	if err != nil {
		return fmt.Errorf("upserting view prefs: %w", err)
	}
	return nil
}
