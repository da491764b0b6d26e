package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkaminska/studycal/internal/db"
	"github.com/mkaminska/studycal/internal/domain"
)

// selectSession joins topics so every loaded session carries its topic's
// title and color for rendering.
const selectSession = `SELECT s.id, s.topic_id, t.title, t.color, s.start_ms, s.end_ms, s.status, s.created_at
	FROM study_sessions s
	JOIN topics t ON s.topic_id = t.id`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.StudySession) error {
	query := `INSERT INTO study_sessions (id, topic_id, start_ms, end_ms, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.TopicID,
		s.StartMS,
		nullableInt64ToValue(s.EndMS),
		string(s.Status),
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting study session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.StudySession, error) {
	row := r.db.QueryRowContext(ctx, selectSession+` WHERE s.id = ?`, id)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) ListInRange(ctx context.Context, startMS, endMS int64) ([]*domain.StudySession, error) {
	// A live session has no end; it intersects the range whenever it
	// started on or before the range end.
	query := selectSession + `
		WHERE s.start_ms <= ?
		  AND (s.end_ms IS NULL OR s.end_ms >= ?)
		ORDER BY s.start_ms`
	rows, err := r.db.QueryContext(ctx, query, endMS, startMS)
	if err != nil {
		return nil, fmt.Errorf("listing sessions in range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListByTopic(ctx context.Context, topicID string) ([]*domain.StudySession, error) {
	query := selectSession + ` WHERE s.topic_id = ? ORDER BY s.start_ms`
	rows, err := r.db.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by topic: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) GetActive(ctx context.Context) (*domain.StudySession, error) {
	row := r.db.QueryRowContext(ctx, selectSession+` WHERE s.status = 'active' ORDER BY s.start_ms LIMIT 1`)
	return r.scanSession(row)
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.StudySession) error {
	query := `UPDATE study_sessions SET topic_id = ?, start_ms = ?, end_ms = ?, status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.TopicID, s.StartMS, nullableInt64ToValue(s.EndMS), string(s.Status), s.ID)
	if err != nil {
		return fmt.Errorf("updating study session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("study session %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM study_sessions WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting study session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("study session %s: %w", id, ErrNotFound)
	}
	return nil
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.StudySession, error) {
	var s domain.StudySession
	var color, status, createdAtStr string
	var endMS sql.NullInt64

	err := row.Scan(&s.ID, &s.TopicID, &s.TopicTitle, &color, &s.StartMS, &endMS, &status, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("study session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning study session: %w", err)
	}

	return r.populateSession(&s, color, status, endMS, createdAtStr)
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.StudySession, error) {
	var sessions []*domain.StudySession
	for rows.Next() {
		var s domain.StudySession
		var color, status, createdAtStr string
		var endMS sql.NullInt64

		err := rows.Scan(&s.ID, &s.TopicID, &s.TopicTitle, &color, &s.StartMS, &endMS, &status, &createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}

		session, parseErr := r.populateSession(&s, color, status, endMS, createdAtStr)
		if parseErr != nil {
			return nil, parseErr
		}

		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// populateSession fills in parsed fields on a StudySession after scanning raw values.
func (r *SQLiteSessionRepo) populateSession(s *domain.StudySession, color, status string, endMS sql.NullInt64, createdAtStr string) (*domain.StudySession, error) {
	s.Color = domain.ColorCode(color)
	s.Status = domain.SessionStatus(status)
	s.EndMS = int64FromNull(endMS)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}

	return s, nil
}
