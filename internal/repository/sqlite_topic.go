package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mkaminska/studycal/internal/db"
	"github.com/mkaminska/studycal/internal/domain"
)

// SQLiteTopicRepo implements TopicRepo using a SQLite database.
type SQLiteTopicRepo struct {
	db db.DBTX
}

// NewSQLiteTopicRepo creates a new SQLiteTopicRepo.
func NewSQLiteTopicRepo(db db.DBTX) *SQLiteTopicRepo {
	return &SQLiteTopicRepo{db: db}
}

func (r *SQLiteTopicRepo) Create(ctx context.Context, t *domain.Topic) error {
	query := `INSERT INTO topics (id, title, color, archived_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		string(t.Color),
		nullableTimeToString(t.ArchivedAt, time.RFC3339),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting topic: %w", err)
	}
	return nil
}

func (r *SQLiteTopicRepo) GetByID(ctx context.Context, id string) (*domain.Topic, error) {
	query := `SELECT id, title, color, archived_at, created_at, updated_at
		FROM topics WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTopic(row)
}

func (r *SQLiteTopicRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Topic, error) {
	query := `SELECT id, title, color, archived_at, created_at, updated_at
		FROM topics`
	if !includeArchived {
		query += ` WHERE archived_at IS NULL`
	}
	query += ` ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	defer rows.Close()
	return r.scanTopics(rows)
}

func (r *SQLiteTopicRepo) Update(ctx context.Context, t *domain.Topic) error {
	query := `UPDATE topics SET title = ?, color = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, t.Title, string(t.Color), nowUTC(), t.ID)
	if err != nil {
		return fmt.Errorf("updating topic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("topic %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTopicRepo) Archive(ctx context.Context, id string) error {
	query := `UPDATE topics SET archived_at = ?, updated_at = ? WHERE id = ? AND archived_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("archiving topic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("topic %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTopicRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM topics WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting topic: %w", err)
	}
	return nil
}

// scanTopic scans a single topic from a *sql.Row.
func (r *SQLiteTopicRepo) scanTopic(row *sql.Row) (*domain.Topic, error) {
	var t domain.Topic
	var color string
	var archivedAt sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&t.ID, &t.Title, &color, &archivedAt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("topic: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning topic: %w", err)
	}

	return r.populateTopic(&t, color, archivedAt, createdAtStr, updatedAtStr)
}

// scanTopics scans multiple topics from *sql.Rows.
func (r *SQLiteTopicRepo) scanTopics(rows *sql.Rows) ([]*domain.Topic, error) {
	var topics []*domain.Topic
	for rows.Next() {
		var t domain.Topic
		var color string
		var archivedAt sql.NullString
		var createdAtStr, updatedAtStr string

		err := rows.Scan(&t.ID, &t.Title, &color, &archivedAt, &createdAtStr, &updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("scanning topic row: %w", err)
		}

		topic, parseErr := r.populateTopic(&t, color, archivedAt, createdAtStr, updatedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}

		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating topics: %w", err)
	}
	return topics, nil
}

// populateTopic fills in parsed fields on a Topic after scanning raw strings.
func (r *SQLiteTopicRepo) populateTopic(t *domain.Topic, color string, archivedAt sql.NullString, createdAtStr, updatedAtStr string) (*domain.Topic, error) {
	t.Color = domain.ColorCode(color)
	t.ArchivedAt = parseNullableTime(archivedAt, time.RFC3339)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return t, nil
}
