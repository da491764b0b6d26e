package domain

import "time"

type Topic struct {
	ID         string
	Title      string
	Color      ColorCode
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
