package models

import (
	"database/sql"
	"time"
)

// Journal mirrors the journals table. Media is stored as a text[] column and
// scanned directly by pgx.
type Journal struct {
	JournalID string         `db:"journal_id"`
	Title     string         `db:"title"`
	Content   string         `db:"content"`
	Media     []string       `db:"media"`
	MediaType sql.NullString `db:"media_type"`
	TeacherID string         `db:"teacher_id"`
	PublishAt sql.NullTime   `db:"publish_at"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}
