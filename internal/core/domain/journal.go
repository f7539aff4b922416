package domain

import "time"

// UserSummary is the sanitized projection of a user embedded in journal
// responses (owning teacher and tagged students).
type UserSummary struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// Journal is a teacher-authored post with optional media, visible to tagged
// students once its publish time has passed.
type Journal struct {
	JournalID      string        `json:"journalID"` // Primary Key (UUID)
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	Media          []string      `json:"media"` // Ordered media URLs, possibly empty
	MediaType      MediaType     `json:"mediaType,omitempty"`
	TeacherID      string        `json:"teacherID"` // FK to users, cascade delete
	Teacher        *UserSummary  `json:"teacher,omitempty"`
	TaggedStudents []UserSummary `json:"taggedStudents"`
	// PublishAt gates student visibility at read time. Nil until the insert
	// trigger defaults it to the creation time.
	PublishAt *time.Time `json:"publishAt,omitempty"`
	Timestamps
}
