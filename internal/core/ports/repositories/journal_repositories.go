package repositories

import (
	"context"
	"time"

	"github.com/edujournal/journal_backend/internal/core/domain"
)

// JournalUpdate carries the mutable journal fields for UpdateJournal. Nil
// pointers mean "leave unchanged"; a present empty slice clears the value.
type JournalUpdate struct {
	Title            string
	Content          string
	Media            *[]string
	MediaType        *domain.MediaType
	TaggedStudentIDs *[]string
}

// JournalRepository defines persistence operations for journals and their
// tagged-student associations. Multi-statement operations (journal row plus
// junction rows) run inside a single database transaction.
type JournalRepository interface {
	// SaveJournal inserts a journal and its tag associations atomically.
	// Unknown student IDs surface as apperrors.ErrValidation (FK violation).
	SaveJournal(ctx context.Context, journal domain.Journal, taggedStudentIDs []string) (*domain.Journal, error)

	// FindJournalByID retrieves one journal with teacher and tagged-student
	// projections, or apperrors.ErrNotFound.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindAllJournals returns every journal with associations, newest first.
	FindAllJournals(ctx context.Context) ([]domain.Journal, error)

	// UpdateJournal applies upd atomically, replacing (not merging) the tag
	// set when one is provided. Returns the updated journal with
	// associations, or apperrors.ErrNotFound.
	UpdateJournal(ctx context.Context, journalID string, upd JournalUpdate) (*domain.Journal, error)

	// DeleteJournal removes the journal; the store cascades the junction
	// rows. Returns apperrors.ErrNotFound when no row matches.
	DeleteJournal(ctx context.Context, journalID string) error

	// SetPublishAt sets the publish timestamp and returns the updated
	// journal with associations.
	SetPublishAt(ctx context.Context, journalID string, publishAt time.Time) (*domain.Journal, error)

	// FindJournalsByTeacher returns journals owned by the teacher, newest
	// first.
	FindJournalsByTeacher(ctx context.Context, teacherID string) ([]domain.Journal, error)

	// FindPublishedJournalsForStudent returns journals where the student is
	// tagged and publish_at is null or has passed, evaluated against the
	// store's clock, newest first.
	FindPublishedJournalsForStudent(ctx context.Context, studentID string) ([]domain.Journal, error)
}
