package services

import (
	"context"

	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/edujournal/journal_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journals and feeds
type JournalReaderSvc interface {
	// GetJournalByID retrieves one journal with associations.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals returns every journal regardless of caller identity (the
	// admin view behind the generic authenticated listing endpoint).
	ListJournals(ctx context.Context) ([]domain.Journal, error)

	// TeacherFeed returns journals authored by the teacher, newest first.
	TeacherFeed(ctx context.Context, teacherID string) ([]domain.Journal, error)

	// StudentFeed returns published journals the student is tagged on.
	StudentFeed(ctx context.Context, studentID string) ([]domain.Journal, error)

	// FeedForUser re-fetches the user's role from the store and routes to
	// TeacherFeed or StudentFeed. An unrecognized role yields
	// apperrors.ErrValidation; a missing user yields apperrors.ErrNotFound.
	FeedForUser(ctx context.Context, userID string) ([]domain.Journal, error)
}

// JournalWriterSvc defines mutation operations for journals
type JournalWriterSvc interface {
	// CreateJournal creates a journal owned by teacherID, tagging the
	// decoded student IDs.
	CreateJournal(ctx context.Context, teacherID string, req dto.CreateJournalRequest) (*domain.Journal, error)

	// UpdateJournal replaces the journal's fields; omitted optional fields
	// leave stored values unchanged.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest) (*domain.Journal, error)

	// DeleteJournal removes the journal and its tag associations.
	DeleteJournal(ctx context.Context, journalID string) error

	// PublishJournal sets publish_at to the given strict ISO timestamp, or
	// to the current instant when the value is empty.
	PublishJournal(ctx context.Context, journalID string, publishAt string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
