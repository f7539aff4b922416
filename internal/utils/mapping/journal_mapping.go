package mapping

import (
	"database/sql"
	"time"

	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/edujournal/journal_backend/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	var publishAt sql.NullTime
	if d.PublishAt != nil {
		publishAt = sql.NullTime{Time: *d.PublishAt, Valid: true}
	}
	return models.Journal{
		JournalID: d.JournalID,
		Title:     d.Title,
		Content:   d.Content,
		Media:     d.Media,
		MediaType: nullString(string(d.MediaType)),
		TeacherID: d.TeacherID,
		PublishAt: publishAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
// Associations (teacher, tagged students) are attached by the repository.
func ToDomainJournal(m models.Journal) domain.Journal {
	var publishAt *time.Time
	if m.PublishAt.Valid {
		t := m.PublishAt.Time
		publishAt = &t
	}
	media := m.Media
	if media == nil {
		media = []string{}
	}
	return domain.Journal{
		JournalID: m.JournalID,
		Title:     m.Title,
		Content:   m.Content,
		Media:     media,
		MediaType: domain.MediaType(m.MediaType.String),
		TeacherID: m.TeacherID,
		PublishAt: publishAt,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
