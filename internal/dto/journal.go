package dto

import (
	"github.com/edujournal/journal_backend/internal/core/domain"
	"github.com/edujournal/journal_backend/internal/utils"
)

// CreateJournalRequest carries the multipart form fields for journal
// creation. TaggedStudentIDs accepts either repeated form values or a single
// JSON-encoded array string; the service decodes it before use.
type CreateJournalRequest struct {
	Title            string   `form:"title" binding:"required"`
	Content          string   `form:"content" binding:"required"`
	Media            []string `form:"media"`
	MediaType        string   `form:"mediaType" binding:"omitempty,mediatype"`
	TaggedStudentIDs []string `form:"taggedStudents"`
}

// UpdateJournalRequest mirrors CreateJournalRequest with pointer fields for
// the optional parts: nil means the field was omitted and the stored value is
// left unchanged; a present empty list clears it.
type UpdateJournalRequest struct {
	Title            string    `form:"title" binding:"required"`
	Content          string    `form:"content" binding:"required"`
	Media            *[]string `form:"-"`
	MediaType        *string   `form:"-"`
	TaggedStudentIDs *[]string `form:"-"`
}

// PublishRequest is the body for POST /journal/:id/publish. PublishAt, when
// present, must be a strict UTC ISO-8601 millisecond string.
type PublishRequest struct {
	PublishAt string `json:"publish_at"`
}

// JournalResponse is the wire shape of a journal, associations included.
// PublishAt is serialized as the exact ISO string the publish endpoint
// accepts, so stored values round-trip byte for byte.
type JournalResponse struct {
	JournalID      string         `json:"journalID"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Media          []string       `json:"media"`
	MediaType      string         `json:"mediaType,omitempty"`
	Teacher        *UserResponse  `json:"teacher,omitempty"`
	TaggedStudents []UserResponse `json:"taggedStudents"`
	PublishAt      *string        `json:"publishAt,omitempty"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

// ListJournalsResponse wraps a feed or listing result.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// ToJournalResponse converts a domain Journal to its wire shape.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:      j.JournalID,
		Title:          j.Title,
		Content:        j.Content,
		Media:          j.Media,
		MediaType:      string(j.MediaType),
		TaggedStudents: make([]UserResponse, len(j.TaggedStudents)),
		CreatedAt:      utils.FormatISO(j.CreatedAt),
		UpdatedAt:      utils.FormatISO(j.UpdatedAt),
	}
	if resp.Media == nil {
		resp.Media = []string{}
	}
	if j.Teacher != nil {
		t := toSummaryResponse(*j.Teacher)
		resp.Teacher = &t
	}
	for i, s := range j.TaggedStudents {
		resp.TaggedStudents[i] = toSummaryResponse(s)
	}
	if j.PublishAt != nil {
		formatted := utils.FormatISO(*j.PublishAt)
		resp.PublishAt = &formatted
	}
	return resp
}

// ToListJournalsResponse converts a slice of domain Journals.
func ToListJournalsResponse(journals []domain.Journal) ListJournalsResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return ListJournalsResponse{Journals: responses}
}

func toSummaryResponse(s domain.UserSummary) UserResponse {
	return UserResponse{
		UserID: s.UserID,
		Name:   s.Name,
		Email:  s.Email,
		Role:   string(s.Role),
	}
}
