package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/edujournal/journal_backend/internal/apperrors"
	"github.com/edujournal/journal_backend/internal/core/domain"
	portsrepo "github.com/edujournal/journal_backend/internal/core/ports/repositories"
	portssvc "github.com/edujournal/journal_backend/internal/core/ports/services"
	"github.com/edujournal/journal_backend/internal/dto"
	"github.com/edujournal/journal_backend/internal/utils"
	"github.com/google/uuid"
)

// journalService provides journal CRUD, publishing and feed selection.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	userRepo    portsrepo.UserRepository
}

// NewJournalService creates a new journal service. The user repository is
// needed because feed authorization re-verifies roles against the store
// rather than trusting token claims.
func NewJournalService(journalRepo portsrepo.JournalRepository, userRepo portsrepo.UserRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		userRepo:    userRepo,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// decodeTaggedStudents accepts either repeated form values or a single
// JSON-encoded array string and returns the flat list of student IDs.
func decodeTaggedStudents(values []string) ([]string, error) {
	if len(values) == 1 {
		trimmed := strings.TrimSpace(values[0])
		if strings.HasPrefix(trimmed, "[") {
			var decoded []string
			if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
				return nil, fmt.Errorf("%w: taggedStudents is not a valid JSON array", apperrors.ErrValidation)
			}
			return decoded, nil
		}
	}
	return values, nil
}

func (s *journalService) CreateJournal(ctx context.Context, teacherID string, req dto.CreateJournalRequest) (*domain.Journal, error) {
	mediaType, ok := domain.ParseMediaType(req.MediaType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown media type %q", apperrors.ErrValidation, req.MediaType)
	}

	taggedStudentIDs, err := decodeTaggedStudents(req.TaggedStudentIDs)
	if err != nil {
		return nil, err
	}

	media := req.Media
	if media == nil {
		media = []string{}
	}

	now := time.Now()
	journal := domain.Journal{
		JournalID: uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Media:     media,
		MediaType: mediaType,
		TeacherID: teacherID,
		// PublishAt stays nil; the store trigger defaults it to created_at.
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	return s.journalRepo.SaveJournal(ctx, journal, taggedStudentIDs)
}

func (s *journalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest) (*domain.Journal, error) {
	upd := portsrepo.JournalUpdate{
		Title:   req.Title,
		Content: req.Content,
		Media:   req.Media,
	}

	if req.MediaType != nil {
		mediaType, ok := domain.ParseMediaType(*req.MediaType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown media type %q", apperrors.ErrValidation, *req.MediaType)
		}
		upd.MediaType = &mediaType
	}

	// An omitted tag list leaves the stored set unchanged; a present empty
	// list clears it. Create and update share this rule.
	if req.TaggedStudentIDs != nil {
		decoded, err := decodeTaggedStudents(*req.TaggedStudentIDs)
		if err != nil {
			return nil, err
		}
		upd.TaggedStudentIDs = &decoded
	}

	return s.journalRepo.UpdateJournal(ctx, journalID, upd)
}

func (s *journalService) DeleteJournal(ctx context.Context, journalID string) error {
	return s.journalRepo.DeleteJournal(ctx, journalID)
}

// PublishJournal sets the publish timestamp. A supplied value must be a
// strict UTC ISO-8601 millisecond string that round-trips identically;
// anything else is a validation error naming the format requirement.
func (s *journalService) PublishJournal(ctx context.Context, journalID string, publishAt string) (*domain.Journal, error) {
	when := time.Now()
	if publishAt != "" {
		parsed, err := utils.ParseStrictISO(publishAt)
		if err != nil {
			return nil, fmt.Errorf("%w: publish_at must be an ISO-8601 timestamp like %s", apperrors.ErrValidation, utils.ISOMillisFormat)
		}
		when = parsed
	}
	return s.journalRepo.SetPublishAt(ctx, journalID, when)
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	return s.journalRepo.FindJournalByID(ctx, journalID)
}

func (s *journalService) ListJournals(ctx context.Context) ([]domain.Journal, error) {
	return s.journalRepo.FindAllJournals(ctx)
}

func (s *journalService) TeacherFeed(ctx context.Context, teacherID string) ([]domain.Journal, error) {
	return s.journalRepo.FindJournalsByTeacher(ctx, teacherID)
}

func (s *journalService) StudentFeed(ctx context.Context, studentID string) ([]domain.Journal, error) {
	return s.journalRepo.FindPublishedJournalsForStudent(ctx, studentID)
}

// FeedForUser re-fetches the user's role from the store before routing. The
// token is treated strictly as an identity assertion, never an authorization
// cache, so role changes take effect immediately.
func (s *journalService) FeedForUser(ctx context.Context, userID string) ([]domain.Journal, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch user.Role {
	case domain.RoleTeacher:
		return s.TeacherFeed(ctx, userID)
	case domain.RoleStudent:
		return s.StudentFeed(ctx, userID)
	default:
		return nil, fmt.Errorf("%w: no feed for role %q", apperrors.ErrValidation, user.Role)
	}
}
