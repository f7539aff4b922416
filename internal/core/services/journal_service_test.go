package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/edujournal/journal_backend/internal/apperrors"
	"github.com/edujournal/journal_backend/internal/core/domain"
	portsrepo "github.com/edujournal/journal_backend/internal/core/ports/repositories"
	portssvc "github.com/edujournal/journal_backend/internal/core/ports/services"
	"github.com/edujournal/journal_backend/internal/core/services"
	"github.com/edujournal/journal_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository (based on JournalService usage) ---
type MockJournalRepository struct {
	mock.Mock
	SaveJournalFn                     func(ctx context.Context, journal domain.Journal, taggedStudentIDs []string) (*domain.Journal, error)
	FindJournalByIDFn                 func(ctx context.Context, journalID string) (*domain.Journal, error)
	FindAllJournalsFn                 func(ctx context.Context) ([]domain.Journal, error)
	UpdateJournalFn                   func(ctx context.Context, journalID string, upd portsrepo.JournalUpdate) (*domain.Journal, error)
	DeleteJournalFn                   func(ctx context.Context, journalID string) error
	SetPublishAtFn                    func(ctx context.Context, journalID string, publishAt time.Time) (*domain.Journal, error)
	FindJournalsByTeacherFn           func(ctx context.Context, teacherID string) ([]domain.Journal, error)
	FindPublishedJournalsForStudentFn func(ctx context.Context, studentID string) ([]domain.Journal, error)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, taggedStudentIDs []string) (*domain.Journal, error) {
	if m.SaveJournalFn != nil {
		return m.SaveJournalFn(ctx, journal, taggedStudentIDs)
	}
	args := m.Called(ctx, journal, taggedStudentIDs)
	var j *domain.Journal
	if args.Get(0) != nil {
		j = args.Get(0).(*domain.Journal)
	}
	return j, args.Error(1)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	if m.FindJournalByIDFn != nil {
		return m.FindJournalByIDFn(ctx, journalID)
	}
	args := m.Called(ctx, journalID)
	var j *domain.Journal
	if args.Get(0) != nil {
		j = args.Get(0).(*domain.Journal)
	}
	return j, args.Error(1)
}

func (m *MockJournalRepository) FindAllJournals(ctx context.Context) ([]domain.Journal, error) {
	if m.FindAllJournalsFn != nil {
		return m.FindAllJournalsFn(ctx)
	}
	args := m.Called(ctx)
	var journals []domain.Journal
	if args.Get(0) != nil {
		journals = args.Get(0).([]domain.Journal)
	}
	return journals, args.Error(1)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journalID string, upd portsrepo.JournalUpdate) (*domain.Journal, error) {
	if m.UpdateJournalFn != nil {
		return m.UpdateJournalFn(ctx, journalID, upd)
	}
	args := m.Called(ctx, journalID, upd)
	var j *domain.Journal
	if args.Get(0) != nil {
		j = args.Get(0).(*domain.Journal)
	}
	return j, args.Error(1)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	if m.DeleteJournalFn != nil {
		return m.DeleteJournalFn(ctx, journalID)
	}
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

func (m *MockJournalRepository) SetPublishAt(ctx context.Context, journalID string, publishAt time.Time) (*domain.Journal, error) {
	if m.SetPublishAtFn != nil {
		return m.SetPublishAtFn(ctx, journalID, publishAt)
	}
	args := m.Called(ctx, journalID, publishAt)
	var j *domain.Journal
	if args.Get(0) != nil {
		j = args.Get(0).(*domain.Journal)
	}
	return j, args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByTeacher(ctx context.Context, teacherID string) ([]domain.Journal, error) {
	if m.FindJournalsByTeacherFn != nil {
		return m.FindJournalsByTeacherFn(ctx, teacherID)
	}
	args := m.Called(ctx, teacherID)
	var journals []domain.Journal
	if args.Get(0) != nil {
		journals = args.Get(0).([]domain.Journal)
	}
	return journals, args.Error(1)
}

func (m *MockJournalRepository) FindPublishedJournalsForStudent(ctx context.Context, studentID string) ([]domain.Journal, error) {
	if m.FindPublishedJournalsForStudentFn != nil {
		return m.FindPublishedJournalsForStudentFn(ctx, studentID)
	}
	args := m.Called(ctx, studentID)
	var journals []domain.Journal
	if args.Get(0) != nil {
		journals = args.Get(0).([]domain.Journal)
	}
	return journals, args.Error(1)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockUserRepo)
}

// --- CreateJournal Tests ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	teacherID := uuid.NewString()
	req := dto.CreateJournalRequest{
		Title:            "Sports Day",
		Content:          "Photos from sports day.",
		Media:            []string{"https://cdn.test/sports.jpg"},
		MediaType:        "IMAGE",
		TaggedStudentIDs: []string{"s1", "s2"},
	}

	suite.mockJournalRepo.On("SaveJournal", ctx, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Title == req.Title && j.TeacherID == teacherID && j.MediaType == domain.MediaImage && j.PublishAt == nil
	}), []string{"s1", "s2"}).Return(&domain.Journal{JournalID: "j1", Title: req.Title}, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, teacherID, req)

	suite.Require().NoError(err)
	suite.Equal("j1", journal.JournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_JSONTaggedStudents() {
	// Some clients send the tag list as one JSON-encoded array string.
	ctx := context.Background()
	teacherID := uuid.NewString()
	req := dto.CreateJournalRequest{
		Title:            "Field Trip",
		Content:          "Museum visit.",
		TaggedStudentIDs: []string{`["s1","s2","s3"]`},
	}

	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), []string{"s1", "s2", "s3"}).
		Return(&domain.Journal{JournalID: "j2"}, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, teacherID, req)

	suite.Require().NoError(err)
	suite.Equal("j2", journal.JournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_MalformedJSONTags() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Title:            "Broken",
		Content:          "x",
		TaggedStudentIDs: []string{`["s1",`},
	}

	journal, err := suite.service.CreateJournal(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnknownMediaType() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Title:     "Bad media",
		Content:   "x",
		MediaType: "HOLOGRAM",
	}

	journal, err := suite.service.CreateJournal(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateJournal Tests ---

func (suite *JournalServiceTestSuite) TestUpdateJournal_OmittedTagsLeaveSetUnchanged() {
	ctx := context.Background()
	journalID := uuid.NewString()
	req := dto.UpdateJournalRequest{Title: "New Title", Content: "New content."}

	suite.mockJournalRepo.On("UpdateJournal", ctx, journalID, mock.MatchedBy(func(upd portsrepo.JournalUpdate) bool {
		return upd.Title == "New Title" && upd.TaggedStudentIDs == nil && upd.Media == nil && upd.MediaType == nil
	})).Return(&domain.Journal{JournalID: journalID}, nil).Once()

	journal, err := suite.service.UpdateJournal(ctx, journalID, req)

	suite.Require().NoError(err)
	suite.Equal(journalID, journal.JournalID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_EmptyTagListClears() {
	ctx := context.Background()
	journalID := uuid.NewString()
	empty := []string{}
	req := dto.UpdateJournalRequest{Title: "T", Content: "C", TaggedStudentIDs: &empty}

	suite.mockJournalRepo.On("UpdateJournal", ctx, journalID, mock.MatchedBy(func(upd portsrepo.JournalUpdate) bool {
		return upd.TaggedStudentIDs != nil && len(*upd.TaggedStudentIDs) == 0
	})).Return(&domain.Journal{JournalID: journalID}, nil).Once()

	_, err := suite.service.UpdateJournal(ctx, journalID, req)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_UnknownMediaType() {
	ctx := context.Background()
	bad := "SCROLL"
	req := dto.UpdateJournalRequest{Title: "T", Content: "C", MediaType: &bad}

	journal, err := suite.service.UpdateJournal(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateJournal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateJournal_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()
	req := dto.UpdateJournalRequest{Title: "T", Content: "C"}

	suite.mockJournalRepo.On("UpdateJournal", ctx, journalID, mock.AnythingOfType("repositories.JournalUpdate")).
		Return(nil, apperrors.ErrNotFound).Once()

	journal, err := suite.service.UpdateJournal(ctx, journalID, req)

	suite.Require().Error(err)
	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- PublishJournal Tests ---

func (suite *JournalServiceTestSuite) TestPublishJournal_StrictISOAccepted() {
	ctx := context.Background()
	journalID := uuid.NewString()
	raw := "2026-09-01T08:30:00.000Z"
	expected, err := time.Parse("2006-01-02T15:04:05.000Z", raw)
	suite.Require().NoError(err)

	suite.mockJournalRepo.On("SetPublishAt", ctx, journalID, expected).
		Return(&domain.Journal{JournalID: journalID, PublishAt: &expected}, nil).Once()

	journal, err := suite.service.PublishJournal(ctx, journalID, raw)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal.PublishAt)
	suite.True(journal.PublishAt.Equal(expected))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPublishJournal_EmptyDefaultsToNow() {
	ctx := context.Background()
	journalID := uuid.NewString()
	before := time.Now()

	suite.mockJournalRepo.On("SetPublishAt", ctx, journalID, mock.MatchedBy(func(when time.Time) bool {
		return !when.Before(before) && !when.After(time.Now())
	})).Return(&domain.Journal{JournalID: journalID}, nil).Once()

	_, err := suite.service.PublishJournal(ctx, journalID, "")

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPublishJournal_RejectsLooseFormats() {
	ctx := context.Background()
	journalID := uuid.NewString()

	badInputs := []string{
		"2026-09-01",                    // date only
		"2026-09-01T08:30:00Z",         // missing milliseconds
		"2026-09-01T08:30:00.000+0000", // wrong zone designator
		"01/09/2026 08:30",             // not ISO at all
		"2026-13-01T08:30:00.000Z",     // impossible month
	}
	for _, raw := range badInputs {
		journal, err := suite.service.PublishJournal(ctx, journalID, raw)
		suite.Require().Error(err, "input %q should be rejected", raw)
		suite.Nil(journal)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SetPublishAt", mock.Anything, mock.Anything, mock.Anything)
}

// --- Feed Tests ---

func (suite *JournalServiceTestSuite) TestFeedForUser_Teacher() {
	ctx := context.Background()
	userID := uuid.NewString()
	teacher := &domain.User{UserID: userID, Role: domain.RoleTeacher}
	expected := []domain.Journal{{JournalID: "j1"}, {JournalID: "j2"}}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(teacher, nil).Once()
	suite.mockJournalRepo.On("FindJournalsByTeacher", ctx, userID).Return(expected, nil).Once()

	journals, err := suite.service.FeedForUser(ctx, userID)

	suite.Require().NoError(err)
	suite.Len(journals, 2)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindPublishedJournalsForStudent", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestFeedForUser_Student() {
	ctx := context.Background()
	userID := uuid.NewString()
	student := &domain.User{UserID: userID, Role: domain.RoleStudent}
	expected := []domain.Journal{{JournalID: "j3"}}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(student, nil).Once()
	suite.mockJournalRepo.On("FindPublishedJournalsForStudent", ctx, userID).Return(expected, nil).Once()

	journals, err := suite.service.FeedForUser(ctx, userID)

	suite.Require().NoError(err)
	suite.Len(journals, 1)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalsByTeacher", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestFeedForUser_UnknownUser() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	journals, err := suite.service.FeedForUser(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(journals)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestFeedForUser_AdminHasNoFeed() {
	ctx := context.Background()
	userID := uuid.NewString()
	admin := &domain.User{UserID: userID, Role: domain.RoleAdmin}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(admin, nil).Once()

	journals, err := suite.service.FeedForUser(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(journals)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- DeleteJournal Tests ---

func (suite *JournalServiceTestSuite) TestDeleteJournal_NotFound() {
	ctx := context.Background()
	journalID := uuid.NewString()

	suite.mockJournalRepo.On("DeleteJournal", ctx, journalID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteJournal(ctx, journalID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
