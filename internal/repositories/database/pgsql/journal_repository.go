package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edujournal/journal_backend/internal/apperrors"
	"github.com/edujournal/journal_backend/internal/core/domain"
	portsrepo "github.com/edujournal/journal_backend/internal/core/ports/repositories"
	"github.com/edujournal/journal_backend/internal/models"
	"github.com/edujournal/journal_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepository
var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, title, content, media, media_type, teacher_id, publish_at, created_at, updated_at`

func scanJournal(row pgx.Row) (*models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.Title,
		&m.Content,
		&m.Media,
		&m.MediaType,
		&m.TeacherID,
		&m.PublishAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveJournal inserts the journal row and its tag associations in a single
// database transaction. The insert trigger defaults publish_at to created_at.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, taggedStudentIDs []string) (*domain.Journal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (journal_id, title, content, media, media_type, teacher_id, publish_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.Title,
		modelJournal.Content,
		modelJournal.Media,
		modelJournal.MediaType,
		modelJournal.TeacherID,
		modelJournal.PublishAt,
		modelJournal.CreatedAt,
		modelJournal.UpdatedAt,
	)
	if err != nil {
		if translated := translateConstraintError(err); errors.Is(translated, apperrors.ErrValidation) {
			return nil, fmt.Errorf("%w: unknown teacher %s", apperrors.ErrValidation, modelJournal.TeacherID)
		}
		return nil, fmt.Errorf("failed to insert journal %s: %w", modelJournal.JournalID, err)
	}

	if err := insertTags(ctx, tx, modelJournal.JournalID, taggedStudentIDs); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindJournalByID(ctx, modelJournal.JournalID)
}

func insertTags(ctx context.Context, tx pgx.Tx, journalID string, studentIDs []string) error {
	if len(studentIDs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	tagQuery := `
		INSERT INTO journal_tagged_students (journal_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (journal_id, student_id) DO NOTHING;
	`
	for _, studentID := range studentIDs {
		batch.Queue(tagQuery, journalID, studentID)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range studentIDs {
		if _, err := results.Exec(); err != nil {
			if translated := translateConstraintError(err); errors.Is(translated, apperrors.ErrValidation) {
				return fmt.Errorf("%w: tagged student does not exist", apperrors.ErrValidation)
			}
			return fmt.Errorf("failed to tag student on journal %s: %w", journalID, err)
		}
	}
	return nil
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	modelJournal, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	journals, err := r.attachAssociations(ctx, []models.Journal{*modelJournal})
	if err != nil {
		return nil, err
	}
	return &journals[0], nil
}

func (r *PgxJournalRepository) FindAllJournals(ctx context.Context) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ORDER BY created_at DESC;`
	return r.findMany(ctx, query)
}

func (r *PgxJournalRepository) FindJournalsByTeacher(ctx context.Context, teacherID string) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE teacher_id = $1 ORDER BY created_at DESC;`
	return r.findMany(ctx, query, teacherID)
}

// FindPublishedJournalsForStudent applies the visibility window using the
// store's clock, not the application's.
func (r *PgxJournalRepository) FindPublishedJournalsForStudent(ctx context.Context, studentID string) ([]domain.Journal, error) {
	query := `
		SELECT j.journal_id, j.title, j.content, j.media, j.media_type, j.teacher_id, j.publish_at, j.created_at, j.updated_at
		FROM journals j
		JOIN journal_tagged_students ts ON ts.journal_id = j.journal_id
		WHERE ts.student_id = $1
		  AND (j.publish_at IS NULL OR j.publish_at <= now())
		ORDER BY j.created_at DESC;
	`
	return r.findMany(ctx, query, studentID)
}

func (r *PgxJournalRepository) findMany(ctx context.Context, query string, args ...any) ([]domain.Journal, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	modelJournals := []models.Journal{}
	for rows.Next() {
		modelJournal, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		modelJournals = append(modelJournals, *modelJournal)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", rows.Err())
	}

	return r.attachAssociations(ctx, modelJournals)
}

// UpdateJournal applies upd inside one transaction, replacing the tag set
// when one is provided. Nil optional fields leave the stored values alone.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journalID string, upd portsrepo.JournalUpdate) (*domain.Journal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	current, err := scanJournal(tx.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1 FOR UPDATE;`, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock journal %s for update: %w", journalID, err)
	}

	media := current.Media
	if upd.Media != nil {
		media = *upd.Media
	}
	mediaType := current.MediaType
	if upd.MediaType != nil {
		mediaType.String = string(*upd.MediaType)
		mediaType.Valid = *upd.MediaType != ""
	}

	// updated_at is refreshed by the row trigger.
	updateQuery := `
		UPDATE journals
		SET title = $1, content = $2, media = $3, media_type = $4
		WHERE journal_id = $5;
	`
	if _, err := tx.Exec(ctx, updateQuery, upd.Title, upd.Content, media, mediaType, journalID); err != nil {
		return nil, fmt.Errorf("failed to update journal %s: %w", journalID, err)
	}

	if upd.TaggedStudentIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM journal_tagged_students WHERE journal_id = $1;`, journalID); err != nil {
			return nil, fmt.Errorf("failed to clear tags for journal %s: %w", journalID, err)
		}
		if err := insertTags(ctx, tx, journalID, *upd.TaggedStudentIDs); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindJournalByID(ctx, journalID)
}

func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) SetPublishAt(ctx context.Context, journalID string, publishAt time.Time) (*domain.Journal, error) {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE journals SET publish_at = $1 WHERE journal_id = $2;`, publishAt, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to set publish time on journal %s: %w", journalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return r.FindJournalByID(ctx, journalID)
}

// attachAssociations loads teacher and tagged-student projections for the
// given journal rows with one query per association.
func (r *PgxJournalRepository) attachAssociations(ctx context.Context, modelJournals []models.Journal) ([]domain.Journal, error) {
	journals := make([]domain.Journal, len(modelJournals))
	if len(modelJournals) == 0 {
		return journals, nil
	}

	journalIDs := make([]string, len(modelJournals))
	teacherIDs := make([]string, 0, len(modelJournals))
	seenTeachers := map[string]bool{}
	for i, m := range modelJournals {
		journals[i] = mapping.ToDomainJournal(m)
		journalIDs[i] = m.JournalID
		if !seenTeachers[m.TeacherID] {
			seenTeachers[m.TeacherID] = true
			teacherIDs = append(teacherIDs, m.TeacherID)
		}
	}

	teachers, err := r.loadUserSummaries(ctx, teacherIDs)
	if err != nil {
		return nil, err
	}

	tagged, err := r.loadTaggedStudents(ctx, journalIDs)
	if err != nil {
		return nil, err
	}

	for i := range journals {
		if teacher, ok := teachers[journals[i].TeacherID]; ok {
			t := teacher
			journals[i].Teacher = &t
		}
		students := tagged[journals[i].JournalID]
		if students == nil {
			students = []domain.UserSummary{}
		}
		journals[i].TaggedStudents = students
	}
	return journals, nil
}

func (r *PgxJournalRepository) loadUserSummaries(ctx context.Context, userIDs []string) (map[string]domain.UserSummary, error) {
	query := `SELECT user_id, COALESCE(name, ''), email, role FROM users WHERE user_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load user projections: %w", err)
	}
	defer rows.Close()

	summaries := map[string]domain.UserSummary{}
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.UserID, &s.Name, &s.Email, &s.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user projection: %w", err)
		}
		summaries[s.UserID] = s
	}
	return summaries, rows.Err()
}

func (r *PgxJournalRepository) loadTaggedStudents(ctx context.Context, journalIDs []string) (map[string][]domain.UserSummary, error) {
	query := `
		SELECT ts.journal_id, u.user_id, COALESCE(u.name, ''), u.email, u.role
		FROM journal_tagged_students ts
		JOIN users u ON u.user_id = ts.student_id
		WHERE ts.journal_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tagged students: %w", err)
	}
	defer rows.Close()

	tagged := map[string][]domain.UserSummary{}
	for rows.Next() {
		var journalID string
		var s domain.UserSummary
		if err := rows.Scan(&journalID, &s.UserID, &s.Name, &s.Email, &s.Role); err != nil {
			return nil, fmt.Errorf("failed to scan tagged student: %w", err)
		}
		tagged[journalID] = append(tagged[journalID], s)
	}
	return tagged, rows.Err()
}
