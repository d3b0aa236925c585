package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// ErrStudentNotFound is returned when a student record is not found.
var ErrStudentNotFound = ErrNotFound

var studentColumns = []string{
	"id", "name", "degree_type", "research_focus", "school",
	"start_date", "end_date", "photo", "is_current",
	"thesis_title", "current_work",
	"linkedin", "website", "google_scholar", "email", "created_at",
}

// StudentListFilter narrows the admin list query. Nil fields are ignored.
type StudentListFilter struct {
	Search     string // matches name or research focus
	DegreeType *string
	IsCurrent  *bool
	School     *string
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.Name, &s.DegreeType, &s.ResearchFocus, &s.School,
		&s.StartDate, &s.EndDate, &s.Photo, &s.IsCurrent,
		&s.ThesisTitle, &s.CurrentWork,
		&s.LinkedIn, &s.Website, &s.GoogleScholar, &s.Email, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepository) queryStudents(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Student, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing student query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// Create inserts a new student record
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "degree_type", "research_focus", "school",
			"start_date", "end_date", "photo", "is_current",
			"thesis_title", "current_work",
			"linkedin", "website", "google_scholar", "email").
		Values(s.Name, s.DegreeType, s.ResearchFocus, s.School,
			s.StartDate, s.EndDate, s.Photo, s.IsCurrent,
			s.ThesisTitle, s.CurrentWork,
			s.LinkedIn, s.Website, s.GoogleScholar, s.Email).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return s, nil
}

// GetAll retrieves all students ordered by name
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.queryStudents(ctx, r.sb.Select(studentColumns...).
		From("students").
		OrderBy("name ASC"))
}

// List retrieves students matching the admin list filter
func (r *StudentRepository) List(ctx context.Context, filter StudentListFilter) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("name ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"research_focus": pattern},
		})
	}
	if filter.DegreeType != nil {
		builder = builder.Where(squirrel.Eq{"degree_type": *filter.DegreeType})
	}
	if filter.IsCurrent != nil {
		builder = builder.Where(squirrel.Eq{"is_current": *filter.IsCurrent})
	}
	if filter.School != nil {
		builder = builder.Where(squirrel.Eq{"school": *filter.School})
	}

	return r.queryStudents(ctx, builder)
}

// GetByIDs retrieves the students with the given IDs
func (r *StudentRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Student, error) {
	if len(ids) == 0 {
		return []*models.Student{}, nil
	}
	return r.queryStudents(ctx, r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("name ASC"))
}

// Update updates an existing student record
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":           s.Name,
			"degree_type":    s.DegreeType,
			"research_focus": s.ResearchFocus,
			"school":         s.School,
			"start_date":     s.StartDate,
			"end_date":       s.EndDate,
			"photo":          s.Photo,
			"is_current":     s.IsCurrent,
			"thesis_title":   s.ThesisTitle,
			"current_work":   s.CurrentWork,
			"linkedin":       s.LinkedIn,
			"website":        s.Website,
			"google_scholar": s.GoogleScholar,
			"email":          s.Email,
		}).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", s.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID. Project memberships cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// Count returns the total number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountCurrent returns the number of current students
func (r *StudentRepository) CountCurrent(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE is_current`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting current students: %w", err)
	}
	return count, nil
}
