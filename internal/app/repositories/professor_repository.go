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

// ErrProfessorNotFound is returned when a professor record is not found.
var ErrProfessorNotFound = ErrNotFound

var professorColumns = []string{
	"id", "name", "title", "bio", "education", "experience", "photo",
	"email", "office", "office_hours", "phone",
	"google_scholar", "linkedin", "website", "orcid",
}

// ProfessorRepository handles professor database operations
type ProfessorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProfessor(row pgx.Row) (*models.Professor, error) {
	p := &models.Professor{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Title, &p.Bio, &p.Education, &p.Experience, &p.Photo,
		&p.Email, &p.Office, &p.OfficeHours, &p.Phone,
		&p.GoogleScholar, &p.LinkedIn, &p.Website, &p.ORCID,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new professor record
func (r *ProfessorRepository) Create(ctx context.Context, p *models.Professor) (int64, error) {
	sql, args, err := r.sb.Insert("professors").
		Columns(professorColumns[1:]...).
		Values(p.Name, p.Title, p.Bio, p.Education, p.Experience, p.Photo,
			p.Email, p.Office, p.OfficeHours, p.Phone,
			p.GoogleScholar, p.LinkedIn, p.Website, p.ORCID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create professor query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create professor query")
		return 0, fmt.Errorf("error creating professor: %w", err)
	}

	return id, nil
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	sql, args, err := r.sb.Select(professorColumns...).
		From("professors").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get professor query: %w", err)
	}

	p, err := scanProfessor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessorNotFound
		}
		logger.Error().Err(err).Int64("professorID", id).Msg("Error scanning professor row")
		return nil, fmt.Errorf("error getting professor by ID: %w", err)
	}

	return p, nil
}

// First retrieves the first professor record, or ErrProfessorNotFound when none exists.
// The public site treats the table as a singleton and shows the first row.
func (r *ProfessorRepository) First(ctx context.Context) (*models.Professor, error) {
	sql, args, err := r.sb.Select(professorColumns...).
		From("professors").
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build first professor query: %w", err)
	}

	p, err := scanProfessor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessorNotFound
		}
		logger.Error().Err(err).Msg("Error scanning professor row")
		return nil, fmt.Errorf("error getting first professor: %w", err)
	}

	return p, nil
}

// GetAll retrieves all professor records
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*models.Professor, error) {
	sql, args, err := r.sb.Select(professorColumns...).
		From("professors").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get all professors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all professors query")
		return nil, fmt.Errorf("error querying professors: %w", err)
	}
	defer rows.Close()

	professors := []*models.Professor{}
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning professor row: %w", err)
		}
		professors = append(professors, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating professor rows: %w", err)
	}

	return professors, nil
}

// Update updates an existing professor record
func (r *ProfessorRepository) Update(ctx context.Context, p *models.Professor) error {
	sql, args, err := r.sb.Update("professors").
		SetMap(map[string]interface{}{
			"name":           p.Name,
			"title":          p.Title,
			"bio":            p.Bio,
			"education":      p.Education,
			"experience":     p.Experience,
			"photo":          p.Photo,
			"email":          p.Email,
			"office":         p.Office,
			"office_hours":   p.OfficeHours,
			"phone":          p.Phone,
			"google_scholar": p.GoogleScholar,
			"linkedin":       p.LinkedIn,
			"website":        p.Website,
			"orcid":          p.ORCID,
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update professor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("professorID", p.ID).Msg("Error executing update professor query")
		return fmt.Errorf("error updating professor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProfessorNotFound
	}

	return nil
}

// Delete deletes a professor by ID
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("professors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete professor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("professorID", id).Msg("Error executing delete professor query")
		return fmt.Errorf("error deleting professor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProfessorNotFound
	}

	return nil
}
