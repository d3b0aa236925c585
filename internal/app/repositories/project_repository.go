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

// ErrProjectNotFound is returned when a project record is not found.
var ErrProjectNotFound = ErrNotFound

var projectColumns = []string{
	"id", "title", "topic", "overview", "status",
	"start_date", "end_date",
	"image1", "image2", "image3", "image4", "created_at",
}

// ProjectListFilter narrows the admin list query. Nil fields are ignored.
type ProjectListFilter struct {
	Search string // matches title or overview
	Status *string
	Topic  *string
}

// ProjectRepository handles project database operations, including the
// project_members junction table.
type ProjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanProject(row pgx.Row) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Topic, &p.Overview, &p.Status,
		&p.StartDate, &p.EndDate,
		&p.Image1, &p.Image2, &p.Image3, &p.Image4, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) queryProjects(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Project, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build project query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing project query")
		return nil, fmt.Errorf("error querying projects: %w", err)
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning project row: %w", err)
		}
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Create inserts a new project and its member links
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project, memberIDs []int64) (int64, error) {
	sql, args, err := r.sb.Insert("projects").
		Columns("title", "topic", "overview", "status",
			"start_date", "end_date",
			"image1", "image2", "image3", "image4").
		Values(p.Title, p.Topic, p.Overview, p.Status,
			p.StartDate, p.EndDate,
			p.Image1, p.Image2, p.Image3, p.Image4).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create project query: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create project query")
		return 0, fmt.Errorf("error creating project: %w", err)
	}

	if err := r.replaceMembers(ctx, tx, id, memberIDs); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// replaceMembers rewrites the member set of a project inside a transaction
func (r *ProjectRepository) replaceMembers(ctx context.Context, tx pgx.Tx, projectID int64, memberIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("error clearing project members: %w", err)
	}

	for _, studentID := range memberIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO project_members (project_id, student_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			projectID, studentID)
		if err != nil {
			return fmt.Errorf("error adding project member %d: %w", studentID, err)
		}
	}

	return nil
}

// GetByID retrieves a project by ID, including its members
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	sql, args, err := r.sb.Select(projectColumns...).
		From("projects").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get project query: %w", err)
	}

	p, err := scanProject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		logger.Error().Err(err).Int64("projectID", id).Msg("Error scanning project row")
		return nil, fmt.Errorf("error getting project by ID: %w", err)
	}

	members, err := r.getMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Members = members

	return p, nil
}

func (r *ProjectRepository) getMembers(ctx context.Context, projectID int64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.name", "s.degree_type", "s.research_focus", "s.school",
		"s.start_date", "s.end_date", "s.photo", "s.is_current",
		"s.thesis_title", "s.current_work",
		"s.linkedin", "s.website", "s.google_scholar", "s.email", "s.created_at").
		From("students s").
		Join("project_members pm ON pm.student_id = s.id").
		Where(squirrel.Eq{"pm.project_id": projectID}).
		OrderBy("s.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build project members query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", projectID).Msg("Error querying project members")
		return nil, fmt.Errorf("error querying project members: %w", err)
	}
	defer rows.Close()

	members := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning project member row: %w", err)
		}
		members = append(members, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project member rows: %w", err)
	}

	return members, nil
}

// GetAll retrieves all projects, newest first
func (r *ProjectRepository) GetAll(ctx context.Context) ([]*models.Project, error) {
	return r.queryProjects(ctx, r.sb.Select(projectColumns...).
		From("projects").
		OrderBy("created_at DESC"))
}

// List retrieves projects matching the admin list filter
func (r *ProjectRepository) List(ctx context.Context, filter ProjectListFilter) ([]*models.Project, error) {
	builder := r.sb.Select(projectColumns...).
		From("projects").
		OrderBy("created_at DESC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"overview": pattern},
		})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Topic != nil {
		builder = builder.Where(squirrel.Eq{"topic": *filter.Topic})
	}

	return r.queryProjects(ctx, builder)
}

// Update updates an existing project and rewrites its member links
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project, memberIDs []int64) error {
	sql, args, err := r.sb.Update("projects").
		SetMap(map[string]interface{}{
			"title":      p.Title,
			"topic":      p.Topic,
			"overview":   p.Overview,
			"status":     p.Status,
			"start_date": p.StartDate,
			"end_date":   p.EndDate,
			"image1":     p.Image1,
			"image2":     p.Image2,
			"image3":     p.Image3,
			"image4":     p.Image4,
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update project query: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", p.ID).Msg("Error executing update project query")
		return fmt.Errorf("error updating project: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	if err := r.replaceMembers(ctx, tx, p.ID, memberIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete deletes a project by ID. Member links cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("projects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete project query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("projectID", id).Msg("Error executing delete project query")
		return fmt.Errorf("error deleting project: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return nil
}

// Count returns the total number of projects
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting projects: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of projects with the given status
func (r *ProjectRepository) CountByStatus(ctx context.Context, status models.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting projects by status: %w", err)
	}
	return count, nil
}
