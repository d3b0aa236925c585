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

// ErrPublicationNotFound is returned when a publication record is not found.
var ErrPublicationNotFound = ErrNotFound

var publicationColumns = []string{
	"id", "bibtex", "title", "authors", "venue", "year",
	"url", "google_scholar_url", "citations", "is_featured", "created_at",
}

// PublicationListFilter narrows the admin list query. Nil fields are ignored.
type PublicationListFilter struct {
	Search     string // matches title or authors
	Year       *int
	IsFeatured *bool
}

// PublicationRepository handles publication database operations
type PublicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPublicationRepository creates a new PublicationRepository
func NewPublicationRepository(db *pgxpool.Pool) *PublicationRepository {
	return &PublicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPublication(row pgx.Row) (*models.Publication, error) {
	p := &models.Publication{}
	err := row.Scan(
		&p.ID, &p.BibTeX, &p.Title, &p.Authors, &p.Venue, &p.Year,
		&p.URL, &p.GoogleScholarURL, &p.Citations, &p.IsFeatured, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PublicationRepository) queryPublications(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Publication, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build publication query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing publication query")
		return nil, fmt.Errorf("error querying publications: %w", err)
	}
	defer rows.Close()

	publications := []*models.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning publication row: %w", err)
		}
		publications = append(publications, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating publication rows: %w", err)
	}

	return publications, nil
}

// Create inserts a new publication record
func (r *PublicationRepository) Create(ctx context.Context, p *models.Publication) (int64, error) {
	sql, args, err := r.sb.Insert("publications").
		Columns("bibtex", "title", "authors", "venue", "year",
			"url", "google_scholar_url", "citations", "is_featured").
		Values(p.BibTeX, p.Title, p.Authors, p.Venue, p.Year,
			p.URL, p.GoogleScholarURL, p.Citations, p.IsFeatured).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create publication query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create publication query")
		return 0, fmt.Errorf("error creating publication: %w", err)
	}

	return id, nil
}

// GetByID retrieves a publication by ID
func (r *PublicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	sql, args, err := r.sb.Select(publicationColumns...).
		From("publications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get publication query: %w", err)
	}

	p, err := scanPublication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPublicationNotFound
		}
		logger.Error().Err(err).Int64("publicationID", id).Msg("Error scanning publication row")
		return nil, fmt.Errorf("error getting publication by ID: %w", err)
	}

	return p, nil
}

// List retrieves publications matching the admin list filter
func (r *PublicationRepository) List(ctx context.Context, filter PublicationListFilter) ([]*models.Publication, error) {
	builder := r.sb.Select(publicationColumns...).
		From("publications").
		OrderBy("year DESC NULLS LAST", "created_at DESC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"authors": pattern},
		})
	}
	if filter.Year != nil {
		builder = builder.Where(squirrel.Eq{"year": *filter.Year})
	}
	if filter.IsFeatured != nil {
		builder = builder.Where(squirrel.Eq{"is_featured": *filter.IsFeatured})
	}

	return r.queryPublications(ctx, builder)
}

// GetFeatured retrieves the most recent featured publications by year
func (r *PublicationRepository) GetFeatured(ctx context.Context, limit uint64) ([]*models.Publication, error) {
	return r.queryPublications(ctx, r.sb.Select(publicationColumns...).
		From("publications").
		Where(squirrel.Eq{"is_featured": true}).
		OrderBy("year DESC NULLS LAST").
		Limit(limit))
}

// Update updates an existing publication record
func (r *PublicationRepository) Update(ctx context.Context, p *models.Publication) error {
	sql, args, err := r.sb.Update("publications").
		SetMap(map[string]interface{}{
			"bibtex":             p.BibTeX,
			"title":              p.Title,
			"authors":            p.Authors,
			"venue":              p.Venue,
			"year":               p.Year,
			"url":                p.URL,
			"google_scholar_url": p.GoogleScholarURL,
			"citations":          p.Citations,
			"is_featured":        p.IsFeatured,
		}).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update publication query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("publicationID", p.ID).Msg("Error executing update publication query")
		return fmt.Errorf("error updating publication: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrPublicationNotFound
	}

	return nil
}

// Delete deletes a publication by ID
func (r *PublicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("publications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete publication query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("publicationID", id).Msg("Error executing delete publication query")
		return fmt.Errorf("error deleting publication: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrPublicationNotFound
	}

	return nil
}

// Count returns the total number of publications
func (r *PublicationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM publications`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting publications: %w", err)
	}
	return count, nil
}
