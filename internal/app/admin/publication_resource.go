package admin

import (
	"context"
	"errors"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/app/services"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
)

// PublicationResource manages publications. Saving re-runs BibTeX
// extraction, so the derived fields track the raw citation text.
type PublicationResource struct {
	repo *repositories.PublicationRepository
}

var _ Resource = (*PublicationResource)(nil)

// NewPublicationResource creates the publication admin resource
func NewPublicationResource(repo *repositories.PublicationRepository) *PublicationResource {
	return &PublicationResource{repo: repo}
}

func (r *PublicationResource) Meta() Meta {
	return Meta{
		Name:  "publications",
		Label: "Publications",
		Columns: []Column{
			{"title", "Title"},
			{"authors", "Authors"},
			{"venue", "Venue"},
			{"year", "Year"},
			{"citations", "Citations"},
			{"is_featured", "Featured"},
		},
		Searchable: true,
		Filters: []Filter{
			{Name: "year", Label: "Year"},
			{Name: "is_featured", Label: "Featured", Choices: []string{"true", "false"}},
		},
	}
}

func (r *PublicationResource) List(ctx context.Context, query ListQuery) ([]Row, error) {
	year, err := intFilter(query, "year")
	if err != nil {
		return nil, err
	}
	isFeatured, err := boolFilter(query, "is_featured")
	if err != nil {
		return nil, err
	}

	publications, err := r.repo.List(ctx, repositories.PublicationListFilter{
		Search:     query.Search,
		Year:       year,
		IsFeatured: isFeatured,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(publications))
	for _, p := range publications {
		var yearCell interface{}
		if p.Year != nil {
			yearCell = *p.Year
		}
		rows = append(rows, Row{
			ID: p.ID,
			Cells: map[string]interface{}{
				"title":       p.Title,
				"authors":     p.Authors,
				"venue":       p.Venue,
				"year":        yearCell,
				"citations":   p.Citations,
				"is_featured": p.IsFeatured,
			},
		})
	}
	return rows, nil
}

func (r *PublicationResource) Get(ctx context.Context, id int64) (interface{}, error) {
	publication, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return publication, nil
}

func (r *PublicationResource) get(ctx context.Context, id int64) (*models.Publication, error) {
	publication, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPublicationNotFound
		}
		return nil, err
	}
	return publication, nil
}

// applyForm copies the form onto the record and refreshes the fields
// derived from BibTeX. A citation that fails to parse is kept as-is.
func (r *PublicationResource) applyForm(p *models.Publication, form Form) error {
	if form.Value("bibtex") == "" {
		return apperrors.NewValidationError("bibtex is required")
	}

	year, err := form.IntPtr("year")
	if err != nil {
		return apperrors.NewValidationError("year must be a number")
	}
	citations, err := form.Int("citations")
	if err != nil {
		return apperrors.NewValidationError("citations must be a number")
	}

	p.BibTeX = form.Value("bibtex")
	p.Title = form.Value("title")
	p.Authors = form.Value("authors")
	p.Venue = form.Value("venue")
	p.Year = year
	p.URL = form.Value("url")
	p.GoogleScholarURL = form.Value("google_scholar_url")
	p.Citations = citations
	p.IsFeatured = form.Bool("is_featured")

	services.ApplyBibTeX(p)
	return nil
}

func (r *PublicationResource) Create(ctx context.Context, form Form) (int64, error) {
	publication := &models.Publication{}
	if err := r.applyForm(publication, form); err != nil {
		return 0, err
	}
	return r.repo.Create(ctx, publication)
}

func (r *PublicationResource) Update(ctx context.Context, id int64, form Form) error {
	publication, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.applyForm(publication, form); err != nil {
		return err
	}
	return r.repo.Update(ctx, publication)
}

func (r *PublicationResource) Delete(ctx context.Context, id int64) error {
	if _, err := r.get(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, id)
}
