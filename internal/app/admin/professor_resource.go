package admin

import (
	"context"
	"errors"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/filestorage"
)

// ProfessorResource manages the professor profile
type ProfessorResource struct {
	repo  *repositories.ProfessorRepository
	store filestorage.ImageStore
	photo filestorage.ImageFieldConfig
}

var _ Resource = (*ProfessorResource)(nil)

// NewProfessorResource creates the professor admin resource
func NewProfessorResource(repo *repositories.ProfessorRepository, store filestorage.ImageStore) *ProfessorResource {
	return &ProfessorResource{
		repo:  repo,
		store: store,
		photo: ProfessorPhotoConfig(),
	}
}

func (r *ProfessorResource) Meta() Meta {
	return Meta{
		Name:  "professors",
		Label: "Professor",
		Columns: []Column{
			{"photo", "Photo"},
			{"name", "Name"},
			{"title", "Title"},
			{"email", "Email"},
		},
		UploadFields: []string{"photo"},
	}
}

func (r *ProfessorResource) List(ctx context.Context, _ ListQuery) ([]Row, error) {
	professors, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(professors))
	for _, p := range professors {
		rows = append(rows, Row{
			ID: p.ID,
			Cells: map[string]interface{}{
				"photo": r.store.ThumbnailURL(r.photo, p.Photo),
				"name":  p.Name,
				"title": p.Title,
				"email": p.Email,
			},
		})
	}
	return rows, nil
}

func (r *ProfessorResource) Get(ctx context.Context, id int64) (interface{}, error) {
	professor, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return professor, nil
}

func (r *ProfessorResource) get(ctx context.Context, id int64) (*models.Professor, error) {
	professor, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProfessorNotFound
		}
		return nil, err
	}
	return professor, nil
}

// applyForm copies the submitted scalar fields onto the record
func (r *ProfessorResource) applyForm(p *models.Professor, form Form) error {
	if form.Value("name") == "" {
		return apperrors.NewValidationError("name is required")
	}

	p.Name = form.Value("name")
	p.Title = form.Value("title")
	p.Bio = form.Value("bio")
	p.Education = form.Value("education")
	p.Experience = form.Value("experience")
	p.Email = form.Value("email")
	p.Office = form.Value("office")
	p.OfficeHours = form.Value("office_hours")
	p.Phone = form.Value("phone")
	p.GoogleScholar = form.Value("google_scholar")
	p.LinkedIn = form.Value("linkedin")
	p.Website = form.Value("website")
	p.ORCID = form.Value("orcid")
	return nil
}

func (r *ProfessorResource) Create(ctx context.Context, form Form) (int64, error) {
	professor := &models.Professor{}
	if err := r.applyForm(professor, form); err != nil {
		return 0, err
	}

	if file, ok := form.File("photo"); ok {
		filename, err := r.store.StoreUpload(r.photo, file)
		if err != nil {
			return 0, err
		}
		professor.Photo = filename
	}

	id, err := r.repo.Create(ctx, professor)
	if err != nil {
		discardImages(r.store, r.photo, professor.Photo)
		return 0, err
	}
	return id, nil
}

func (r *ProfessorResource) Update(ctx context.Context, id int64, form Form) error {
	professor, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.applyForm(professor, form); err != nil {
		return err
	}

	var uploaded, replaced string
	if file, ok := form.File("photo"); ok {
		filename, err := r.store.StoreUpload(r.photo, file)
		if err != nil {
			return err
		}
		uploaded = filename
		replaced = professor.Photo
		professor.Photo = filename
	}

	if err := r.repo.Update(ctx, professor); err != nil {
		// A newly stored photo must not outlive a failed save
		discardImages(r.store, r.photo, uploaded)
		return err
	}

	discardImages(r.store, r.photo, replaced)
	return nil
}

func (r *ProfessorResource) Delete(ctx context.Context, id int64) error {
	professor, err := r.get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	discardImages(r.store, r.photo, professor.Photo)
	return nil
}
