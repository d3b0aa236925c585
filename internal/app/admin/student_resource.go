package admin

import (
	"context"
	"errors"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/filestorage"
)

// StudentResource manages current and former lab members
type StudentResource struct {
	repo  *repositories.StudentRepository
	store filestorage.ImageStore
	photo filestorage.ImageFieldConfig
}

var _ Resource = (*StudentResource)(nil)

// NewStudentResource creates the student admin resource
func NewStudentResource(repo *repositories.StudentRepository, store filestorage.ImageStore) *StudentResource {
	return &StudentResource{
		repo:  repo,
		store: store,
		photo: StudentPhotoConfig(),
	}
}

func (r *StudentResource) Meta() Meta {
	return Meta{
		Name:  "students",
		Label: "Students",
		Columns: []Column{
			{"photo", "Photo"},
			{"name", "Name"},
			{"degree_type", "Degree"},
			{"school", "School"},
			{"is_current", "Current"},
		},
		Searchable: true,
		Filters: []Filter{
			{Name: "degree_type", Label: "Degree", Choices: models.DegreeTypes()},
			{Name: "is_current", Label: "Current", Choices: []string{"true", "false"}},
			{Name: "school", Label: "School"},
		},
		Choices: map[string][]string{
			"degree_type": models.DegreeTypes(),
		},
		UploadFields: []string{"photo"},
	}
}

func (r *StudentResource) List(ctx context.Context, query ListQuery) ([]Row, error) {
	isCurrent, err := boolFilter(query, "is_current")
	if err != nil {
		return nil, err
	}

	students, err := r.repo.List(ctx, repositories.StudentListFilter{
		Search:     query.Search,
		DegreeType: stringFilter(query, "degree_type"),
		IsCurrent:  isCurrent,
		School:     stringFilter(query, "school"),
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(students))
	for _, s := range students {
		rows = append(rows, Row{
			ID: s.ID,
			Cells: map[string]interface{}{
				"photo":       r.store.ThumbnailURL(r.photo, s.Photo),
				"name":        s.Name,
				"degree_type": string(s.DegreeType),
				"school":      s.School,
				"is_current":  s.IsCurrent,
			},
		})
	}
	return rows, nil
}

func (r *StudentResource) Get(ctx context.Context, id int64) (interface{}, error) {
	student, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func (r *StudentResource) get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (r *StudentResource) applyForm(s *models.Student, form Form) error {
	if form.Value("name") == "" {
		return apperrors.NewValidationError("name is required")
	}
	degree := form.Value("degree_type")
	if !oneOf(degree, models.DegreeTypes()) {
		return apperrors.NewValidationError("degree_type must be one of: PhD, Masters")
	}

	s.Name = form.Value("name")
	s.DegreeType = models.DegreeType(degree)
	s.ResearchFocus = form.Value("research_focus")
	s.School = form.Value("school")
	s.StartDate = form.Value("start_date")
	s.EndDate = form.Value("end_date")
	s.IsCurrent = form.Bool("is_current")
	s.ThesisTitle = form.Value("thesis_title")
	s.CurrentWork = form.Value("current_work")
	s.LinkedIn = form.Value("linkedin")
	s.Website = form.Value("website")
	s.GoogleScholar = form.Value("google_scholar")
	s.Email = form.Value("email")
	return nil
}

func (r *StudentResource) Create(ctx context.Context, form Form) (int64, error) {
	student := &models.Student{}
	if err := r.applyForm(student, form); err != nil {
		return 0, err
	}

	if file, ok := form.File("photo"); ok {
		filename, err := r.store.StoreUpload(r.photo, file)
		if err != nil {
			return 0, err
		}
		student.Photo = filename
	}

	id, err := r.repo.Create(ctx, student)
	if err != nil {
		discardImages(r.store, r.photo, student.Photo)
		return 0, err
	}
	return id, nil
}

func (r *StudentResource) Update(ctx context.Context, id int64, form Form) error {
	student, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.applyForm(student, form); err != nil {
		return err
	}

	var uploaded, replaced string
	if file, ok := form.File("photo"); ok {
		filename, err := r.store.StoreUpload(r.photo, file)
		if err != nil {
			return err
		}
		uploaded = filename
		replaced = student.Photo
		student.Photo = filename
	}

	if err := r.repo.Update(ctx, student); err != nil {
		discardImages(r.store, r.photo, uploaded)
		return err
	}

	discardImages(r.store, r.photo, replaced)
	return nil
}

func (r *StudentResource) Delete(ctx context.Context, id int64) error {
	student, err := r.get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	discardImages(r.store, r.photo, student.Photo)
	return nil
}
