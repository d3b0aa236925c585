package admin

import (
	"context"
	"errors"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/filestorage"
)

// projectImageField maps one of the four upload slots onto the model
type projectImageField struct {
	name string
	get  func(*models.Project) string
	set  func(*models.Project, string)
}

var projectImageFields = []projectImageField{
	{"image1", func(p *models.Project) string { return p.Image1 }, func(p *models.Project, v string) { p.Image1 = v }},
	{"image2", func(p *models.Project) string { return p.Image2 }, func(p *models.Project, v string) { p.Image2 = v }},
	{"image3", func(p *models.Project) string { return p.Image3 }, func(p *models.Project, v string) { p.Image3 = v }},
	{"image4", func(p *models.Project) string { return p.Image4 }, func(p *models.Project, v string) { p.Image4 = v }},
}

// ProjectResource manages research projects and their member lists
type ProjectResource struct {
	repo     *repositories.ProjectRepository
	students *repositories.StudentRepository
	store    filestorage.ImageStore
	images   filestorage.ImageFieldConfig
}

var _ Resource = (*ProjectResource)(nil)

// NewProjectResource creates the project admin resource
func NewProjectResource(repo *repositories.ProjectRepository, students *repositories.StudentRepository, store filestorage.ImageStore) *ProjectResource {
	return &ProjectResource{
		repo:     repo,
		students: students,
		store:    store,
		images:   ProjectImageConfig(),
	}
}

func (r *ProjectResource) Meta() Meta {
	return Meta{
		Name:  "projects",
		Label: "Projects",
		Columns: []Column{
			{"image", "Image"},
			{"title", "Title"},
			{"topic", "Topic"},
			{"status", "Status"},
			{"start_date", "Started"},
		},
		Searchable: true,
		Filters: []Filter{
			{Name: "status", Label: "Status", Choices: models.ProjectStatuses()},
			{Name: "topic", Label: "Topic"},
		},
		Choices: map[string][]string{
			"status": models.ProjectStatuses(),
		},
		UploadFields: []string{"image1", "image2", "image3", "image4"},
	}
}

func (r *ProjectResource) List(ctx context.Context, query ListQuery) ([]Row, error) {
	projects, err := r.repo.List(ctx, repositories.ProjectListFilter{
		Search: query.Search,
		Status: stringFilter(query, "status"),
		Topic:  stringFilter(query, "topic"),
	})
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, Row{
			ID: p.ID,
			Cells: map[string]interface{}{
				"image":      r.store.ThumbnailURL(r.images, p.Image1),
				"title":      p.Title,
				"topic":      p.Topic,
				"status":     string(p.Status),
				"start_date": p.StartDate,
			},
		})
	}
	return rows, nil
}

func (r *ProjectResource) Get(ctx context.Context, id int64) (interface{}, error) {
	project, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectResource) get(ctx context.Context, id int64) (*models.Project, error) {
	project, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (r *ProjectResource) applyForm(p *models.Project, form Form) error {
	if form.Value("title") == "" {
		return apperrors.NewValidationError("title is required")
	}
	status := form.Value("status")
	if !oneOf(status, models.ProjectStatuses()) {
		return apperrors.NewValidationError("status must be one of: Ongoing, Completed")
	}

	p.Title = form.Value("title")
	p.Topic = form.Value("topic")
	p.Overview = form.Value("overview")
	p.Status = models.ProjectStatus(status)
	p.StartDate = form.Value("start_date")
	p.EndDate = form.Value("end_date")
	return nil
}

// memberIDs reads and validates the submitted member list
func (r *ProjectResource) memberIDs(ctx context.Context, form Form) ([]int64, error) {
	ids, err := form.Int64Slice("member_ids")
	if err != nil {
		return nil, apperrors.NewValidationError("member_ids must be numeric")
	}
	if len(ids) == 0 {
		return ids, nil
	}

	found, err := r.students.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, apperrors.NewValidationError("member_ids contains an unknown student")
	}
	return ids, nil
}

// storeUploads persists every submitted image slot onto the record, and
// returns the stored filenames plus the ones they replaced.
func (r *ProjectResource) storeUploads(p *models.Project, form Form) (uploaded, replaced []string, err error) {
	for _, field := range projectImageFields {
		file, ok := form.File(field.name)
		if !ok {
			continue
		}

		filename, err := r.store.StoreUpload(r.images, file)
		if err != nil {
			// Drop what this form already stored before failing
			discardImages(r.store, r.images, uploaded...)
			return nil, nil, err
		}
		uploaded = append(uploaded, filename)
		if old := field.get(p); old != "" {
			replaced = append(replaced, old)
		}
		field.set(p, filename)
	}
	return uploaded, replaced, nil
}

func (r *ProjectResource) Create(ctx context.Context, form Form) (int64, error) {
	project := &models.Project{}
	if err := r.applyForm(project, form); err != nil {
		return 0, err
	}

	memberIDs, err := r.memberIDs(ctx, form)
	if err != nil {
		return 0, err
	}

	uploaded, _, err := r.storeUploads(project, form)
	if err != nil {
		return 0, err
	}

	id, err := r.repo.Create(ctx, project, memberIDs)
	if err != nil {
		discardImages(r.store, r.images, uploaded...)
		return 0, err
	}
	return id, nil
}

func (r *ProjectResource) Update(ctx context.Context, id int64, form Form) error {
	project, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.applyForm(project, form); err != nil {
		return err
	}

	memberIDs, err := r.memberIDs(ctx, form)
	if err != nil {
		return err
	}

	uploaded, replaced, err := r.storeUploads(project, form)
	if err != nil {
		return err
	}

	if err := r.repo.Update(ctx, project, memberIDs); err != nil {
		discardImages(r.store, r.images, uploaded...)
		return err
	}

	discardImages(r.store, r.images, replaced...)
	return nil
}

func (r *ProjectResource) Delete(ctx context.Context, id int64) error {
	project, err := r.get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	discardImages(r.store, r.images, project.Image1, project.Image2, project.Image3, project.Image4)
	return nil
}
