package admin

import (
	"context"
	"errors"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
)

// LabInfoResource manages the lab's general information. Create and delete
// are disabled so the table keeps exactly the row the seeder made.
type LabInfoResource struct {
	repo *repositories.LabInfoRepository
}

var _ Resource = (*LabInfoResource)(nil)

// NewLabInfoResource creates the lab info admin resource
func NewLabInfoResource(repo *repositories.LabInfoRepository) *LabInfoResource {
	return &LabInfoResource{repo: repo}
}

func (r *LabInfoResource) Meta() Meta {
	return Meta{
		Name:  "lab-info",
		Label: "Lab Info",
		Columns: []Column{
			{"lab_name", "Name"},
			{"lab_full_name", "Full Name"},
			{"lab_email", "Email"},
		},
		DisableCreate: true,
		DisableDelete: true,
	}
}

func (r *LabInfoResource) List(ctx context.Context, _ ListQuery) ([]Row, error) {
	infos, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, Row{
			ID: info.ID,
			Cells: map[string]interface{}{
				"lab_name":      info.LabName,
				"lab_full_name": info.LabFullName,
				"lab_email":     info.LabEmail,
			},
		})
	}
	return rows, nil
}

func (r *LabInfoResource) Get(ctx context.Context, id int64) (interface{}, error) {
	info, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (r *LabInfoResource) get(ctx context.Context, id int64) (*models.LabInfo, error) {
	info, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrLabInfoNotFound
		}
		return nil, err
	}
	return info, nil
}

func (r *LabInfoResource) Create(_ context.Context, _ Form) (int64, error) {
	return 0, apperrors.ErrCreateDisabled
}

func (r *LabInfoResource) Update(ctx context.Context, id int64, form Form) error {
	info, err := r.get(ctx, id)
	if err != nil {
		return err
	}

	if form.Value("lab_name") == "" {
		return apperrors.NewValidationError("lab_name is required")
	}

	info.LabName = form.Value("lab_name")
	info.LabFullName = form.Value("lab_full_name")
	info.Mission = form.Value("mission")
	info.ResearchAreas = form.Value("research_areas")
	info.LabEmail = form.Value("lab_email")
	info.LabAddress = form.Value("lab_address")
	info.LabPhone = form.Value("lab_phone")

	return r.repo.Update(ctx, info)
}

func (r *LabInfoResource) Delete(_ context.Context, _ int64) error {
	return apperrors.ErrDeleteDisabled
}
