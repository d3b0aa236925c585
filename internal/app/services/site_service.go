package services

import (
	"context"
	"errors"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/models/dto"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// featuredPublicationLimit caps how many featured publications the homepage
// shows.
const featuredPublicationLimit = 5

// SiteService assembles the data behind the public pages
type SiteService struct {
	labInfo      *repositories.LabInfoRepository
	professors   *repositories.ProfessorRepository
	students     *repositories.StudentRepository
	projects     *repositories.ProjectRepository
	publications *repositories.PublicationRepository
}

// NewSiteService creates a new SiteService
func NewSiteService(repos *repositories.Repositories) *SiteService {
	return &SiteService{
		labInfo:      repos.LabInfoRepository,
		professors:   repos.ProfessorRepository,
		students:     repos.StudentRepository,
		projects:     repos.ProjectRepository,
		publications: repos.PublicationRepository,
	}
}

// HomePage gathers everything the homepage shows. Missing lab info or
// professor records are tolerated and come back as nil rather than failing
// the whole page.
func (s *SiteService) HomePage(ctx context.Context) (*dto.HomePage, error) {
	page := &dto.HomePage{}

	info, err := s.labInfo.First(ctx)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	page.LabInfo = info

	professor, err := s.professors.First(ctx)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	page.Professor = professor

	students, err := s.students.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	page.Students = PartitionStudents(students)

	projects, err := s.projects.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	page.OngoingProjects, page.CompletedProjects = PartitionProjects(projects)

	page.FeaturedPublications, err = s.publications.GetFeatured(ctx, featuredPublicationLimit)
	if err != nil {
		return nil, err
	}

	return page, nil
}

// ProjectDetail loads a single project with its member students
func (s *SiteService) ProjectDetail(ctx context.Context, id int64) (*dto.ProjectDetail, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Debug().Int64("project_id", id).Msg("Project not found")
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}

	return &dto.ProjectDetail{
		Project:          project,
		AdditionalImages: project.SecondaryImages(),
	}, nil
}

// PartitionStudents splits students into the four homepage groups. Every
// student lands in exactly one group; anything that isn't a PhD record
// counts as Masters.
func PartitionStudents(students []*models.Student) dto.StudentGroups {
	groups := dto.StudentGroups{
		CurrentPhD:     []*models.Student{},
		CurrentMasters: []*models.Student{},
		FormerPhD:      []*models.Student{},
		FormerMasters:  []*models.Student{},
	}

	for _, student := range students {
		isPhD := student.DegreeType == models.DegreePhD
		switch {
		case student.IsCurrent && isPhD:
			groups.CurrentPhD = append(groups.CurrentPhD, student)
		case student.IsCurrent:
			groups.CurrentMasters = append(groups.CurrentMasters, student)
		case isPhD:
			groups.FormerPhD = append(groups.FormerPhD, student)
		default:
			groups.FormerMasters = append(groups.FormerMasters, student)
		}
	}

	return groups
}

// PartitionProjects splits projects into ongoing and completed. Anything
// that isn't marked ongoing counts as completed.
func PartitionProjects(projects []*models.Project) (ongoing, completed []*models.Project) {
	ongoing = []*models.Project{}
	completed = []*models.Project{}
	for _, project := range projects {
		if project.Status == models.ProjectOngoing {
			ongoing = append(ongoing, project)
		} else {
			completed = append(completed, project)
		}
	}
	return ongoing, completed
}
