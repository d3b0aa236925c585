package dto

import "github.com/dadl-lab/labsite/internal/app/models"

// StudentGroups partitions students by current/former and degree type.
// Every student record appears in exactly one group.
type StudentGroups struct {
	CurrentPhD     []*models.Student `json:"currentPhd"`
	CurrentMasters []*models.Student `json:"currentMasters"`
	FormerPhD      []*models.Student `json:"formerPhd"`
	FormerMasters  []*models.Student `json:"formerMasters"`
}

// HomePage is everything the public homepage renders
type HomePage struct {
	LabInfo   *models.LabInfo   `json:"labInfo"`
	Professor *models.Professor `json:"professor"`

	Students StudentGroups `json:"students"`

	OngoingProjects   []*models.Project `json:"ongoingProjects"`
	CompletedProjects []*models.Project `json:"completedProjects"`

	FeaturedPublications []*models.Publication `json:"featuredPublications"`
}

// ProjectDetail is the project detail page payload
type ProjectDetail struct {
	Project *models.Project `json:"project"`
	// AdditionalImages are image2..image4 with unset slots omitted
	AdditionalImages []string `json:"additionalImages"`
}
