package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dadl-lab/labsite/internal/app/models"
)

func TestPartitionStudents(t *testing.T) {
	students := []*models.Student{
		{ID: 1, Name: "Ann", DegreeType: models.DegreePhD, IsCurrent: true},
		{ID: 2, Name: "Ben", DegreeType: models.DegreeMasters, IsCurrent: true},
		{ID: 3, Name: "Cem", DegreeType: models.DegreePhD, IsCurrent: false},
		{ID: 4, Name: "Dee", DegreeType: models.DegreeMasters, IsCurrent: false},
		{ID: 5, Name: "Eli", DegreeType: models.DegreePhD, IsCurrent: true},
	}

	groups := PartitionStudents(students)

	assert.Len(t, groups.CurrentPhD, 2)
	assert.Len(t, groups.CurrentMasters, 1)
	assert.Len(t, groups.FormerPhD, 1)
	assert.Len(t, groups.FormerMasters, 1)

	// Every student appears exactly once across the four groups
	seen := make(map[int64]int)
	for _, group := range [][]*models.Student{
		groups.CurrentPhD, groups.CurrentMasters, groups.FormerPhD, groups.FormerMasters,
	} {
		for _, s := range group {
			seen[s.ID]++
		}
	}
	assert.Len(t, seen, len(students))
	for id, count := range seen {
		assert.Equal(t, 1, count, "student %d appears %d times", id, count)
	}
}

func TestPartitionStudentsEmpty(t *testing.T) {
	groups := PartitionStudents(nil)

	assert.NotNil(t, groups.CurrentPhD)
	assert.Empty(t, groups.CurrentPhD)
	assert.Empty(t, groups.CurrentMasters)
	assert.Empty(t, groups.FormerPhD)
	assert.Empty(t, groups.FormerMasters)
}

func TestPartitionProjects(t *testing.T) {
	projects := []*models.Project{
		{ID: 1, Status: models.ProjectOngoing},
		{ID: 2, Status: models.ProjectCompleted},
		{ID: 3, Status: models.ProjectOngoing},
	}

	ongoing, completed := PartitionProjects(projects)

	assert.Len(t, ongoing, 2)
	assert.Len(t, completed, 1)
	assert.Equal(t, int64(2), completed[0].ID)
}
