package admin

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
)

func testRegistry() *Registry {
	return NewRegistry(
		NewProfessorResource(nil, nil),
		NewStudentResource(nil, nil),
		NewProjectResource(nil, nil, nil),
		NewPublicationResource(nil),
		NewLabInfoResource(nil),
	)
}

func TestRegistryLookup(t *testing.T) {
	registry := testRegistry()

	for _, name := range []string{"professors", "students", "projects", "publications", "lab-info"} {
		resource, err := registry.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, resource.Meta().Name)
	}

	_, err := registry.Get("widgets")
	assert.ErrorIs(t, err, apperrors.ErrUnknownResource)
}

func TestRegistryPreservesOrder(t *testing.T) {
	registry := testRegistry()

	var names []string
	for _, resource := range registry.All() {
		names = append(names, resource.Meta().Name)
	}
	assert.Equal(t, []string{"professors", "students", "projects", "publications", "lab-info"}, names)
}

func TestLabInfoCreateAndDeleteDisabled(t *testing.T) {
	resource := NewLabInfoResource(nil)

	meta := resource.Meta()
	assert.True(t, meta.DisableCreate)
	assert.True(t, meta.DisableDelete)

	_, err := resource.Create(context.Background(), Form{})
	assert.ErrorIs(t, err, apperrors.ErrCreateDisabled)
	assert.ErrorIs(t, resource.Delete(context.Background(), 1), apperrors.ErrDeleteDisabled)
}

func TestUploadPolicies(t *testing.T) {
	professor := ProfessorPhotoConfig()
	assert.True(t, professor.ForceResize)
	assert.Equal(t, 800, professor.MaxWidth)
	assert.Equal(t, 100, professor.ThumbnailWidth)
	assert.Equal(t, "professor", professor.Dir)
	assert.Equal(t, "/uploads/professor/", professor.URLPrefix)

	student := StudentPhotoConfig()
	assert.True(t, student.ForceResize)
	assert.Equal(t, 600, student.MaxWidth)
	assert.Equal(t, "students", student.Dir)

	// Oversized project images are rejected, not resized
	project := ProjectImageConfig()
	assert.False(t, project.ForceResize)
	assert.Equal(t, 1200, project.MaxWidth)
	assert.Equal(t, 800, project.MaxHeight)
}

func TestFormHelpers(t *testing.T) {
	form := Form{Values: url.Values{
		"name":       {"  Jane  "},
		"is_current": {"on"},
		"year":       {"2021"},
		"member_ids": {"1", "3", ""},
	}}

	assert.Equal(t, "Jane", form.Value("name"))
	assert.True(t, form.Bool("is_current"))
	assert.False(t, form.Bool("is_featured"))

	year, err := form.IntPtr("year")
	require.NoError(t, err)
	require.NotNil(t, year)
	assert.Equal(t, 2021, *year)

	missing, err := form.IntPtr("citations")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ids, err := form.Int64Slice("member_ids")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)

	_, ok := form.File("photo")
	assert.False(t, ok)
}
