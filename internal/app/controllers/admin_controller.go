package controllers

import (
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dadl-lab/labsite/internal/app/admin"
	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/middleware"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
)

// AdminController serves the management backend through one generic set of
// handlers; per-entity behavior lives in the resource registry.
type AdminController struct {
	registry *admin.Registry
	repos    *repositories.Repositories
}

// NewAdminController creates a new AdminController
func NewAdminController(registry *admin.Registry, repos *repositories.Repositories) *AdminController {
	return &AdminController{registry: registry, repos: repos}
}

// Index handles GET /admin with the resource list and content counts
func (ctrl *AdminController) Index(c *gin.Context) {
	ctx := c.Request.Context()

	counts := map[string]int64{}
	for name, load := range map[string]func() (int64, error){
		"students":         func() (int64, error) { return ctrl.repos.StudentRepository.Count(ctx) },
		"current_students": func() (int64, error) { return ctrl.repos.StudentRepository.CountCurrent(ctx) },
		"projects":         func() (int64, error) { return ctrl.repos.ProjectRepository.Count(ctx) },
		"ongoing_projects": func() (int64, error) { return ctrl.repos.ProjectRepository.CountByStatus(ctx, models.ProjectOngoing) },
		"publications":     func() (int64, error) { return ctrl.repos.PublicationRepository.Count(ctx) },
	} {
		count, err := load()
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		counts[name] = count
	}

	metas := make([]admin.Meta, 0)
	for _, resource := range ctrl.registry.All() {
		metas = append(metas, resource.Meta())
	}

	payload := gin.H{
		"resources": metas,
		"counts":    counts,
	}
	if userID, ok := middleware.CurrentUserID(c); ok {
		if user, err := ctrl.repos.AdminUserRepository.GetByID(ctx, userID); err == nil {
			payload["user"] = user
		}
	}

	respondData(c, http.StatusOK, payload)
}

// resource resolves the :resource route param
func (ctrl *AdminController) resource(c *gin.Context) (admin.Resource, bool) {
	resource, err := ctrl.registry.Get(c.Param("resource"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return nil, false
	}
	return resource, true
}

// recordID parses the :id route param
func recordID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("record id must be numeric"))
		return 0, false
	}
	return id, true
}

// listQuery extracts the search term and the resource's declared filters
func listQuery(c *gin.Context, meta admin.Meta) admin.ListQuery {
	query := admin.ListQuery{
		Search:  strings.TrimSpace(c.Query("search")),
		Filters: map[string]string{},
	}
	for _, filter := range meta.Filters {
		if value := strings.TrimSpace(c.Query(filter.Name)); value != "" {
			query.Filters[filter.Name] = value
		}
	}
	return query
}

// parseSubmittedForm reads an urlencoded or multipart submission
func parseSubmittedForm(c *gin.Context) (admin.Form, error) {
	form := admin.Form{Files: map[string]*multipart.FileHeader{}}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		multipartForm, err := c.MultipartForm()
		if err != nil {
			return form, apperrors.NewBadRequestError("malformed multipart form")
		}
		form.Values = url.Values(multipartForm.Value)
		for name, files := range multipartForm.File {
			if len(files) > 0 {
				form.Files[name] = files[0]
			}
		}
		return form, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return form, apperrors.NewBadRequestError("malformed form")
	}
	form.Values = c.Request.PostForm
	return form, nil
}

// List handles GET /admin/:resource
func (ctrl *AdminController) List(c *gin.Context) {
	resource, ok := ctrl.resource(c)
	if !ok {
		return
	}

	meta := resource.Meta()
	rows, err := resource.List(c.Request.Context(), listQuery(c, meta))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"meta": meta,
		"rows": rows,
	})
}

// Detail handles GET /admin/:resource/:id
func (ctrl *AdminController) Detail(c *gin.Context) {
	resource, ok := ctrl.resource(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	record, err := resource.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, record)
}

// Create handles POST /admin/:resource
func (ctrl *AdminController) Create(c *gin.Context) {
	resource, ok := ctrl.resource(c)
	if !ok {
		return
	}
	if resource.Meta().DisableCreate {
		middleware.HandleAPIError(c, apperrors.ErrCreateDisabled)
		return
	}

	form, err := parseSubmittedForm(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	id, err := resource.Create(c.Request.Context(), form)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"id": id})
}

// Update handles POST /admin/:resource/:id
func (ctrl *AdminController) Update(c *gin.Context) {
	resource, ok := ctrl.resource(c)
	if !ok {
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	form, err := parseSubmittedForm(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := resource.Update(c.Request.Context(), id, form); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}

// Delete handles POST /admin/:resource/:id/delete
func (ctrl *AdminController) Delete(c *gin.Context) {
	resource, ok := ctrl.resource(c)
	if !ok {
		return
	}
	if resource.Meta().DisableDelete {
		middleware.HandleAPIError(c, apperrors.ErrDeleteDisabled)
		return
	}
	id, ok := recordID(c)
	if !ok {
		return
	}

	if err := resource.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}
