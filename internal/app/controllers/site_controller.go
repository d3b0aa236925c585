package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dadl-lab/labsite/internal/app/services"
	"github.com/dadl-lab/labsite/internal/middleware"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
)

// SiteController serves the public pages
type SiteController struct {
	siteService *services.SiteService
}

// NewSiteController creates a new SiteController
func NewSiteController(siteService *services.SiteService) *SiteController {
	return &SiteController{siteService: siteService}
}

// Home handles GET / with everything the homepage shows
func (ctrl *SiteController) Home(c *gin.Context) {
	page, err := ctrl.siteService.HomePage(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, page)
}

// ProjectDetail handles GET /projects/:id
func (ctrl *SiteController) ProjectDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("project id must be numeric"))
		return
	}

	detail, err := ctrl.siteService.ProjectDetail(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	respondData(c, http.StatusOK, detail)
}
