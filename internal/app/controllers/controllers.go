package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dadl-lab/labsite/internal/app/admin"
	"github.com/dadl-lab/labsite/internal/app/models/dto"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/app/services"
)

// Controllers bundles every HTTP controller for route registration
type Controllers struct {
	Auth  *AuthController
	Site  *SiteController
	Admin *AdminController
}

// NewControllers wires the controllers to their services
func NewControllers(
	authService *services.AuthService,
	siteService *services.SiteService,
	registry *admin.Registry,
	repos *repositories.Repositories,
) *Controllers {
	return &Controllers{
		Auth:  NewAuthController(authService),
		Site:  NewSiteController(siteService),
		Admin: NewAdminController(registry, repos),
	}
}

// respondData writes the standard success envelope
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}
