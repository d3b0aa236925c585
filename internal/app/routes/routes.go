package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dadl-lab/labsite/internal/app/controllers"
	"github.com/dadl-lab/labsite/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrls *controllers.Controllers) {
	// --- Public site ---
	router.GET("/", ctrls.Site.Home)
	router.GET("/projects/:id", ctrls.Site.ProjectDetail)

	// --- Admin session routes (outside the guarded group) ---
	router.GET("/admin-login", ctrls.Auth.ShowLogin)
	router.POST("/admin-login", ctrls.Auth.Login)
	router.GET("/admin-logout", middleware.RequireAdmin(), ctrls.Auth.Logout)
	router.GET("/admin-status", ctrls.Auth.Status)
	router.POST("/admin-password", middleware.RequireAdmin(), ctrls.Auth.ChangePassword)

	// --- Admin backend ---
	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin())
	{
		adminGroup.GET("", ctrls.Admin.Index)
		adminGroup.GET("/:resource", ctrls.Admin.List)
		adminGroup.POST("/:resource", ctrls.Admin.Create)
		adminGroup.GET("/:resource/:id", ctrls.Admin.Detail)
		adminGroup.POST("/:resource/:id", ctrls.Admin.Update)
		adminGroup.POST("/:resource/:id/delete", ctrls.Admin.Delete)
	}
}
