package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/dadl-lab/labsite/internal/app/models/dto"
	"github.com/dadl-lab/labsite/internal/app/services"
	"github.com/dadl-lab/labsite/internal/middleware"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// defaultAdminTarget is where a successful login lands without a next param
const defaultAdminTarget = "/admin"

// AuthController handles admin login, logout and the status probe
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// safeNextPath keeps post-login redirects on this site. Anything that isn't
// a plain relative path falls back to the admin index.
func safeNextPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") {
		return defaultAdminTarget
	}
	// "//host" and backslash variants would leave the site
	if strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\") {
		return defaultAdminTarget
	}
	return next
}

// ShowLogin handles GET /admin-login. An already signed-in admin is sent
// straight to the backend.
func (ctrl *AuthController) ShowLogin(c *gin.Context) {
	session := sessions.Default(c)
	if id, ok := session.Get(middleware.SessionUserKey).(int64); ok && id > 0 {
		c.Redirect(http.StatusFound, safeNextPath(c.Query("next")))
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"message": "Sign in with your admin credentials",
		"next":    safeNextPath(c.Query("next")),
	})
}

// Login handles POST /admin-login. On success the admin's id goes into the
// session cookie and the browser is sent on to the page it asked for.
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("username and password are required"))
		return
	}

	user, err := ctrl.authService.VerifyCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	logger.Info().Str("username", user.Username).Msg("Admin signed in")
	c.Redirect(http.StatusFound, safeNextPath(c.PostForm("next")))
}

// Logout handles GET /admin-logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(middleware.SessionUserKey)
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/admin-login")
}

// ChangePassword handles POST /admin-password for the signed-in admin
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("current_password and new_password are required"))
		return
	}
	if len(req.NewPassword) < 8 {
		middleware.HandleAPIError(c, apperrors.NewValidationError("new password must be at least 8 characters"))
		return
	}

	user, err := ctrl.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if _, err := ctrl.authService.VerifyCredentials(c.Request.Context(), user.Username, req.CurrentPassword); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ctrl.authService.SetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "password updated"})
}

// Status handles GET /admin-status, a plain probe that reports who is
// signed in.
func (ctrl *AuthController) Status(c *gin.Context) {
	session := sessions.Default(c)
	id, ok := session.Get(middleware.SessionUserKey).(int64)
	if !ok || id <= 0 {
		c.String(http.StatusOK, "Not logged in")
		return
	}

	user, err := ctrl.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusOK, "Not logged in")
		return
	}
	c.String(http.StatusOK, "Logged in as: %s (ID: %d)", user.Name, user.ID)
}
