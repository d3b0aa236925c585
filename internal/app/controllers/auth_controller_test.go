package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadl-lab/labsite/internal/app/models"
	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/app/services"
	"github.com/dadl-lab/labsite/internal/middleware"
	"github.com/dadl-lab/labsite/internal/pkg/auth"
)

// stubAdminUserStore serves a single admin account from memory
type stubAdminUserStore struct {
	user *models.AdminUser
}

func (s *stubAdminUserStore) GetByUsername(_ context.Context, username string) (*models.AdminUser, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubAdminUserStore) GetByID(_ context.Context, id int64) (*models.AdminUser, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repositories.ErrNotFound
}

func (s *stubAdminUserStore) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	if s.user != nil && s.user.ID == id {
		s.user.PasswordHash = passwordHash
		return nil
	}
	return repositories.ErrNotFound
}

// newAuthTestRouter builds a router with the session middleware, the auth
// routes and a guarded admin index, backed by one admin/changeme123 account.
func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := auth.HashPassword("changeme123")
	require.NoError(t, err)
	store := &stubAdminUserStore{user: &models.AdminUser{
		ID:           1,
		Username:     "admin",
		PasswordHash: hash,
		Name:         "Administrator",
	}}

	router := gin.New()
	router.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	ctrl := NewAuthController(services.NewAuthService(store))
	router.GET("/admin-login", ctrl.ShowLogin)
	router.POST("/admin-login", ctrl.Login)
	router.GET("/admin-logout", middleware.RequireAdmin(), ctrl.Logout)
	router.GET("/admin-status", ctrl.Status)
	router.POST("/admin-password", middleware.RequireAdmin(), ctrl.ChangePassword)

	guarded := router.Group("/admin")
	guarded.Use(middleware.RequireAdmin())
	guarded.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "admin index")
	})

	return router
}

func postLogin(router *gin.Engine, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func getWithCookies(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestLoginAfterFailedAttempts(t *testing.T) {
	router := newAuthTestRouter(t)

	// Two wrong passwords, then the right one
	resp := postLogin(router, url.Values{"username": {"admin"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = postLogin(router, url.Values{"username": {"admin"}, "password": {"still-wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = postLogin(router, url.Values{"username": {"admin"}, "password": {"changeme123"}}, nil)
	require.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/admin", resp.Header().Get("Location"))
	require.NotEmpty(t, resp.Result().Cookies(), "login must set a session cookie")

	// The session is recognized on the next request
	resp = getWithCookies(router, "/admin", resp.Result().Cookies())
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "admin index", resp.Body.String())
}

func TestLoginRedirectsToNextPath(t *testing.T) {
	router := newAuthTestRouter(t)

	resp := postLogin(router, url.Values{
		"username": {"admin"},
		"password": {"changeme123"},
		"next":     {"/admin/students"},
	}, nil)
	require.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/admin/students", resp.Header().Get("Location"))
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	router := newAuthTestRouter(t)

	resp := postLogin(router, url.Values{
		"username": {"admin"},
		"password": {"changeme123"},
		"next":     {"https://evil.example.com/"},
	}, nil)
	require.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/admin", resp.Header().Get("Location"))
}

func TestUnauthenticatedAdminRequestRedirects(t *testing.T) {
	router := newAuthTestRouter(t)

	resp := getWithCookies(router, "/admin", nil)
	require.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/admin-login?next="+url.QueryEscape("/admin"), resp.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	router := newAuthTestRouter(t)

	login := postLogin(router, url.Values{"username": {"admin"}, "password": {"changeme123"}}, nil)
	require.Equal(t, http.StatusFound, login.Code)
	cookies := login.Result().Cookies()

	logout := getWithCookies(router, "/admin-logout", cookies)
	require.Equal(t, http.StatusFound, logout.Code)
	assert.Equal(t, "/admin-login", logout.Header().Get("Location"))

	// The replaced cookie no longer opens the admin backend
	resp := getWithCookies(router, "/admin", logout.Result().Cookies())
	assert.Equal(t, http.StatusFound, resp.Code)
}

func TestLoginRequiresCredentials(t *testing.T) {
	router := newAuthTestRouter(t)

	resp := postLogin(router, url.Values{"username": {"admin"}}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAdminStatus(t *testing.T) {
	router := newAuthTestRouter(t)

	resp := getWithCookies(router, "/admin-status", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Not logged in", resp.Body.String())

	login := postLogin(router, url.Values{"username": {"admin"}, "password": {"changeme123"}}, nil)
	require.Equal(t, http.StatusFound, login.Code)

	resp = getWithCookies(router, "/admin-status", login.Result().Cookies())
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Logged in as: Administrator (ID: 1)", resp.Body.String())
}

func TestLoginPageRedirectsWhenSignedIn(t *testing.T) {
	router := newAuthTestRouter(t)

	login := postLogin(router, url.Values{"username": {"admin"}, "password": {"changeme123"}}, nil)
	require.Equal(t, http.StatusFound, login.Code)

	resp := getWithCookies(router, "/admin-login", login.Result().Cookies())
	require.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/admin", resp.Header().Get("Location"))
}

func TestChangePassword(t *testing.T) {
	router := newAuthTestRouter(t)

	login := postLogin(router, url.Values{"username": {"admin"}, "password": {"changeme123"}}, nil)
	require.Equal(t, http.StatusFound, login.Code)
	cookies := login.Result().Cookies()

	postForm := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin-password", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, c := range cookies {
			req.AddCookie(c)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	// Wrong current password is rejected
	resp := postForm(url.Values{"current_password": {"wrong"}, "new_password": {"a-new-password"}})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	// Too-short new password is rejected
	resp = postForm(url.Values{"current_password": {"changeme123"}, "new_password": {"short"}})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = postForm(url.Values{"current_password": {"changeme123"}, "new_password": {"a-new-password"}})
	require.Equal(t, http.StatusOK, resp.Code)

	// The old password no longer signs in, the new one does
	failed := postLogin(router, url.Values{"username": {"admin"}, "password": {"changeme123"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, failed.Code)

	succeeded := postLogin(router, url.Values{"username": {"admin"}, "password": {"a-new-password"}}, nil)
	assert.Equal(t, http.StatusFound, succeeded.Code)
}

func TestChangePasswordRequiresSession(t *testing.T) {
	router := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin-password", strings.NewReader("current_password=x&new_password=yyyyyyyy"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusFound, recorder.Code)
}

func TestSafeNextPath(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", "/admin"},
		{"/admin/students", "/admin/students"},
		{"//evil.example.com", "/admin"},
		{"https://evil.example.com", "/admin"},
		{"\\evil", "/admin"},
		{"/admin/projects?page=2", "/admin/projects?page=2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, safeNextPath(tc.input), "next=%q", tc.input)
	}
}
