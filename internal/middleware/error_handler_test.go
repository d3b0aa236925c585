package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadl-lab/labsite/internal/app/repositories"
	"github.com/dadl-lab/labsite/internal/pkg/apperrors"
	"github.com/dadl-lab/labsite/internal/pkg/filestorage"
)

func TestUnknownProjectMapsToNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/projects/:id", func(c *gin.Context) {
		HandleAPIError(c, apperrors.ErrProjectNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/projects/999", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "RESOURCE_NOT_FOUND")
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrNotAuthenticated, http.StatusUnauthorized},
		{apperrors.ErrCreateDisabled, http.StatusForbidden},
		{apperrors.ErrDeleteDisabled, http.StatusForbidden},
		{apperrors.ErrProjectNotFound, http.StatusNotFound},
		{apperrors.ErrUnknownResource, http.StatusNotFound},
		{repositories.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrUsernameAlreadyExists, http.StatusConflict},
		{apperrors.NewValidationError("name is required"), http.StatusBadRequest},
		{filestorage.ErrExtensionNotAllowed, http.StatusBadRequest},
		{filestorage.ErrImageTooLarge, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, detail := classifyError(tc.err)
		assert.Equal(t, tc.wantStatus, status, "error %v", tc.err)
		require.NotNil(t, detail, "error %v", tc.err)
	}
}
