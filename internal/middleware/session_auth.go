package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/dadl-lab/labsite/internal/pkg/logger"
)

// SessionUserKey is the session key holding the signed-in admin's user id
const SessionUserKey = "admin_user_id"

// ContextUserIDKey is where the guard puts the admin user id for handlers
const ContextUserIDKey = "adminUserID"

// RequireAdmin guards the admin backend. Requests without a signed-in
// session are redirected to the login form with the original URL preserved
// in the next parameter.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(SessionUserKey).(int64); ok && id > 0 {
			c.Set(ContextUserIDKey, id)
			c.Next()
			return
		}

		logger.Debug().Str("path", c.Request.URL.Path).Msg("Unauthenticated admin request")
		target := "/admin-login?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// CurrentUserID returns the signed-in admin's user id, set by RequireAdmin
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
