package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
	"github.com/oksasatya/urex-bootcamp/pkg/response"
)

const (
	CtxAdminIDKey       = "adminID"
	CtxAdminUsernameKey = "adminUsername"
)

// SessionResolver resolves an access token to a live admin session.
type SessionResolver interface {
	Session(ctx context.Context, accessToken string) (*application.SessionInfo, error)
}

func resolve(c *gin.Context, sessions SessionResolver) (*application.SessionInfo, bool) {
	token, err := c.Cookie(helpers.AccessCookie)
	if err != nil || token == "" {
		return nil, false
	}
	info, err := sessions.Session(c.Request.Context(), token)
	if err != nil {
		return nil, false
	}
	c.Set(CtxAdminIDKey, info.AdminID)
	c.Set(CtxAdminUsernameKey, info.Username)
	return info, true
}

// Auth requires a valid access token backed by a live session.
// It sets adminID and adminUsername in the Gin context on success.
func Auth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolve(c, sessions); !ok {
			response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// WebAuth is Auth for browser pages: visitors without a session are sent to the admin login.
func WebAuth(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := resolve(c, sessions); !ok {
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalSession resolves the session when present and never blocks.
func OptionalSession(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		resolve(c, sessions)
		c.Next()
	}
}

// Authenticated reports whether a session was resolved for this request.
func Authenticated(c *gin.Context) bool {
	return c.GetString(CtxAdminIDKey) != ""
}
