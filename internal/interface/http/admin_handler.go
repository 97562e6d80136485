package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/internal/interface/middleware"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
	"github.com/oksasatya/urex-bootcamp/pkg/response"
	"github.com/oksasatya/urex-bootcamp/pkg/validation"
)

type AdminHandler struct {
	Svc     Authenticator
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAdminHandler(svc Authenticator, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// Credentials are not validated for presence: empty values are just wrong credentials.
type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	ctx := application.WithClient(c.Request.Context(), middleware.ClientIP(c), c.GetHeader("User-Agent"))
	res, pair, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, application.InvalidCredentialsMessage, nil)
			return
		}
		helpers.LogError(h.Logger, "admin login failed", err, nil)
		response.Error[any](c, http.StatusInternalServerError, "login unavailable", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "login successful", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

// Refresh POST /api/admin/refresh
func (h *AdminHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(helpers.RefreshCookie)
	if err != nil || refresh == "" {
		response.Error[any](c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success[any](c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{"access_expires_at": pair.AccessTokenExpiry, "refresh_expires_at": pair.RefreshTokenExpiry})
}

// Session GET /api/admin/session
func (h *AdminHandler) Session(c *gin.Context) {
	token, _ := c.Cookie(helpers.AccessCookie)
	info, err := h.Svc.Session(c.Request.Context(), token)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "no active session", nil)
		return
	}
	response.Success(c, http.StatusOK, info, "session", nil)
}

// Logout POST /api/admin/logout. Always succeeds for the caller.
func (h *AdminHandler) Logout(c *gin.Context) {
	if id := c.GetString(middleware.CtxAdminIDKey); id != "" {
		ctx := application.WithClient(c.Request.Context(), middleware.ClientIP(c), c.GetHeader("User-Agent"))
		if err := h.Svc.Logout(ctx, id); err != nil {
			helpers.LogError(h.Logger, "logout failed", err, logrus.Fields{"admin_id": id})
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}
