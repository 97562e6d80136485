package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/urex-bootcamp/internal/interface/http"
	"github.com/oksasatya/urex-bootcamp/internal/interface/middleware"
)

// AdminModule wires admin session and dashboard endpoints.
// Public: POST /api/admin/login, POST /api/admin/refresh, GET /api/admin/session, POST /api/admin/logout
// Protected: GET /api/admin/dashboard, GET /api/admin/registrations/export, GET /api/admin/registrations/search
type AdminModule struct {
	Admin     *handlers.AdminHandler
	Dashboard *handlers.DashboardHandler
	Sessions  middleware.SessionResolver
	Redis     *redis.Client
}

func NewAdminModule(admin *handlers.AdminHandler, dash *handlers.DashboardHandler, sessions middleware.SessionResolver, rdb *redis.Client) *AdminModule {
	return &AdminModule{Admin: admin, Dashboard: dash, Sessions: sessions, Redis: rdb}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil) // 60 req/min per IP

	rg.POST("/admin/login", loginLimiter, m.Admin.Login)
	rg.POST("/admin/refresh", refreshLimiter, m.Admin.Refresh)
	rg.GET("/admin/session", m.Admin.Session)
	rg.POST("/admin/logout", middleware.OptionalSession(m.Sessions), m.Admin.Logout)

	auth := rg.Group("/admin")
	auth.Use(middleware.Auth(m.Sessions))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByAdminID(), nil))
	{
		auth.GET("/dashboard", m.Dashboard.Dashboard)
		auth.GET("/registrations/export", middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByAdminID(), nil), m.Dashboard.Export)
		auth.GET("/registrations/search", m.Dashboard.Search)
	}
}
