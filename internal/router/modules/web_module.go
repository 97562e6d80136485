package modules

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/urex-bootcamp/internal/interface/http"
	"github.com/oksasatya/urex-bootcamp/internal/interface/middleware"
)

// WebModule serves the browser pages and the embedded static assets.
type WebModule struct {
	Handler  *handlers.WebHandler
	Sessions middleware.SessionResolver
	Redis    *redis.Client
}

func NewWebModule(h *handlers.WebHandler, sessions middleware.SessionResolver, rdb *redis.Client) *WebModule {
	return &WebModule{Handler: h, Sessions: sessions, Redis: rdb}
}

func (m *WebModule) Register(rg *gin.RouterGroup) {
	rg.StaticFS("/static", http.FS(handlers.Static()))

	pages := rg.Group("/")
	pages.Use(middleware.OptionalSession(m.Sessions))
	{
		pages.GET("/", m.Handler.Home)
		pages.GET("/register", m.Handler.RegisterForm)
		pages.POST("/register", middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByIPAndPath(), nil), m.Handler.RegisterSubmit)
		pages.GET("/admin/login", m.Handler.LoginForm)
		pages.POST("/admin/login", middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil), m.Handler.LoginSubmit)
		pages.POST("/admin/logout", m.Handler.Logout)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.WebAuth(m.Sessions))
	{
		admin.GET("", m.Handler.AdminDashboard)
		admin.GET("/export", middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByAdminID(), nil), m.Handler.Export)
	}
}
