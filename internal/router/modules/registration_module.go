package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/urex-bootcamp/internal/interface/http"
	"github.com/oksasatya/urex-bootcamp/internal/interface/middleware"
)

// RegistrationModule exposes the public submission endpoint.
// Public: POST /api/registrations
type RegistrationModule struct {
	Handler *handlers.RegistrationHandler
	Redis   *redis.Client
}

func NewRegistrationModule(h *handlers.RegistrationHandler, rdb *redis.Client) *RegistrationModule {
	return &RegistrationModule{Handler: h, Redis: rdb}
}

func (m *RegistrationModule) Register(rg *gin.RouterGroup) {
	submitLimiter := middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/registrations", submitLimiter, m.Handler.Submit)
}
