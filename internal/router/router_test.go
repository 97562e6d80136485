package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/urex-bootcamp/config"
	"github.com/oksasatya/urex-bootcamp/internal/container"
	"github.com/oksasatya/urex-bootcamp/internal/metrics"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func defaultConfig(t *testing.T) *config.Config {
	t.Setenv("CORS_ENABLED", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	return config.Load()
}

func TestNewEngineWithDefaultConfig(t *testing.T) {
	cfg := defaultConfig(t)
	require.NoError(t, cfg.Validate())

	var (
		r   *gin.Engine
		err error
	)
	require.NotPanics(t, func() { r, err = NewEngine(cfg) })
	require.NoError(t, err)

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://elsewhere.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewEngineWithCORS(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.CORSEnabled = true
	cfg.CORSAllowedOrigins = "https://app.urex.test"

	r, err := NewEngine(cfg)
	require.NoError(t, err)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.urex.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.urex.test", w.Header().Get("Access-Control-Allow-Origin"))
}

// newApp wires the real modules the way main does, minus Postgres. Only
// routes that are decided before any store call are exercised.
func newApp(t *testing.T) *gin.Engine {
	cfg := defaultConfig(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	mr := miniredis.RunT(t)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(nil)
	container.SetRedis(helpers.NewRedisClient(mr.Addr(), "", 0))
	container.SetJWT(helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour))
	container.SetMetrics(metrics.New(prometheus.NewRegistry()))
	container.SetES(nil)
	container.SetGCS(nil)
	container.SetRabbitPub(nil)

	r, err := NewEngine(cfg)
	require.NoError(t, err)
	reg := NewRegistry(r)
	require.NotPanics(t, func() {
		InitModules(reg, prometheus.NewRegistry())
		reg.RegisterAll()
	})
	return r
}

func TestInitModulesRoutes(t *testing.T) {
	r := newApp(t)

	tests := []struct {
		method   string
		path     string
		status   int
		location string
	}{
		{http.MethodGet, "/", http.StatusOK, ""},
		{http.MethodGet, "/register", http.StatusOK, ""},
		{http.MethodGet, "/admin/login", http.StatusOK, ""},
		{http.MethodGet, "/static/logo.svg", http.StatusOK, ""},
		{http.MethodGet, "/metrics", http.StatusOK, ""},
		{http.MethodGet, "/api/debug/vars", http.StatusOK, ""},
		{http.MethodGet, "/admin", http.StatusSeeOther, "/admin/login"},
		{http.MethodGet, "/admin/export", http.StatusSeeOther, "/admin/login"},
		{http.MethodGet, "/api/admin/session", http.StatusUnauthorized, ""},
		{http.MethodGet, "/api/admin/dashboard", http.StatusUnauthorized, ""},
		{http.MethodGet, "/api/admin/registrations/export", http.StatusUnauthorized, ""},
		{http.MethodGet, "/api/admin/registrations/search?q=jane", http.StatusUnauthorized, ""},
		{http.MethodPost, "/api/admin/refresh", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestInitModulesRejectsForgedSession(t *testing.T) {
	r := newApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
