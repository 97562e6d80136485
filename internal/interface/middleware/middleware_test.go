package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSessions map[string]*application.SessionInfo

func (s stubSessions) Session(_ context.Context, token string) (*application.SessionInfo, error) {
	if info, ok := s[token]; ok {
		return info, nil
	}
	return nil, application.ErrNoSession
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withToken(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: token})
	return req
}

func TestAuth(t *testing.T) {
	sessions := stubSessions{"good": {AdminID: "a1", Username: "Ash"}}
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/api/x", Auth(sessions), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxAdminIDKey)+"/"+c.GetString(CtxAdminUsernameKey))
	})

	w := serve(r, withToken(httptest.NewRequest(http.MethodGet, "/api/x", nil), "good"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1/Ash", w.Body.String())

	w = serve(r, withToken(httptest.NewRequest(http.MethodGet, "/api/x", nil), "stale"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebAuthRedirects(t *testing.T) {
	sessions := stubSessions{"good": {AdminID: "a1"}}
	r := gin.New()
	r.GET("/admin", WebAuth(sessions), func(c *gin.Context) { c.String(http.StatusOK, "dashboard") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = serve(r, withToken(httptest.NewRequest(http.MethodGet, "/admin", nil), "good"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalSession(t *testing.T) {
	sessions := stubSessions{"good": {AdminID: "a1"}}
	r := gin.New()
	r.GET("/", OptionalSession(sessions), func(c *gin.Context) {
		if Authenticated(c) {
			c.String(http.StatusOK, "yes")
			return
		}
		c.String(http.StatusOK, "no")
	})

	assert.Equal(t, "no", serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Body.String())
	assert.Equal(t, "yes", serve(r, withToken(httptest.NewRequest(http.MethodGet, "/", nil), "good")).Body.String())
}

func TestRequestIDKeepsValidIncomingID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "6f1c2a9e-8f9b-4a55-9c1d-2b0f4f1b7e10")
	assert.Equal(t, "6f1c2a9e-8f9b-4a55-9c1d-2b0f4f1b7e10", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", serve(r, req).Body.String())
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientIP(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.7")
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	assert.Equal(t, "203.0.113.7", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	assert.Equal(t, "198.51.100.1", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.5:1234"
	assert.Equal(t, "192.0.2.5", serve(r, req).Body.String())
}

func newLimited(t *testing.T, max int, allow AllowFunc) (*gin.Engine, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := gin.New()
	r.Use(RealIP())
	r.POST("/api/admin/login", RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, mr
}

func loginReq(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	req.Header.Set("X-Forwarded-For", ip)
	return req
}

func TestRateLimit(t *testing.T) {
	r, mr := newLimited(t, 2, nil)

	for i := 0; i < 2; i++ {
		w := serve(r, loginReq("203.0.113.1"))
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	w := serve(r, loginReq("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// another client has its own budget
	assert.Equal(t, http.StatusNoContent, serve(r, loginReq("203.0.113.2")).Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusNoContent, serve(r, loginReq("203.0.113.1")).Code)
}

func TestRateLimitAllowAndFailOpen(t *testing.T) {
	r, mr := newLimited(t, 1, AllowPrivateIP())
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(r, loginReq("10.1.2.3")).Code)
	}

	mr.SetError("LOADING")
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, serve(r, loginReq("203.0.113.9")).Code)
	}
}

func TestKeyByAdminID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(ctxRealIPKey, "192.0.2.1")
	assert.Equal(t, "rl:admin:anon:ip:192.0.2.1", KeyByAdminID()(c))
	c.Set(CtxAdminIDKey, "a1")
	assert.Equal(t, "rl:admin:a1", KeyByAdminID()(c))
}

