package modules_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	handlers "github.com/oksasatya/urex-bootcamp/internal/interface/http"
	"github.com/oksasatya/urex-bootcamp/internal/interface/middleware"
	"github.com/oksasatya/urex-bootcamp/internal/router/modules"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type registrar struct{}

func (registrar) Submit(_ context.Context, in application.SubmitInput) (*application.SubmitResult, error) {
	return &application.SubmitResult{
		Registration:   &entity.Registration{ID: "r-1", FullName: in.FullName},
		Recommendation: application.Recommend(in.ProgrammingKnowledge, in.ProgrammingGoals),
	}, nil
}

// sessions accepts the access token "good" and rejects every login.
type sessions struct{}

func (sessions) Login(context.Context, string, string) (*application.LoginResult, application.TokenPair, error) {
	return nil, application.TokenPair{}, application.ErrInvalidCredentials
}

func (sessions) Session(_ context.Context, token string) (*application.SessionInfo, error) {
	if token != "good" {
		return nil, application.ErrNoSession
	}
	return &application.SessionInfo{AdminID: "a1", Username: "Ash"}, nil
}

func (sessions) Refresh(context.Context, string) (application.TokenPair, error) {
	return application.TokenPair{}, application.ErrNoSession
}

func (sessions) Logout(context.Context, string) error { return nil }

type dashboard struct{}

func (dashboard) Load(context.Context) (*application.Dashboard, error) {
	return &application.Dashboard{Registrations: []entity.Registration{}, Stats: application.ComputeStats(nil)}, nil
}

func (dashboard) Page(_ context.Context, page, size int) (*application.PageResult, error) {
	return &application.PageResult{Registrations: []entity.Registration{}, Page: page, Size: size}, nil
}

func (dashboard) Search(context.Context, string, int) ([]map[string]any, error) {
	return []map[string]any{}, nil
}

func (dashboard) Export(context.Context, []entity.Registration, string) (*application.Export, error) {
	return &application.Export{Filename: "urex-registrations.csv", ContentType: application.ContentTypeCSV, Body: []byte("x")}, nil
}

func newEngine(t *testing.T) *gin.Engine {
	mr := miniredis.RunT(t)
	rdb := helpers.NewRedisClient(mr.Addr(), "", 0)
	tmpl, err := handlers.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RealIP())

	auth := sessions{}
	api := r.Group("/api")
	modules.NewRegistrationModule(handlers.NewRegistrationHandler(registrar{}, nil), rdb).Register(api)
	modules.NewAdminModule(
		handlers.NewAdminHandler(auth, nil, "localhost", false),
		handlers.NewDashboardHandler(dashboard{}, nil),
		auth, rdb,
	).Register(api)
	modules.NewDebugModule(rdb).Register(api)

	web := handlers.NewWebHandler(registrar{}, auth, dashboard{}, nil, "localhost", false, time.Millisecond, "1/2/2006")
	modules.NewWebModule(web, auth, rdb).Register(r.Group("/"))
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: "good"})
	return req
}

func TestAdminAPIRequiresSession(t *testing.T) {
	r := newEngine(t)
	for _, path := range []string{
		"/api/admin/dashboard",
		"/api/admin/registrations/export",
		"/api/admin/registrations/search?q=jane",
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, path, nil)).Code)
			assert.Equal(t, http.StatusOK, serve(r, withSession(httptest.NewRequest(http.MethodGet, path, nil))).Code)
		})
	}
}

func TestAdminPagesRedirectToLogin(t *testing.T) {
	r := newEngine(t)
	for _, path := range []string{"/admin", "/admin/export"} {
		t.Run(path, func(t *testing.T) {
			w := serve(r, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/admin/login", w.Header().Get("Location"))

			assert.Equal(t, http.StatusOK, serve(r, withSession(httptest.NewRequest(http.MethodGet, path, nil))).Code)
		})
	}
}

func TestStaticLogo(t *testing.T) {
	w := serve(newEngine(t), httptest.NewRequest(http.MethodGet, "/static/logo.svg", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestWebLoginIsRateLimited(t *testing.T) {
	r := newEngine(t)
	form := url.Values{"username": {"Ash"}, "password": {"guess"}}.Encode()
	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return serve(r, req)
	}

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusUnauthorized, post().Code, "attempt %d", i+1)
	}
	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestAPILoginIsRateLimited(t *testing.T) {
	r := newEngine(t)
	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"Ash","password":"guess"}`))
		req.Header.Set("Content-Type", "application/json")
		return serve(r, req).Code
	}
	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusUnauthorized, post())
	}
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestRegistrationIsRateLimitedPerClient(t *testing.T) {
	r := newEngine(t)
	body := `{"full_name":"Jane","last_name":"Doe","date_of_birth":"2001-05-06","major":"CS",
"department":"Eng","campus":"North","programming_knowledge":"zero","programming_goals":"web"}`
	post := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", ip)
		return serve(r, req).Code
	}

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusCreated, post("203.0.113.7"))
	}
	assert.Equal(t, http.StatusTooManyRequests, post("203.0.113.7"))
	assert.Equal(t, http.StatusCreated, post("203.0.113.8"))
}

func TestDebugVarsSkipsLimiterForPrivateClients(t *testing.T) {
	r := newEngine(t)
	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
		req.Header.Set("X-Forwarded-For", ip)
		return serve(r, req).Code
	}
	for i := 0; i < 130; i++ {
		require.Equal(t, http.StatusOK, get("10.0.0.5"))
	}
	for i := 0; i < 120; i++ {
		require.Equal(t, http.StatusOK, get("203.0.113.9"))
	}
	assert.Equal(t, http.StatusTooManyRequests, get("203.0.113.9"))
}
