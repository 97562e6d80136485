package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	"github.com/oksasatya/urex-bootcamp/internal/flow"
	"github.com/oksasatya/urex-bootcamp/internal/interface/middleware"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

// WebHandler serves the browser UI. Every page resolves its screen through the flow machine.
type WebHandler struct {
	Flow         *flow.Machine
	Registration Registrar
	Auth         Authenticator
	Dashboard    DashboardReader
	Cookies      *helpers.Manager
	Logger       *logrus.Logger
	LoadingStep  time.Duration
	DateLayout   string
}

func NewWebHandler(reg Registrar, auth Authenticator, dash DashboardReader, logger *logrus.Logger, cookieDomain string, cookieSecure bool, loadingStep time.Duration, dateLayout string) *WebHandler {
	return &WebHandler{
		Flow:         flow.New(),
		Registration: reg,
		Auth:         auth,
		Dashboard:    dash,
		Cookies:      helpers.NewCookie(cookieDomain, cookieSecure),
		Logger:       logger,
		LoadingStep:  loadingStep,
		DateLayout:   dateLayout,
	}
}

// screenPaths maps each resting screen to the page that renders it.
var screenPaths = map[flow.State]string{
	flow.Landing:           "/?loaded=1",
	flow.Registering:       "/register",
	flow.AwaitingAdminAuth: "/admin/login",
	flow.Dashboard:         "/admin",
}

// screenTemplates maps each screen to its template.
var screenTemplates = map[flow.State]string{
	flow.Landing:           "landing.tmpl",
	flow.Registering:       "register.tmpl",
	flow.AwaitingAdminAuth: "admin_login.tmpl",
	flow.Dashboard:         "dashboard.tmpl",
}

type landingPage struct {
	Title         string
	ShowLoading   bool
	LoadingStepMS int64
}

type registerPage struct {
	Title       string
	Values      application.SubmitInput
	Error       string
	FieldErrors map[string]string
}

type registeredPage struct {
	Title          string
	Label          string
	Recommendation string
}

type loginPage struct {
	Title    string
	Username string
	Error    string
}

type dashboardPage struct {
	Title         string
	Username      string
	Registrations []entity.Registration
	Stats         application.Stats
	DateLayout    string
	// LoadedAt (unix nanos) pins the export link to the rows shown.
	LoadedAt int64
}

func (h *WebHandler) fire(c *gin.Context, from flow.State, t flow.Trigger) (flow.State, bool) {
	next, err := h.Flow.Fire(from, t, middleware.Authenticated(c))
	if err != nil {
		helpers.LogError(h.Logger, "flow transition rejected", err, logrus.Fields{"path": c.Request.URL.Path})
		c.String(http.StatusConflict, "invalid navigation")
		return from, false
	}
	return next, true
}

func (h *WebHandler) redirect(c *gin.Context, s flow.State) {
	c.Redirect(http.StatusSeeOther, screenPaths[s])
}

func (h *WebHandler) render(c *gin.Context, s flow.State, status int, data any) {
	c.HTML(status, screenTemplates[s], data)
}

// Home GET /
func (h *WebHandler) Home(c *gin.Context) {
	state := h.Flow.Entry(middleware.Authenticated(c))
	if state == flow.Dashboard {
		h.redirect(c, state)
		return
	}
	h.render(c, state, http.StatusOK, landingPage{
		Title:         "Home",
		ShowLoading:   c.Query("loaded") == "",
		LoadingStepMS: h.LoadingStep.Milliseconds(),
	})
}

// RegisterForm GET /register
func (h *WebHandler) RegisterForm(c *gin.Context) {
	state, ok := h.fire(c, flow.Landing, flow.StartRegistration)
	if !ok {
		return
	}
	h.render(c, state, http.StatusOK, registerPage{Title: "Join the Bootcamp"})
}

// RegisterSubmit POST /register
func (h *WebHandler) RegisterSubmit(c *gin.Context) {
	var in application.SubmitInput
	if err := c.ShouldBind(&in); err != nil {
		h.render(c, flow.Registering, http.StatusBadRequest, registerPage{Title: "Join the Bootcamp", Values: in, Error: "Please check the highlighted fields."})
		return
	}
	in.IP = middleware.ClientIP(c)
	in.UserAgent = c.GetHeader("User-Agent")

	res, err := h.Registration.Submit(c.Request.Context(), in)
	if err != nil {
		page := registerPage{Title: "Join the Bootcamp", Values: in}
		var verr *application.ValidationError
		if errors.As(err, &verr) {
			page.Error = "Please check the highlighted fields."
			page.FieldErrors = verr.Details
			h.render(c, flow.Registering, http.StatusUnprocessableEntity, page)
			return
		}
		page.Error = application.SubmitFailedMessage
		h.render(c, flow.Registering, http.StatusInternalServerError, page)
		return
	}

	if _, ok := h.fire(c, flow.Registering, flow.RegistrationSubmitted); !ok {
		return
	}
	c.HTML(http.StatusOK, "registered.tmpl", registeredPage{
		Title:          "Registration Successful",
		Label:          application.RecommendationLabel,
		Recommendation: res.Recommendation,
	})
}

// LoginForm GET /admin/login
func (h *WebHandler) LoginForm(c *gin.Context) {
	if middleware.Authenticated(c) {
		if next, ok := h.fire(c, flow.Landing, flow.SessionRestored); ok {
			h.redirect(c, next)
		}
		return
	}
	state, ok := h.fire(c, flow.Landing, flow.OpenAdminLogin)
	if !ok {
		return
	}
	h.render(c, state, http.StatusOK, loginPage{Title: "Admin Access"})
}

// LoginSubmit POST /admin/login
func (h *WebHandler) LoginSubmit(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.LogWarn(h.Logger, "admin login form bind failed", err, nil)
	}

	ctx := application.WithClient(c.Request.Context(), middleware.ClientIP(c), c.GetHeader("User-Agent"))
	_, pair, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		state, _ := h.Flow.Fire(flow.AwaitingAdminAuth, flow.LoginFailed, false)
		page := loginPage{Title: "Admin Access", Username: req.Username, Error: application.InvalidCredentialsMessage}
		if !errors.Is(err, application.ErrInvalidCredentials) {
			helpers.LogError(h.Logger, "admin login failed", err, nil)
			page.Error = application.LoginUnavailableMessage
			h.render(c, state, http.StatusInternalServerError, page)
			return
		}
		h.render(c, state, http.StatusUnauthorized, page)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	next, _ := h.Flow.Fire(flow.AwaitingAdminAuth, flow.LoginSucceeded, true)
	h.redirect(c, next)
}

// AdminDashboard GET /admin (behind WebAuth)
func (h *WebHandler) AdminDashboard(c *gin.Context) {
	state, ok := h.fire(c, flow.Dashboard, flow.SessionRestored)
	if !ok {
		return
	}
	page := dashboardPage{
		Title:         "Dashboard",
		Username:      c.GetString(middleware.CtxAdminUsernameKey),
		Registrations: []entity.Registration{},
		Stats:         application.ComputeStats(nil),
		DateLayout:    h.DateLayout,
	}
	d, err := h.Dashboard.Load(c.Request.Context())
	if err != nil {
		helpers.LogError(h.Logger, "dashboard load failed", err, nil)
	} else {
		page.Registrations, page.Stats = d.Registrations, d.Stats
	}
	page.LoadedAt = time.Now().UnixNano()
	h.render(c, state, http.StatusOK, page)
}

// Export GET /admin/export[?at=] (behind WebAuth). A failed fetch exports the empty table.
// at is the dashboard's LoadedAt; rows registered after it are left out.
func (h *WebHandler) Export(c *gin.Context) {
	regs := []entity.Registration{}
	if d, err := h.Dashboard.Load(c.Request.Context()); err != nil {
		helpers.LogError(h.Logger, "export load failed", err, nil)
	} else {
		regs = d.Registrations
	}
	if at, err := strconv.ParseInt(c.Query("at"), 10, 64); err == nil && at > 0 {
		regs = registeredBy(regs, time.Unix(0, at))
	}
	exp, err := h.Dashboard.Export(c.Request.Context(), regs, application.ExportFormatCSV)
	if err != nil {
		helpers.LogError(h.Logger, "export failed", err, nil)
		c.String(http.StatusInternalServerError, "export failed")
		return
	}
	writeAttachment(c, exp)
}

func registeredBy(regs []entity.Registration, t time.Time) []entity.Registration {
	out := make([]entity.Registration, 0, len(regs))
	for _, r := range regs {
		if !r.CreatedAt.After(t) {
			out = append(out, r)
		}
	}
	return out
}

// Logout POST /admin/logout. The visitor always lands on the landing page.
func (h *WebHandler) Logout(c *gin.Context) {
	if id := c.GetString(middleware.CtxAdminIDKey); id != "" {
		ctx := application.WithClient(c.Request.Context(), middleware.ClientIP(c), c.GetHeader("User-Agent"))
		if err := h.Auth.Logout(ctx, id); err != nil {
			helpers.LogError(h.Logger, "logout failed", err, logrus.Fields{"admin_id": id})
		}
	}
	h.Cookies.Clear(c)
	next, _ := h.Flow.Fire(flow.Dashboard, flow.Logout, false)
	h.redirect(c, next)
}
