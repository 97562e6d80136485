package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
	"github.com/oksasatya/urex-bootcamp/pkg/response"
)

type DashboardHandler struct {
	Svc    DashboardReader
	Logger *logrus.Logger
}

func NewDashboardHandler(svc DashboardReader, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Dashboard GET /api/admin/dashboard[?page=&size=]
// Stats always cover every registration; page and size only narrow the list.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	d, err := h.Svc.Load(ctx)
	if err != nil {
		helpers.LogError(h.Logger, "dashboard load failed", err, nil)
		response.Error[any](c, http.StatusInternalServerError, "failed to load registrations", nil)
		return
	}

	if c.Query("page") == "" && c.Query("size") == "" {
		response.Success(c, http.StatusOK, d, "dashboard", nil)
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))
	p, err := h.Svc.Page(ctx, page, size)
	if err != nil {
		helpers.LogError(h.Logger, "dashboard page failed", err, logrus.Fields{"page": page, "size": size})
		response.Error[any](c, http.StatusInternalServerError, "failed to load registrations", nil)
		return
	}
	response.Success(c, http.StatusOK, application.Dashboard{Registrations: p.Registrations, Stats: d.Stats}, "dashboard",
		gin.H{"page": p.Page, "size": p.Size, "total": p.Total})
}

// Export GET /api/admin/registrations/export?format=csv|xlsx
func (h *DashboardHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	d, err := h.Svc.Load(ctx)
	if err != nil {
		helpers.LogError(h.Logger, "export load failed", err, nil)
		response.Error[any](c, http.StatusInternalServerError, "failed to load registrations", nil)
		return
	}
	exp, err := h.Svc.Export(ctx, d.Registrations, c.Query("format"))
	if err != nil {
		if errors.Is(err, application.ErrUnknownExportFormat) {
			response.Error[any](c, http.StatusBadRequest, "format must be csv or xlsx", nil)
			return
		}
		helpers.LogError(h.Logger, "export failed", err, nil)
		response.Error[any](c, http.StatusInternalServerError, "export failed", nil)
		return
	}
	writeAttachment(c, exp)
}

// Search GET /api/admin/registrations/search?q=&size=
func (h *DashboardHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		helpers.LogError(h.Logger, "registration search failed", err, nil)
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

func writeAttachment(c *gin.Context, exp *application.Export) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exp.Filename))
	c.Data(http.StatusOK, exp.ContentType, exp.Body)
}
