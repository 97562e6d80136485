package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/internal/interface/middleware"
	"github.com/oksasatya/urex-bootcamp/pkg/response"
	"github.com/oksasatya/urex-bootcamp/pkg/validation"
)

type RegistrationHandler struct {
	Svc    Registrar
	Logger *logrus.Logger
}

func NewRegistrationHandler(svc Registrar, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{Svc: svc, Logger: logger}
}

// Submit POST /api/registrations
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var in application.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in.IP = middleware.ClientIP(c)
	in.UserAgent = c.GetHeader("User-Agent")

	res, err := h.Svc.Submit(c.Request.Context(), in)
	if err != nil {
		var verr *application.ValidationError
		if errors.As(err, &verr) {
			response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Details)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, application.SubmitFailedMessage, nil)
		return
	}
	response.Success(c, http.StatusCreated, res, "registration submitted", gin.H{"label": application.RecommendationLabel})
}
