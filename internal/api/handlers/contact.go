package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lessensdelharmonie/harmonie/internal/api/dto/common"
	"github.com/lessensdelharmonie/harmonie/internal/api/middleware"
	"github.com/lessensdelharmonie/harmonie/internal/logging"
	"github.com/lessensdelharmonie/harmonie/internal/service"
	"github.com/lessensdelharmonie/harmonie/internal/utils"
)

type ContactHandler struct {
	contactService *service.ContactService
	logger         *logging.Logger
}

func NewContactHandler(contactService *service.ContactService, logger *logging.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit validates a contact form payload and records it when accepted
func (h *ContactHandler) Submit(c *gin.Context) {
	body, err := middleware.RawBody(c)
	if err != nil {
		utils.HandleAPIError(c, h.logger, err, http.StatusBadRequest, common.MessageBadRequest)
		return
	}

	result, err := h.contactService.Submit(c.Request.Context(), body, middleware.LocaleFrom(c))
	switch {
	case err == nil:
		utils.HandleJSON(c, http.StatusOK, result)
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrMalformedPayload):
		utils.HandleJSON(c, http.StatusBadRequest, result)
	default:
		h.logger.LogHTTPError(c.Request.Method, c.Request.URL.Path, utils.GetRealIP(c), http.StatusInternalServerError, result.Message, err)
		utils.ReportError(c, err)
		utils.HandleJSON(c, http.StatusInternalServerError, result)
	}
}

// Schema returns the field rules of the contact form in the negotiated locale
func (h *ContactHandler) Schema(c *gin.Context) {
	utils.HandleSuccess(c, h.contactService.Schema(middleware.LocaleFrom(c)))
}
