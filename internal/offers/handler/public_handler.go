package handler

import (
	"net/http"

	"hireflow_backend/internal/offers/service"
	"hireflow_backend/internal/offers/transport"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the candidate-facing offer routes on the portal,
// keyed by the same application token the status page uses.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

func NewPublic(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications/:token/offer", h.View)
	rg.POST("/applications/:token/offer/respond", h.Respond)
}

func (h *PublicHandler) View(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	offer, err := h.svc.PortalViewOffer(c.Request.Context(), c.Param("token"), email)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPortalOfferResponse(offer))
}

func (h *PublicHandler) Respond(c *gin.Context) {
	var req transport.PortalRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	offer, err := h.svc.PortalRespond(c.Request.Context(), c.Param("token"), req.Email, req.Response, req.Details)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPortalOfferResponse(offer))
}
