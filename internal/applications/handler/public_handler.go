package handler

import (
	"net/http"

	"hireflow_backend/internal/applications/service"
	"hireflow_backend/internal/applications/transport"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the candidate portal. Routes are unauthenticated but
// token-scoped: every operation carries the portal token in the path and the
// candidate's email as shared secret, verified against the target resource.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

func NewPublic(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applications/:token/status", h.Status)
	rg.POST("/applications/:token/withdraw", h.Withdraw)
}

func (h *PublicHandler) Status(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	view, err := h.svc.PortalStatus(c.Request.Context(), c.Param("token"), email)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToPortalStatusResponse(view))
}

func (h *PublicHandler) Withdraw(c *gin.Context) {
	var req transport.PortalWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.PortalWithdraw(c.Request.Context(), c.Param("token"), req.Email, req.Reason); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "withdrawn"})
}
