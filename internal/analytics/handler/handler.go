package handler

import (
	"hireflow_backend/internal/analytics/service"
	"hireflow_backend/internal/analytics/transport"
	"hireflow_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler serves the console analytics routes.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/overview", h.Overview)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.svc.GetOverview(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToOverviewResponse(overview))
}
