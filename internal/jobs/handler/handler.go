package handler

import (
	"net/http"

	"hireflow_backend/internal/jobs/service"
	"hireflow_backend/internal/jobs/transport"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler serves the console job routes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/open", h.SetOpen)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	job, err := h.svc.Create(c.Request.Context(), service.CreateParams{
		Title:       req.Title,
		Department:  req.Department,
		Location:    req.Location,
		Description: req.Description,
		Actor:       actorName(c),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToJobResponse(job))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	job, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToJobResponse(job))
}

func (h *Handler) List(c *gin.Context) {
	openOnly := c.Query("open") == "true"
	jobs, err := h.svc.List(c.Request.Context(), openOnly)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, transport.ToJobResponse(job))
	}
	httpkit.OK(c, items)
}

func (h *Handler) SetOpen(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.SetOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	job, err := h.svc.SetOpen(c.Request.Context(), id, *req.IsOpen, actorName(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToJobResponse(job))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return uuid.Nil, false
	}
	return id, true
}

func actorName(c *gin.Context) string {
	identity := httpkit.GetIdentity(c)
	if !identity.IsAuthenticated() {
		return "console"
	}
	return identity.ActorName()
}
