package handler

import (
	"net/http"

	"hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/applications/service"
	"hireflow_backend/internal/applications/transport"
	"hireflow_backend/internal/pipeline"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler serves the internal console surface. Every route here sits
// behind JWT auth; the actor attributed to transitions is the
// authenticated recruiter's display name.
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
	rg.POST("/:id/move", h.MoveStage)
	rg.POST("/:id/reject", h.Reject)
	rg.POST("/:id/withdraw", h.Withdraw)
	rg.PUT("/:id/assignee", h.Assign)
	rg.POST("/:id/comments", h.AddComment)
	rg.GET("/:id/activity", h.ListActivity)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	app, err := h.svc.Create(c.Request.Context(), service.CreateParams{
		JobID:          jobID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CandidatePhone: req.CandidatePhone,
		ResumeFileKey:  req.ResumeFileKey,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.ToApplicationResponse(app, true))
}

func (h *Handler) List(c *gin.Context) {
	var query transport.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	filter := repository.ListFilter{
		Search: query.Search,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	if query.JobID != "" {
		jobID, err := uuid.Parse(query.JobID)
		if err == nil {
			filter.JobID = &jobID
		}
	}
	if query.Stage != "" {
		stage := pipeline.Stage(query.Stage)
		filter.Stage = &stage
	}
	if query.Status != "" {
		status := pipeline.Status(query.Status)
		filter.Status = &status
	}
	if query.AssignedTo != "" {
		assignee, err := uuid.Parse(query.AssignedTo)
		if err == nil {
			filter.AssignedTo = &assignee
		}
	}

	apps, total, err := h.svc.List(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		items = append(items, transport.ToApplicationResponse(app, false))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	httpkit.OK(c, transport.ListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: filter.Offset,
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	app, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToApplicationResponse(app, true))
}

func (h *Handler) MoveStage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	app, err := h.svc.MoveToStage(c.Request.Context(), id,
		pipeline.Stage(req.TargetStage), actorName(c), req.Notes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToApplicationResponse(app, true))
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	app, err := h.svc.Reject(c.Request.Context(), id, req.Reason, actorName(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToApplicationResponse(app, true))
}

func (h *Handler) Withdraw(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	app, err := h.svc.Withdraw(c.Request.Context(), id, req.Reason, actorName(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToApplicationResponse(app, true))
}

func (h *Handler) Assign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var recruiterID *uuid.UUID
	if req.RecruiterID != nil {
		parsed, err := uuid.Parse(*req.RecruiterID)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		recruiterID = &parsed
	}

	if err := h.svc.Assign(c.Request.Context(), id, recruiterID, actorName(c)); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"status": "assigned"})
}

func (h *Handler) AddComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), id, actorName(c), req.Body)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.CommentItem{
		ID:         comment.ID.String(),
		AuthorName: comment.AuthorName,
		Body:       comment.Body,
		CreatedAt:  comment.CreatedAt,
	})
}

func (h *Handler) ListActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entries, err := h.svc.ListActivity(c.Request.Context(), id, 50)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.ActivityItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, transport.ActivityItem{
			ID:          entry.ID.String(),
			Action:      entry.Action,
			Description: entry.Description,
			Metadata:    entry.Metadata,
			CreatedAt:   entry.CreatedAt,
		})
	}
	httpkit.OK(c, items)
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
