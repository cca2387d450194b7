package handler

import (
	"net/http"

	"hireflow_backend/internal/offers/repository"
	"hireflow_backend/internal/offers/service"
	"hireflow_backend/internal/offers/transport"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler serves the internal console offer routes.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/send", h.Send)
	rg.POST("/:id/respond", h.Respond)
	rg.PATCH("/:id/status", h.SetStatus)
}

// RegisterApplicationRoutes mounts the per-application offer listing.
func (h *Handler) RegisterApplicationRoutes(rg *gin.RouterGroup) {
	rg.GET("/:id/offers", h.ListByApplication)
}

func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	attachment := repository.Attachment{Kind: repository.AttachmentNone}
	if req.Attachment != nil {
		if msg := req.Attachment.Validate(); msg != "" {
			httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, msg)
			return
		}
		attachment = repository.Attachment{
			Kind:     req.Attachment.Kind,
			Name:     req.Attachment.Name,
			URL:      req.Attachment.URL,
			MimeType: req.Attachment.MimeType,
		}
	}

	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	offer, err := h.svc.Create(c.Request.Context(), service.CreateParams{
		ApplicationID:     applicationID,
		PositionTitle:     req.PositionTitle,
		SalaryAmountCents: req.SalaryAmountCents,
		SalaryCurrency:    req.SalaryCurrency,
		StartDate:         req.StartDate,
		ExpiresAt:         req.ExpiresAt,
		Attachment:        attachment,
		SendImmediately:   req.SendImmediately,
		Actor:             actorName(c),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToOfferResponse(offer))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	offer, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToOfferResponse(offer))
}

func (h *Handler) Send(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	offer, err := h.svc.Send(c.Request.Context(), id, actorName(c))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToOfferResponse(offer))
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	offer, err := h.svc.Respond(c.Request.Context(), id, req.Response, actorName(c), req.Details)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToOfferResponse(offer))
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	offer, err := h.svc.SetStatus(c.Request.Context(), id,
		repository.Status(req.Status), actorName(c), req.Notes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToOfferResponse(offer))
}

func (h *Handler) ListByApplication(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	offers, err := h.svc.ListByApplication(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	items := make([]transport.OfferResponse, 0, len(offers))
	for _, offer := range offers {
		items = append(items, transport.ToOfferResponse(offer))
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
