package handler

import (
	"net/http"

	"hireflow_backend/internal/auth/service"
	"hireflow_backend/internal/auth/transport"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	accessToken, profile, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LoginResponse{
		AccessToken: accessToken,
		Profile:     toProfileResponse(profile),
	})
}

func (h *Handler) Register(c *gin.Context) {
	var req transport.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	profile, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.FullName, req.Roles)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, toProfileResponse(profile))
}

func (h *Handler) GetMe(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	profile, err := h.svc.GetMe(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, toProfileResponse(profile))
}

func (h *Handler) ListRecruiters(c *gin.Context) {
	profiles, err := h.svc.ListRecruiters(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]transport.ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, toProfileResponse(profile))
	}
	httpkit.OK(c, out)
}

func toProfileResponse(profile service.Profile) transport.ProfileResponse {
	return transport.ProfileResponse{
		ID:          profile.ID.String(),
		Email:       profile.Email,
		FullName:    profile.FullName,
		Roles:       profile.Roles,
		LastLoginAt: profile.LastLoginAt,
		CreatedAt:   profile.CreatedAt,
	}
}
