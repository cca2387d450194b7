package handler

import (
	"context"
	"net/http"

	"hireflow_backend/internal/adapters/storage"
	"hireflow_backend/platform/httpkit"
	"hireflow_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// ResumePresigner issues presigned upload URLs for resume documents.
type ResumePresigner interface {
	PresignUpload(ctx context.Context, contentType string, sizeBytes int64) (*storage.PresignedUpload, error)
}

// UploadHandler serves presigned resume upload URLs to the console.
type UploadHandler struct {
	store ResumePresigner
	val   *validator.Validator
}

func NewUpload(store ResumePresigner, val *validator.Validator) *UploadHandler {
	return &UploadHandler{store: store, val: val}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume", h.PresignResume)
}

type presignResumeRequest struct {
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

func (h *UploadHandler) PresignResume(c *gin.Context) {
	var req presignResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	presigned, err := h.store.PresignUpload(c.Request.Context(), req.ContentType, req.SizeBytes)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	httpkit.OK(c, presigned)
}
