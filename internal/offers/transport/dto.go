package transport

import (
	"time"

	"hireflow_backend/internal/offers/repository"
)

// AttachmentRequest is the tagged attachment record. Kind "reference"
// requires a name and URL; "none" forbids them.
type AttachmentRequest struct {
	Kind     string `json:"kind" validate:"required,oneof=none reference"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	URL      string `json:"url" validate:"omitempty,url,max=1024"`
	MimeType string `json:"mimeType" validate:"omitempty,max=128"`
}

// Validate enforces the cross-field rules a struct tag cannot express.
func (a AttachmentRequest) Validate() string {
	switch a.Kind {
	case repository.AttachmentReference:
		if a.Name == "" || a.URL == "" {
			return "attachment of kind reference requires name and url"
		}
	case repository.AttachmentNone:
		if a.Name != "" || a.URL != "" || a.MimeType != "" {
			return "attachment of kind none must not carry fields"
		}
	}
	return ""
}

type CreateOfferRequest struct {
	ApplicationID     string             `json:"applicationId" validate:"required,uuid"`
	PositionTitle     string             `json:"positionTitle" validate:"required,min=2,max=200"`
	SalaryAmountCents *int64             `json:"salaryAmountCents" validate:"omitempty,min=0"`
	SalaryCurrency    string             `json:"salaryCurrency" validate:"omitempty,len=3"`
	StartDate         *time.Time         `json:"startDate"`
	ExpiresAt         *time.Time         `json:"expiresAt"`
	Attachment        *AttachmentRequest `json:"attachment"`
	SendImmediately   bool               `json:"sendImmediately"`
}

type RespondRequest struct {
	Response string `json:"response" validate:"required,oneof=accept decline"`
	Details  string `json:"details" validate:"omitempty,max=2000"`
}

type PortalRespondRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Response string `json:"response" validate:"required,oneof=accept decline"`
	Details  string `json:"details" validate:"omitempty,max=2000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=negotiating expired withdrawn rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

type NegotiationEntryItem struct {
	Date    time.Time `json:"date"`
	Action  string    `json:"action"`
	Details string    `json:"details,omitempty"`
	By      string    `json:"by"`
}

type AttachmentResponse struct {
	Kind     string `json:"kind"`
	Name     string `json:"name,omitempty"`
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

type OfferResponse struct {
	ID                 string                 `json:"id"`
	ApplicationID      string                 `json:"applicationId"`
	Status             string                 `json:"status"`
	PositionTitle      string                 `json:"positionTitle"`
	SalaryAmountCents  *int64                 `json:"salaryAmountCents,omitempty"`
	SalaryCurrency     string                 `json:"salaryCurrency,omitempty"`
	StartDate          *time.Time             `json:"startDate,omitempty"`
	ExpiresAt          *time.Time             `json:"expiresAt,omitempty"`
	Attachment         AttachmentResponse     `json:"attachment"`
	SentAt             *time.Time             `json:"sentAt,omitempty"`
	ViewedAt           *time.Time             `json:"viewedAt,omitempty"`
	ResponseDate       *time.Time             `json:"responseDate,omitempty"`
	NegotiationHistory []NegotiationEntryItem `json:"negotiationHistory"`
	CreatedBy          string                 `json:"createdBy"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

// PortalOfferResponse hides console-only fields from the candidate.
type PortalOfferResponse struct {
	Status            string             `json:"status"`
	PositionTitle     string             `json:"positionTitle"`
	SalaryAmountCents *int64             `json:"salaryAmountCents,omitempty"`
	SalaryCurrency    string             `json:"salaryCurrency,omitempty"`
	StartDate         *time.Time         `json:"startDate,omitempty"`
	ExpiresAt         *time.Time         `json:"expiresAt,omitempty"`
	Attachment        AttachmentResponse `json:"attachment"`
	SentAt            *time.Time         `json:"sentAt,omitempty"`
}

func ToOfferResponse(offer repository.Offer) OfferResponse {
	history := make([]NegotiationEntryItem, 0, len(offer.NegotiationHistory))
	for _, entry := range offer.NegotiationHistory {
		history = append(history, NegotiationEntryItem{
			Date:    entry.Date,
			Action:  entry.Action,
			Details: entry.Details,
			By:      entry.By,
		})
	}
	return OfferResponse{
		ID:                 offer.ID.String(),
		ApplicationID:      offer.ApplicationID.String(),
		Status:             string(offer.Status),
		PositionTitle:      offer.PositionTitle,
		SalaryAmountCents:  offer.SalaryAmountCents,
		SalaryCurrency:     offer.SalaryCurrency,
		StartDate:          offer.StartDate,
		ExpiresAt:          offer.ExpiresAt,
		Attachment:         AttachmentResponse(offer.Attachment),
		SentAt:             offer.SentAt,
		ViewedAt:           offer.ViewedAt,
		ResponseDate:       offer.ResponseDate,
		NegotiationHistory: history,
		CreatedBy:          offer.CreatedBy,
		CreatedAt:          offer.CreatedAt,
		UpdatedAt:          offer.UpdatedAt,
	}
}

func ToPortalOfferResponse(offer repository.Offer) PortalOfferResponse {
	return PortalOfferResponse{
		Status:            string(offer.Status),
		PositionTitle:     offer.PositionTitle,
		SalaryAmountCents: offer.SalaryAmountCents,
		SalaryCurrency:    offer.SalaryCurrency,
		StartDate:         offer.StartDate,
		ExpiresAt:         offer.ExpiresAt,
		Attachment:        AttachmentResponse(offer.Attachment),
		SentAt:            offer.SentAt,
	}
}
