package transport

import (
	"time"

	"hireflow_backend/internal/applications/repository"
	"hireflow_backend/internal/applications/service"
)

type CreateApplicationRequest struct {
	JobID          string `json:"jobId" validate:"required,uuid"`
	CandidateName  string `json:"candidateName" validate:"required,min=2,max=200"`
	CandidateEmail string `json:"candidateEmail" validate:"required,email"`
	CandidatePhone string `json:"candidatePhone" validate:"omitempty,max=32"`
	ResumeFileKey  string `json:"resumeFileKey" validate:"omitempty,max=512"`
}

type MoveStageRequest struct {
	TargetStage string  `json:"targetStage" validate:"required,max=40"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,min=2,max=2000"`
}

type WithdrawRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type AssignRequest struct {
	RecruiterID *string `json:"recruiterId" validate:"omitempty,uuid"`
}

type AddCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

type ListQuery struct {
	JobID      string `form:"jobId" validate:"omitempty,uuid"`
	Stage      string `form:"stage" validate:"omitempty,max=40"`
	Status     string `form:"status" validate:"omitempty,max=40"`
	AssignedTo string `form:"assignedTo" validate:"omitempty,uuid"`
	Search     string `form:"search" validate:"omitempty,max=200"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int    `form:"offset" validate:"omitempty,min=0"`
}

// PortalAuthRequest is the shared-secret pair every portal operation carries.
type PortalAuthRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type PortalWithdrawRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type StageHistoryItem struct {
	Stage        string     `json:"stage"`
	EnteredAt    time.Time  `json:"enteredAt"`
	ExitedAt     *time.Time `json:"exitedAt,omitempty"`
	DurationDays *int       `json:"durationDays,omitempty"`
	MovedBy      string     `json:"movedBy"`
	Notes        *string    `json:"notes,omitempty"`
	Action       string     `json:"action"`
}

type CommentItem struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ApplicationResponse struct {
	ID              string             `json:"id"`
	JobID           string             `json:"jobId"`
	CandidateName   string             `json:"candidateName"`
	CandidateEmail  string             `json:"candidateEmail"`
	CandidatePhone  *string            `json:"candidatePhone,omitempty"`
	Stage           string             `json:"stage"`
	Status          string             `json:"status"`
	ResumeFileKey   *string            `json:"resumeFileKey,omitempty"`
	Score           *int               `json:"score,omitempty"`
	ProfileStrength *string            `json:"profileStrength,omitempty"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	RejectionDate   *time.Time         `json:"rejectionDate,omitempty"`
	AssignedTo      *string            `json:"assignedTo,omitempty"`
	LastActivityAt  time.Time          `json:"lastActivityAt"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	StageHistory    []StageHistoryItem `json:"stageHistory,omitempty"`
	Comments        []CommentItem      `json:"comments,omitempty"`
}

type ListResponse struct {
	Items  []ApplicationResponse `json:"items"`
	Total  int                   `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

type ActivityItem struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type PortalStatusResponse struct {
	Label       string              `json:"label"`
	Status      string              `json:"status"`
	Description string              `json:"description"`
	AppliedAt   time.Time           `json:"appliedAt"`
	LastUpdated time.Time           `json:"lastUpdated"`
	CanWithdraw bool                `json:"canWithdraw"`
	History     []PortalHistoryItem `json:"history"`
}

type PortalHistoryItem struct {
	Label        string     `json:"label"`
	EnteredAt    time.Time  `json:"enteredAt"`
	ExitedAt     *time.Time `json:"exitedAt,omitempty"`
	DurationDays *int       `json:"durationDays,omitempty"`
}

func ToApplicationResponse(app repository.Application, includeDetail bool) ApplicationResponse {
	out := ApplicationResponse{
		ID:              app.ID.String(),
		JobID:           app.JobID.String(),
		CandidateName:   app.CandidateName,
		CandidateEmail:  app.CandidateEmail,
		CandidatePhone:  app.CandidatePhone,
		Stage:           string(app.Stage),
		Status:          string(app.Status),
		ResumeFileKey:   app.ResumeFileKey,
		Score:           app.Score,
		ProfileStrength: app.ProfileStrength,
		RejectionReason: app.RejectionReason,
		RejectionDate:   app.RejectionDate,
		LastActivityAt:  app.LastActivityAt,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
	if app.AssignedTo != nil {
		assigned := app.AssignedTo.String()
		out.AssignedTo = &assigned
	}
	if !includeDetail {
		return out
	}

	out.StageHistory = make([]StageHistoryItem, 0, len(app.StageHistory))
	for _, entry := range app.StageHistory {
		out.StageHistory = append(out.StageHistory, StageHistoryItem{
			Stage:        string(entry.Stage),
			EnteredAt:    entry.EnteredAt,
			ExitedAt:     entry.ExitedAt,
			DurationDays: entry.DurationDays,
			MovedBy:      entry.MovedBy,
			Notes:        entry.Notes,
			Action:       entry.Action,
		})
	}
	out.Comments = make([]CommentItem, 0, len(app.Comments))
	for _, comment := range app.Comments {
		out.Comments = append(out.Comments, CommentItem{
			ID:         comment.ID.String(),
			AuthorName: comment.AuthorName,
			Body:       comment.Body,
			CreatedAt:  comment.CreatedAt,
		})
	}
	return out
}

func ToPortalStatusResponse(view service.PortalStatusView) PortalStatusResponse {
	out := PortalStatusResponse{
		Label:       view.Label,
		Status:      view.Status,
		Description: view.Description,
		AppliedAt:   view.AppliedAt,
		LastUpdated: view.LastUpdated,
		CanWithdraw: view.CanWithdraw,
		History:     make([]PortalHistoryItem, 0, len(view.History)),
	}
	for _, item := range view.History {
		out.History = append(out.History, PortalHistoryItem{
			Label:        item.Label,
			EnteredAt:    item.EnteredAt,
			ExitedAt:     item.ExitedAt,
			DurationDays: item.DurationDays,
		})
	}
	return out
}
