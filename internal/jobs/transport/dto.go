package transport

import (
	"time"

	"hireflow_backend/internal/jobs/repository"
)

type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Department  string `json:"department" validate:"omitempty,max=100"`
	Location    string `json:"location" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"omitempty,max=10000"`
}

type SetOpenRequest struct {
	IsOpen *bool `json:"isOpen" validate:"required"`
}

type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	IsOpen      bool      `json:"isOpen"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToJobResponse(job repository.Job) JobResponse {
	return JobResponse{
		ID:          job.ID.String(),
		Title:       job.Title,
		Department:  job.Department,
		Location:    job.Location,
		Description: job.Description,
		IsOpen:      job.IsOpen,
		CreatedBy:   job.CreatedBy,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}
