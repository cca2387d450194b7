package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskResumeScoring = "scoring.resume"

const TaskStaleApplicationSweep = "applications.stale.sweep"

type ResumeScoringPayload struct {
	ApplicationID string `json:"applicationId"`
}

func NewResumeScoringTask(payload ResumeScoringPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskResumeScoring, data), nil
}

func ParseResumeScoringPayload(task *asynq.Task) (ResumeScoringPayload, error) {
	var payload ResumeScoringPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ResumeScoringPayload{}, err
	}
	return payload, nil
}

// NewStaleApplicationSweepTask has no payload; the worker reads the
// cutoff from its own configuration at run time.
func NewStaleApplicationSweepTask() *asynq.Task {
	return asynq.NewTask(TaskStaleApplicationSweep, nil)
}
