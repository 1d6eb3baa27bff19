package entities

import "time"

// Run represents one execution of a scenario against a driver
type Run struct {
	ID           string        `json:"id"`
	Scenario     string        `json:"scenario"`
	Driver       string        `json:"driver"`
	Status       RunStatus     `json:"status"`
	Error        string        `json:"error,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at,omitempty"`
}

// RunStatus represents the status of a run
type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Duration returns how long the run took, zero while it is still running
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
