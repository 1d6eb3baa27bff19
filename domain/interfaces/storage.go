package interfaces

import "pom_automation/domain/entities"

// RunStore persists the journal of scenario runs
type RunStore interface {
	// SaveRun appends a finished run to the journal
	SaveRun(run entities.Run) error

	// LoadRuns returns all stored runs, oldest first
	LoadRuns() ([]entities.Run, error)
}
