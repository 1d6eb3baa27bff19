package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

const runJournalFile = "runs.json"

type runJournal struct {
	mu   sync.Mutex
	path string
}

// NewRunJournal - creates a JSON run journal under dir
func NewRunJournal(dir string) (interfaces.RunStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	return &runJournal{path: filepath.Join(dir, runJournalFile)}, nil
}

// SaveRun - appends a run to the journal file
func (j *runJournal) SaveRun(run entities.Run) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	runs, err := j.load()
	if err != nil {
		return err
	}
	runs = append(runs, run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run journal: %w", err)
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write run journal: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return fmt.Errorf("failed to replace run journal %s: %w", j.path, err)
	}
	return nil
}

// LoadRuns - loads all journaled runs
func (j *runJournal) LoadRuns() ([]entities.Run, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.load()
}

func (j *runJournal) load() ([]entities.Run, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.Run{}, nil
		}
		return nil, fmt.Errorf("failed to read run journal %s: %w", j.path, err)
	}

	var runs []entities.Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("failed to parse run journal %s: %w", j.path, err)
	}
	return runs, nil
}
