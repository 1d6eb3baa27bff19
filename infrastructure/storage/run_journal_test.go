package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunJournal_EmptyWhenMissing(t *testing.T) {
	store, err := NewRunJournal(filepath.Join(t.TempDir(), "nested", "dir"))
	require.NoError(t, err)

	runs, err := store.LoadRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunJournal_AppendsRuns(t *testing.T) {
	store, err := NewRunJournal(t.TempDir())
	require.NoError(t, err)

	started := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	first := entities.Run{
		ID:         "run-1",
		Scenario:   "echo",
		Driver:     "sim",
		Status:     entities.RunStatusPassed,
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}
	first.Interactions = []entities.Interaction{
		{Type: entities.InteractionTap, Locator: entities.ByAccessibilityID("Echo Box")},
	}
	second := entities.Run{
		ID:        "run-2",
		Scenario:  "login",
		Status:    entities.RunStatusFailed,
		Error:     "UI element not found",
		StartedAt: started.Add(time.Minute),
	}

	require.NoError(t, store.SaveRun(first))
	require.NoError(t, store.SaveRun(second))

	runs, err := store.LoadRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, time.Second, runs[0].Duration())
	assert.Equal(t, first.Interactions, runs[0].Interactions)
	assert.Equal(t, entities.RunStatusFailed, runs[1].Status)
	assert.Equal(t, "UI element not found", runs[1].Error)
}

func TestRunJournal_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, runJournalFile), []byte("{not json"), 0644))

	store, err := NewRunJournal(dir)
	require.NoError(t, err)

	_, err = store.LoadRuns()
	require.Error(t, err)
	require.Error(t, store.SaveRun(entities.Run{ID: "x"}))
}

func TestRunJournal_WriteFailureIsWrapped(t *testing.T) {
	dir := t.TempDir()
	store, err := NewRunJournal(dir)
	require.NoError(t, err)

	// a directory where the temporary file goes makes the write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, runJournalFile+".tmp"), 0755))

	err = store.SaveRun(entities.Run{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write run journal")
}

func TestRunJournal_ReadFailureIsWrapped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, runJournalFile), 0755))

	store, err := NewRunJournal(dir)
	require.NoError(t, err)

	_, err = store.LoadRuns()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read run journal")
}
