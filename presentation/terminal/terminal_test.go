package terminal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pom_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the pom command with an isolated journal and no env file
func execute(t *testing.T, journalDir, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"POM_DRIVER", "POM_APP_URL", "POM_LOCATORS_FILE", "POM_WAIT_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))

	base := []string{
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--journal-dir", journalDir,
		"--timeout", "500ms",
		"--log-level", "error",
	}
	root.SetArgs(append(args[:1:1], append(base, args[1:]...)...))

	err := root.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "echo")
	assert.Contains(t, out, "login-invalid")
}

func TestRunThenHistory(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "", "run", "echo", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS echo")
	assert.Contains(t, out, "PASS login")

	out, err = execute(t, dir, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "SCENARIO")
	assert.Contains(t, out, "echo")
	assert.Contains(t, out, "passed")

	_, err = os.Stat(filepath.Join(dir, "runs.json"))
	assert.NoError(t, err)
}

func TestRun_AllScenariosByDefault(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "run")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "PASS "))
}

func TestRun_FailingScenarioSetsError(t *testing.T) {
	dir := t.TempDir()
	locators := filepath.Join(t.TempDir(), "locators.yaml")
	require.NoError(t, os.WriteFile(locators, []byte(`
echo:
  saveButton:
    strategy: accessibility id
    value: renamedSaveBtn
`), 0o644))

	out, err := execute(t, dir, "", "run", "--locators", locators, "echo", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 scenarios failed")
	assert.Contains(t, out, "FAIL echo")
	assert.Contains(t, out, "saveButton")
	assert.Contains(t, out, "PASS login")
}

func TestRun_UnknownScenarioAndDriver(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "run", "checkout")
	require.ErrorIs(t, err, entities.ErrUnknownScenario)

	_, err = execute(t, t.TempDir(), "", "run", "--driver", "espresso", "echo")
	require.ErrorIs(t, err, entities.ErrUnknownDriver)
}

func TestHistory_Empty(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs yet")
}

func TestShell(t *testing.T) {
	input := "help\nlist\nrun\nrun echo\nhistory\nbogus\nquit\nrun login\n"
	out, err := execute(t, t.TempDir(), input, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Type 'help'")
	assert.Contains(t, out, "login-invalid")
	assert.Contains(t, out, "Usage: run <name>")
	assert.Contains(t, out, "PASS echo")
	assert.Contains(t, out, "passed")
	assert.Contains(t, out, `Unknown command "bogus"`)
	assert.Contains(t, out, "Goodbye!")
	assert.NotContains(t, out, "PASS login", "nothing runs after quit")
}

func TestShell_EndOfInput(t *testing.T) {
	out, err := execute(t, t.TempDir(), "run echo", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS echo")
}

func TestRun_EmptyDriverFlagRecordsSimulator(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, dir, "", "run", "--driver", "", "echo")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "runs.json"))
	require.NoError(t, err)
	var runs []entities.Run
	require.NoError(t, json.Unmarshal(data, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "sim", runs[0].Driver)
}
