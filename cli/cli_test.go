package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes moviectl against a store in dataDir and returns stdout.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--data-dir", dataDir, "--name", "cli"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "moviectl", cmd.Use)

	for _, name := range []string{"add", "list", "find", "count", "purge", "import"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestScenario(t *testing.T) {
	dataDir := t.TempDir()

	out, err := run(t, dataDir, "add", "--title", "Casablanca", "--year", "1943")
	require.NoError(t, err)
	assert.Contains(t, out, "attempted: 1")
	assert.Contains(t, out, "stored: 1")

	_, err = run(t, dataDir, "add", "--title", "Boyhood", "--year", "2014")
	require.NoError(t, err)

	out, err = run(t, dataDir, "count")
	require.NoError(t, err)
	assert.Equal(t, "count: 2\n", out)

	out, err = run(t, dataDir, "find", "--year", "1943")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "(Casablanca|1943|"))

	out, err = run(t, dataDir, "--format", "json", "list")
	require.NoError(t, err)
	var movies []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &movies))
	assert.Len(t, movies, 2)

	_, err = run(t, dataDir, "purge")
	require.NoError(t, err)

	out, err = run(t, dataDir, "--format", "json", "count")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 0}`, out)

	_, err = os.Stat(filepath.Join(dataDir, "cli.db"))
	assert.NoError(t, err)
}

func TestImport(t *testing.T) {
	dataDir := t.TempDir()
	file := filepath.Join(t.TempDir(), "movies.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`movies:
  - title: Casablanca
    year: 1943
  - title: Boyhood
    year: 2014
    uuid: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
  - title: Boyhood again
    year: 2014
    uuid: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
`), 0644))

	out, err := run(t, dataDir, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "attempted: 3")
	assert.Contains(t, out, "stored: 2")

	out, err = run(t, dataDir, "find", "--year", "2014")
	require.NoError(t, err)
	assert.Contains(t, out, "(Boyhood|2014|6ba7b810-9dad-11d1-80b4-00c04fd430c8)")
}

func TestCommandErrors(t *testing.T) {
	dataDir := t.TempDir()
	badFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badFile, []byte("movies:\n  - title: X\n    rating: 5\n"), 0644))

	tests := []struct {
		name     string
		args     []string
		errorMsg string
	}{
		{name: "invalid format", args: []string{"--format", "xml", "count"}, errorMsg: "invalid format"},
		{name: "year out of range", args: []string{"add", "--title", "Old", "--year", "12"}, errorMsg: "year must be between"},
		{name: "missing flag", args: []string{"find"}, errorMsg: "required flag"},
		{name: "unknown yaml field", args: []string{"import", badFile}, errorMsg: "rating"},
		{name: "missing file", args: []string{"import", filepath.Join(dataDir, "nope.yaml")}, errorMsg: "read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, dataDir, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestInvalidStoreName(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--data-dir", t.TempDir(), "--name", "../x", "count"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid store name")
}
