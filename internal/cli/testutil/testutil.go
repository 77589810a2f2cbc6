// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/rowql/internal/cli/output"
)

// StatesJSON is a small table used across CLI tests.
const StatesJSON = `[
	{"state": "California", "region": "West", "pop": 39000000},
	{"state": "Texas", "region": "South", "pop": 29000000},
	{"state": "Ohio", "region": "Midwest", "pop": 11000000}
]`

// SetupTestProject creates a temporary directory holding states.json and
// returns the directory and the table path.
func SetupTestProject(t *testing.T) (dir, table string) {
	t.Helper()

	dir = t.TempDir()
	table = filepath.Join(dir, "states.json")
	if err := os.WriteFile(table, []byte(StatesJSON), 0o600); err != nil {
		t.Fatalf("failed to create states.json: %v", err)
	}
	return dir, table
}

// WriteConfig writes rowql.yaml into dir.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rowql.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to create rowql.yaml: %v", err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified format and TTY state.
func NewTestRenderer(format output.Format, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, format),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
