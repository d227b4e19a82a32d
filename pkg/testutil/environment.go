// pkg/testutil/environment.go
// DEPENDENCIES: pkg/paths, pkg/filesystem
// PURPOSE: Orchestrate rule tree test environments

package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// FixedTime is the clock value test environments hand to components
var FixedTime = time.Date(2024, 3, 9, 14, 5, 30, 0, time.UTC)

// TestEnvironment provides a rule tree with all dependencies
type TestEnvironment struct {
	Root   string
	FS     afero.Fs
	Layout *paths.Layout
	Type   EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. The state directories
// are not created; call EnsureTree or let the code under test do it.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.Root = "/virtual/rules"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		env.Root = filepath.Join(t.TempDir(), "rules")
		env.FS = filesystem.NewOS()
	}

	if err := env.FS.MkdirAll(env.Root, filesystem.DirPerm); err != nil {
		t.Fatalf("Failed to create rules root: %v", err)
	}

	layout, err := paths.New(env.Root)
	if err != nil {
		t.Fatalf("Failed to create layout: %v", err)
	}
	env.Layout = layout

	return env
}

// Clock returns a function reporting FixedTime
func (env *TestEnvironment) Clock() func() time.Time {
	return func() time.Time { return FixedTime }
}

// EnsureTree creates every state directory
func (env *TestEnvironment) EnsureTree() {
	env.t.Helper()
	for _, dir := range env.Layout.Dirs() {
		if err := env.FS.MkdirAll(dir, filesystem.DirPerm); err != nil {
			env.t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
}

// WriteRule writes content to name in state, creating the directory
func (env *TestEnvironment) WriteRule(state paths.State, name, content string) string {
	env.t.Helper()
	path := env.Layout.RulePath(state, name)
	env.WriteFile(path, content)
	return path
}

// WriteFile writes content to an absolute path, creating parents
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), filesystem.DirPerm); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(env.FS, path, []byte(content), filesystem.FilePerm); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadRule returns the content of name in state
func (env *TestEnvironment) ReadRule(state paths.State, name string) string {
	env.t.Helper()
	return env.ReadFile(env.Layout.RulePath(state, name))
}

// ReadFile returns the content at an absolute path
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := afero.ReadFile(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// Exists reports whether path exists
func (env *TestEnvironment) Exists(path string) bool {
	env.t.Helper()
	ok, err := afero.Exists(env.FS, path)
	if err != nil {
		env.t.Fatalf("Failed to stat %s: %v", path, err)
	}
	return ok
}

// RuleExists reports whether name exists in state
func (env *TestEnvironment) RuleExists(state paths.State, name string) bool {
	env.t.Helper()
	return env.Exists(env.Layout.RulePath(state, name))
}

// WithRuleTree seeds the tree described by tree
func (env *TestEnvironment) WithRuleTree(tree RuleTree) {
	env.t.Helper()
	env.EnsureTree()
	for state, files := range tree {
		for name, content := range files {
			env.WriteRule(state, name, content)
		}
	}
}

// Snapshot captures the full tree content
func (env *TestEnvironment) Snapshot() Snapshot {
	env.t.Helper()
	snap, err := TakeSnapshot(env.FS, env.Root)
	if err != nil {
		env.t.Fatalf("Failed to snapshot %s: %v", env.Root, err)
	}
	return snap
}

// RuleTree maps a state to file names and contents
type RuleTree map[paths.State]map[string]string
