// Package store owns the on-disk rule tree: it creates the state
// directories, enumerates rule files and resolves their paths. It performs no
// content validation.
package store

import (
	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/spf13/afero"
)

// RuleStore gives access to the rule tree described by a Layout.
// Nothing is cached; every call queries the filesystem.
type RuleStore struct {
	fs     afero.Fs
	layout *paths.Layout
}

// New creates a RuleStore
func New(fsys afero.Fs, layout *paths.Layout) *RuleStore {
	return &RuleStore{fs: fsys, layout: layout}
}

// FS returns the underlying filesystem
func (s *RuleStore) FS() afero.Fs { return s.fs }

// Layout returns the tree layout
func (s *RuleStore) Layout() *paths.Layout { return s.layout }

// Ensure creates any missing state directory. It is idempotent.
func (s *RuleStore) Ensure() error {
	logger := logging.GetLogger("store")
	for _, dir := range s.layout.Dirs() {
		if err := filesystem.EnsureDir(s.fs, dir); err != nil {
			return err
		}
	}
	logger.Trace().Str("root", s.layout.Root()).Msg("Rule tree ensured")
	return nil
}

// ListNames returns the sorted rule file names in state. A state directory
// that does not exist yet is reported as empty.
func (s *RuleStore) ListNames(state paths.State) ([]string, error) {
	if !state.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown rule state %q", state)
	}
	return filesystem.ListFiles(s.fs, s.layout.Dir(state), s.layout.HasExtension)
}

// Path resolves name in state
func (s *RuleStore) Path(state paths.State, name string) (string, error) {
	if err := paths.ValidateRuleName(name); err != nil {
		return "", err
	}
	return s.layout.RulePath(state, name), nil
}

// Exists reports whether name is a regular file in state
func (s *RuleStore) Exists(state paths.State, name string) (bool, error) {
	path, err := s.Path(state, name)
	if err != nil {
		return false, err
	}
	return filesystem.IsRegular(s.fs, path), nil
}

// Read returns the content of name in state
func (s *RuleStore) Read(state paths.State, name string) ([]byte, error) {
	path, err := s.Path(state, name)
	if err != nil {
		return nil, err
	}
	return filesystem.ReadFile(s.fs, path)
}

// ReadPath returns the content of an arbitrary file of the tree
func (s *RuleStore) ReadPath(path string) ([]byte, error) {
	return filesystem.ReadFile(s.fs, path)
}

// LocalExists reports whether the quick-start file exists
func (s *RuleStore) LocalExists() bool {
	return filesystem.IsRegular(s.fs, s.layout.LocalPath())
}
