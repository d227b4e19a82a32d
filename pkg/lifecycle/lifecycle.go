// Package lifecycle moves named rule files between the source, enabled and
// disabled states.
package lifecycle

import (
	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/store"
)

// Options configures a Manager
type Options struct {
	DryRun     bool
	UniqueSIDs bool
}

// Manager performs state transitions on the rule tree
type Manager struct {
	store *store.RuleStore
	opts  Options
}

// New creates a Manager
func New(s *store.RuleStore, opts Options) *Manager {
	return &Manager{store: s, opts: opts}
}

// Transition describes one state change
type Transition struct {
	Name   string
	From   paths.State
	To     paths.State
	Action string
	Source string
	Target string
	DryRun bool
}

// Listing holds the sorted rule names of each lifecycle state
type Listing struct {
	Source   []string
	Enabled  []string
	Disabled []string
}

// Enable copies source/name to enabled/name, replacing any previous copy.
// The source file is kept as the canonical copy.
func (m *Manager) Enable(name string) (*Transition, error) {
	logger := logging.GetLogger("lifecycle")

	t, err := m.enable(name)
	logging.LogOutcome(logger, "enable", name, m.opts.DryRun, err)
	return t, err
}

func (m *Manager) enable(name string) (*Transition, error) {
	src, err := m.store.Path(paths.StateSource, name)
	if err != nil {
		return nil, err
	}
	dst, err := m.store.Path(paths.StateEnabled, name)
	if err != nil {
		return nil, err
	}

	if ok, _ := m.store.Exists(paths.StateSource, name); !ok {
		return nil, errors.New(errors.ErrRuleNotFound, "rule not found").
			WithDetails(map[string]interface{}{"rule": name, "state": string(paths.StateSource)})
	}

	if m.opts.UniqueSIDs {
		if err := m.checkSIDs(name); err != nil {
			return nil, err
		}
	}

	t := &Transition{
		Name:   name,
		From:   paths.StateSource,
		To:     paths.StateEnabled,
		Action: "copy",
		Source: src,
		Target: dst,
		DryRun: m.opts.DryRun,
	}
	if m.opts.DryRun {
		return t, nil
	}

	if err := m.store.Ensure(); err != nil {
		return nil, err
	}
	if err := filesystem.CopyFile(m.store.FS(), src, dst); err != nil {
		return nil, err
	}
	return t, nil
}

// checkSIDs rejects name when one of its sids is already claimed by
// another enabled file
func (m *Manager) checkSIDs(name string) error {
	data, err := m.store.Read(paths.StateSource, name)
	if err != nil {
		return err
	}
	candidate := directive.ScanRules(name, data)

	enabled, err := m.store.ListNames(paths.StateEnabled)
	if err != nil {
		return err
	}

	idx := directive.SIDIndex{}
	idx.Add(name, candidate)
	for _, other := range enabled {
		if other == name {
			continue
		}
		content, err := m.store.Read(paths.StateEnabled, other)
		if err != nil {
			return err
		}
		scan := directive.ScanRules(other, content)
		idx.Add(other, scan)
	}

	return directive.ConflictError(idx.Conflicts())
}

// Disable moves enabled/name to disabled/name, replacing any previous copy
func (m *Manager) Disable(name string) (*Transition, error) {
	logger := logging.GetLogger("lifecycle")

	t, err := m.disable(name)
	logging.LogOutcome(logger, "disable", name, m.opts.DryRun, err)
	return t, err
}

func (m *Manager) disable(name string) (*Transition, error) {
	src, err := m.store.Path(paths.StateEnabled, name)
	if err != nil {
		return nil, err
	}
	dst, err := m.store.Path(paths.StateDisabled, name)
	if err != nil {
		return nil, err
	}

	if ok, _ := m.store.Exists(paths.StateEnabled, name); !ok {
		return nil, errors.New(errors.ErrRuleNotEnabled, "rule not enabled").
			WithDetails(map[string]interface{}{"rule": name, "state": string(paths.StateEnabled)})
	}

	t := &Transition{
		Name:   name,
		From:   paths.StateEnabled,
		To:     paths.StateDisabled,
		Action: "move",
		Source: src,
		Target: dst,
		DryRun: m.opts.DryRun,
	}
	if m.opts.DryRun {
		return t, nil
	}

	if err := m.store.Ensure(); err != nil {
		return nil, err
	}
	if err := filesystem.MoveFile(m.store.FS(), src, dst); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the rule names of every lifecycle state. It never mutates.
func (m *Manager) List() (*Listing, error) {
	logger := logging.GetLogger("lifecycle")

	listing := &Listing{}
	targets := map[paths.State]*[]string{
		paths.StateSource:   &listing.Source,
		paths.StateEnabled:  &listing.Enabled,
		paths.StateDisabled: &listing.Disabled,
	}
	for _, state := range paths.LifecycleStates {
		names, err := m.store.ListNames(state)
		if err != nil {
			return nil, err
		}
		*targets[state] = names
	}

	logger.Debug().
		Int("source", len(listing.Source)).
		Int("enabled", len(listing.Enabled)).
		Int("disabled", len(listing.Disabled)).
		Msg("Rules listed")
	return listing, nil
}
