package commands

import (
	"github.com/arthur-debert/snortamv/pkg/backup"
	"github.com/arthur-debert/snortamv/pkg/lifecycle"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/types"
)

// ListOptions contains options for the list command
type ListOptions struct {
	Env
}

// List reports the rule names of every state, the archives in backups and
// the quick-start file. It never mutates the tree.
func List(opts ListOptions) (*types.ListResult, error) {
	logger := logging.GetLogger("commands.list")

	s, err := opts.open()
	if err != nil {
		return nil, err
	}

	listing, err := lifecycle.New(s, lifecycle.Options{}).List()
	if err != nil {
		return nil, err
	}
	backups, err := backup.New(s, backup.Options{}).List()
	if err != nil {
		return nil, err
	}

	layout := s.Layout()
	exists, scan, err := inspect(s, layout.LocalPath(), layout.LocalFile())
	if err != nil {
		return nil, err
	}

	result := &types.ListResult{
		Root:     layout.Root(),
		Source:   nonNil(listing.Source),
		Enabled:  nonNil(listing.Enabled),
		Disabled: nonNil(listing.Disabled),
		Backups:  nonNil(backups),
		Local: types.LocalFileStatus{
			Path:       layout.LocalPath(),
			Exists:     exists,
			Directives: scan.Directives,
		},
	}

	logger.Info().
		Str("root", result.Root).
		Int("source", len(result.Source)).
		Int("enabled", len(result.Enabled)).
		Int("disabled", len(result.Disabled)).
		Msg("List command completed")
	return result, nil
}

// TransitionOptions contains options for the enable and disable commands
type TransitionOptions struct {
	Env

	// Name of the rule file; the extension may be omitted
	Name string
}

// Enable copies a source rule file into enabled
func Enable(opts TransitionOptions) (*types.TransitionResult, error) {
	return transition("enable", opts)
}

// Disable moves an enabled rule file into disabled
func Disable(opts TransitionOptions) (*types.TransitionResult, error) {
	return transition("disable", opts)
}

func transition(command string, opts TransitionOptions) (*types.TransitionResult, error) {
	s, err := opts.open()
	if err != nil {
		return nil, err
	}

	m := lifecycle.New(s, lifecycle.Options{
		DryRun:     opts.DryRun,
		UniqueSIDs: opts.Config.Rules.UniqueSIDs,
	})
	name := ruleName(s.Layout(), opts.Name)

	var t *lifecycle.Transition
	if command == "enable" {
		t, err = m.Enable(name)
	} else {
		t, err = m.Disable(name)
	}
	if err != nil {
		return nil, err
	}

	return &types.TransitionResult{
		Command: command,
		Rule:    t.Name,
		From:    string(t.From),
		To:      string(t.To),
		Action:  t.Action,
		Source:  t.Source,
		Target:  t.Target,
		DryRun:  t.DryRun,
	}, nil
}

func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
