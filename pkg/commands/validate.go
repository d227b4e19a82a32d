package commands

import (
	"fmt"

	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/types"
)

// ValidateOptions contains options for the validate command
type ValidateOptions struct {
	Env
}

// Validate checks the quick-start file exists and holds at least one
// directive, parses every source and enabled file, and looks for sids
// declared by more than one enabled file. It never mutates the tree.
func Validate(opts ValidateOptions) (*types.ValidateResult, error) {
	logger := logging.GetLogger("commands.validate")

	s, err := opts.open()
	if err != nil {
		return nil, err
	}
	layout := s.Layout()

	result := &types.ValidateResult{
		Root:  layout.Root(),
		Files: []types.FileReport{},
	}

	exists, local, err := inspect(s, layout.LocalPath(), layout.LocalFile())
	if err != nil {
		return nil, err
	}
	result.Local = types.LocalFileStatus{
		Path:       layout.LocalPath(),
		Exists:     exists,
		Directives: local.Directives,
	}
	switch {
	case !exists:
		result.Problems = append(result.Problems,
			fmt.Sprintf("%s does not exist", layout.LocalFile()))
	case local.Directives == 0:
		result.Problems = append(result.Problems,
			fmt.Sprintf("%s has no directives", layout.LocalFile()))
	}
	if exists && len(local.Issues) > 0 {
		result.Files = append(result.Files, types.FileReport{
			State:      "root",
			Name:       layout.LocalFile(),
			Directives: local.Directives,
			Issues:     local.Issues,
		})
	}

	idx := directive.SIDIndex{}
	for _, state := range []paths.State{paths.StateSource, paths.StateEnabled} {
		names, err := s.ListNames(state)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			data, err := s.Read(state, name)
			if err != nil {
				return nil, err
			}
			scan := directive.ScanRules(name, data)
			result.Files = append(result.Files, types.FileReport{
				State:      string(state),
				Name:       name,
				Directives: scan.Directives,
				Issues:     scan.Issues,
			})
			if state == paths.StateEnabled {
				idx.Add(name, scan)
			}
		}
	}
	result.Conflicts = idx.Conflicts()

	issues := 0
	for _, f := range result.Files {
		issues += len(f.Issues)
	}
	result.Valid = len(result.Problems) == 0 && len(result.Conflicts) == 0 && issues == 0

	logger.Info().
		Int("files", len(result.Files)).
		Int("issues", issues).
		Int("conflicts", len(result.Conflicts)).
		Bool("valid", result.Valid).
		Msg("Validate command completed")
	return result, nil
}
