package commands

import (
	"io"
	"os"

	"github.com/arthur-debert/snortamv/pkg/author"
	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/types"
)

// AddOptions contains options for the add command
type AddOptions struct {
	Env

	// Name selects a source rule file. Empty targets the quick-start file.
	Name string

	// Fields already supplied, e.g. from flags
	Fields directive.Fields

	// Interactive prompts for every field missing from Fields
	Interactive bool

	// In and Out are the prompt streams (default stdin and stdout)
	In  io.Reader
	Out io.Writer
}

// Add builds one directive and appends it to the target rule file
func Add(opts AddOptions) (*types.AddResult, error) {
	logger := logging.GetLogger("commands.add")
	done := logging.LogOperationStart(logger, "add")
	defer done()

	s, err := opts.open()
	if err != nil {
		return nil, err
	}
	a := author.New(s, opts.DryRun)

	target := a.LocalTarget()
	if opts.Name != "" {
		target, err = a.SourceTarget(ruleName(s.Layout(), opts.Name))
		if err != nil {
			return nil, err
		}
	}

	var source author.FieldSource = author.StaticSource{
		Values:   opts.Fields,
		Defaults: authorDefaults(opts.Config),
	}
	if opts.Interactive {
		in, out := opts.In, opts.Out
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		source = author.PromptSource{
			In:       in,
			Out:      out,
			Preset:   opts.Fields,
			Defaults: authorDefaults(opts.Config),
		}
	}

	fields, err := source.Collect()
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("target", target).
		Strs("missing", fields.Missing()).
		Msg("Fields collected")

	appended, err := a.Append(target, fields)
	if err != nil {
		return nil, err
	}

	return &types.AddResult{
		Target:  appended.Target,
		Line:    appended.Line,
		Created: appended.Created,
		DryRun:  appended.DryRun,
	}, nil
}
