// Package author appends validated directives to rule files.
package author

import (
	"bytes"
	"os"

	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/store"
)

// Author writes directives into the quick-start file or source rule files
type Author struct {
	store  *store.RuleStore
	dryRun bool
}

// New creates an Author. With dryRun set, Append validates and reports but writes nothing.
func New(s *store.RuleStore, dryRun bool) *Author {
	return &Author{store: s, dryRun: dryRun}
}

// AppendResult describes one append
type AppendResult struct {
	Target  string
	Line    string
	Created bool
	DryRun  bool
}

// LocalTarget returns the quick-start file path
func (a *Author) LocalTarget() string {
	return a.store.Layout().LocalPath()
}

// SourceTarget resolves a named file in the source state
func (a *Author) SourceTarget(name string) (string, error) {
	return a.store.Path(paths.StateSource, name)
}

// Append validates fields and adds the resulting directive as a new line at
// the end of target. A missing target is created holding the default
// directive first. The file is replaced atomically, so on failure it is
// left as it was.
func (a *Author) Append(target string, fields directive.Fields) (*AppendResult, error) {
	logger := logging.GetLogger("author")
	fsys := a.store.FS()

	d, err := directive.Build(fields)
	if err != nil {
		logging.LogOutcome(logger, "append", target, a.dryRun, err)
		return nil, err
	}

	result := &AppendResult{
		Target: target,
		Line:   d.String(),
		DryRun: a.dryRun,
	}

	var content bytes.Buffer
	perm := filesystem.FilePerm

	info, statErr := fsys.Stat(target)
	switch {
	case statErr == nil:
		if !info.Mode().IsRegular() {
			err := errors.Newf(errors.ErrFileWrite, "%s is not a regular file", target).
				WithDetail("path", target)
			logging.LogOutcome(logger, "append", target, a.dryRun, err)
			return nil, err
		}
		existing, err := filesystem.ReadFile(fsys, target)
		if err != nil {
			logging.LogOutcome(logger, "append", target, a.dryRun, err)
			return nil, err
		}
		perm = info.Mode().Perm()
		content.Write(existing)
		if len(existing) > 0 && existing[len(existing)-1] != '\n' {
			content.WriteByte('\n')
		}
	case os.IsNotExist(statErr):
		result.Created = true
		content.WriteString(directive.DefaultLine)
		content.WriteByte('\n')
	default:
		err := errors.Wrapf(statErr, errors.ErrFileRead, "failed to read %s", target).
			WithDetail("path", target)
		logging.LogOutcome(logger, "append", target, a.dryRun, err)
		return nil, err
	}
	content.WriteString(result.Line)
	content.WriteByte('\n')

	logger.Debug().
		Str("target", target).
		Bool("created", result.Created).
		Uint64("sid", d.SID).
		Msg("Directive built")

	if a.dryRun {
		logging.LogOutcome(logger, "append", target, true, nil)
		return result, nil
	}

	if result.Created {
		if err := a.store.Ensure(); err != nil {
			logging.LogOutcome(logger, "append", target, false, err)
			return nil, err
		}
	}

	if err := filesystem.WriteFileAtomic(fsys, target, content.Bytes(), perm); err != nil {
		logging.LogOutcome(logger, "append", target, false, err)
		return nil, err
	}

	logging.LogOutcome(logger, "append", target, false, nil)
	return result, nil
}
