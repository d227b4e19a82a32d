// Package ruleset compiles the enabled rule files into the generated ruleset.
package ruleset

import (
	"bytes"

	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/internal/hashutil"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/store"
)

// Options configures a Builder
type Options struct {
	DryRun     bool
	UniqueSIDs bool
}

// Builder writes the generated ruleset
type Builder struct {
	store *store.RuleStore
	opts  Options
}

// New creates a Builder
func New(s *store.RuleStore, opts Options) *Builder {
	return &Builder{store: s, opts: opts}
}

// Result describes one build
type Result struct {
	Output     string
	Files      []string
	Directives int
	Bytes      int
	Checksum   string
	DryRun     bool
}

// Build concatenates every enabled file, in sorted name order, joined by a
// single newline, and atomically replaces the generated ruleset. The output
// depends only on the enabled set.
func (b *Builder) Build() (*Result, error) {
	logger := logging.GetLogger("ruleset")
	output := b.store.Layout().RulesetPath()

	result, err := b.build(output)
	logging.LogOutcome(logger, "build", output, b.opts.DryRun, err)
	if err == nil {
		logger.Debug().
			Int("files", len(result.Files)).
			Int("directives", result.Directives).
			Int("bytes", result.Bytes).
			Msg("Ruleset compiled")
	}
	return result, err
}

func (b *Builder) build(output string) (*Result, error) {
	names, err := b.store.ListNames(paths.StateEnabled)
	if err != nil {
		return nil, err
	}

	contents := make([][]byte, 0, len(names))
	idx := directive.SIDIndex{}
	directives := 0
	for _, name := range names {
		data, err := b.store.Read(paths.StateEnabled, name)
		if err != nil {
			return nil, err
		}
		contents = append(contents, data)

		scan := directive.ScanRules(name, data)
		directives += scan.Directives
		idx.Add(name, scan)
	}

	if b.opts.UniqueSIDs {
		if err := directive.ConflictError(idx.Conflicts()); err != nil {
			return nil, err
		}
	}

	joined := Join(contents)
	result := &Result{
		Output:     output,
		Files:      names,
		Directives: directives,
		Bytes:      len(joined),
		Checksum:   hashutil.Sum(joined),
		DryRun:     b.opts.DryRun,
	}
	if b.opts.DryRun {
		return result, nil
	}

	if err := b.store.Ensure(); err != nil {
		return nil, err
	}
	if err := filesystem.WriteFileAtomic(b.store.FS(), output, joined, filesystem.FilePerm); err != nil {
		return nil, err
	}
	return result, nil
}

// Join concatenates contents separated by one newline each
func Join(contents [][]byte) []byte {
	return bytes.Join(contents, []byte("\n"))
}
