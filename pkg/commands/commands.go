package commands

import (
	"strings"
	"time"

	"github.com/arthur-debert/snortamv/pkg/config"
	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/store"
	"github.com/spf13/afero"
)

// Env is what every command needs to reach the rule tree
type Env struct {
	// Config is the resolved configuration (required)
	Config *config.Config

	// FileSystem to use (defaults to the OS filesystem)
	FileSystem afero.Fs

	// DryRun reports what would change without writing
	DryRun bool

	// Now is the clock used for backups (defaults to time.Now)
	Now func() time.Time
}

func (e Env) open() (*store.RuleStore, error) {
	if e.Config == nil {
		return nil, errNoConfig()
	}
	fsys := e.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	layout, err := e.Config.Layout()
	if err != nil {
		return nil, err
	}
	return store.New(fsys, layout), nil
}

func errNoConfig() error {
	return errors.New(errors.ErrInternal, "no configuration supplied")
}

func (e Env) clock() func() time.Time {
	if e.Now == nil {
		return time.Now
	}
	return e.Now
}

// ruleName appends the rule extension when the name was given without it
func ruleName(layout *paths.Layout, name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasSuffix(name, layout.Extension()) {
		return name
	}
	return name + layout.Extension()
}

// authorDefaults are the configured fallbacks for directive fields
func authorDefaults(cfg *config.Config) directive.Fields {
	return directive.Fields{
		Source:          cfg.Author.Source,
		SourcePort:      cfg.Author.SourcePort,
		Destination:     cfg.Author.Destination,
		DestinationPort: cfg.Author.DestinationPort,
		Rev:             cfg.Author.Rev,
	}
}

// inspect reports whether path is a file and scans it, labelling issues with name
func inspect(s *store.RuleStore, path, name string) (bool, directive.Scan, error) {
	if !filesystem.IsRegular(s.FS(), path) {
		return false, directive.Scan{}, nil
	}
	data, err := s.ReadPath(path)
	if err != nil {
		return true, directive.Scan{}, err
	}
	return true, directive.ScanRules(name, data), nil
}
