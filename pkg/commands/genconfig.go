package commands

import (
	"path/filepath"

	"github.com/arthur-debert/snortamv/pkg/config"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/types"
)

// GenConfigOptions contains options for the genconfig command
type GenConfigOptions struct {
	Env

	// Effective renders the resolved configuration instead of the commented defaults
	Effective bool

	// Write stores the content at Target instead of only returning it
	Write bool

	// Target is where Write stores the file (defaults to the XDG config file)
	Target string
}

// GenConfig returns, and optionally writes, a configuration file. An
// existing file is never overwritten.
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	result := &types.GenConfigResult{
		Effective:    opts.Effective,
		FilesWritten: []string{},
		DryRun:       opts.DryRun,
	}

	if opts.Effective {
		if opts.Config == nil {
			return nil, errNoConfig()
		}
		content, err := config.GenerateEffectiveContent(opts.Config)
		if err != nil {
			return nil, err
		}
		result.Content = content
	} else {
		result.Content = config.GenerateConfigContent()
	}

	if !opts.Write {
		logger.Debug().Bool("effective", opts.Effective).Msg("Outputting config")
		return result, nil
	}

	fsys := opts.FileSystem
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	target := opts.Target
	if target == "" {
		target = paths.ConfigFilePath()
	}

	if exists, _ := filesystem.Exists(fsys, target); exists {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}
	if opts.DryRun {
		logging.LogOutcome(logger, "genconfig", target, true, nil)
		return result, nil
	}

	err := filesystem.EnsureDir(fsys, filepath.Dir(target))
	if err == nil {
		err = filesystem.WriteFileAtomic(fsys, target, []byte(result.Content), filesystem.FilePerm)
	}
	logging.LogOutcome(logger, "genconfig", target, false, err)
	if err != nil {
		return nil, err
	}
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
