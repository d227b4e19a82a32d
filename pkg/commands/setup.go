package commands

import (
	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/types"
)

// SetupOptions contains options for the setup command
type SetupOptions struct {
	Env
}

// Setup creates every state directory and seeds the quick-start file with
// the default directive when it does not exist. An existing quick-start
// file is left untouched.
func Setup(opts SetupOptions) (*types.SetupResult, error) {
	logger := logging.GetLogger("commands.setup")

	s, err := opts.open()
	if err != nil {
		return nil, err
	}
	layout := s.Layout()

	result := &types.SetupResult{
		Root:         layout.Root(),
		Directories:  layout.Dirs(),
		LocalFile:    layout.LocalPath(),
		LocalExisted: s.LocalExists(),
		DryRun:       opts.DryRun,
	}

	if opts.DryRun {
		logging.LogOutcome(logger, "setup", result.Root, true, nil)
		return result, nil
	}

	err = s.Ensure()
	if err == nil && !result.LocalExisted {
		err = filesystem.WriteFileAtomic(s.FS(), result.LocalFile,
			[]byte(directive.DefaultLine+"\n"), filesystem.FilePerm)
	}
	logging.LogOutcome(logger, "setup", result.Root, false, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}
