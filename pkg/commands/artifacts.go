package commands

import (
	"github.com/arthur-debert/snortamv/pkg/backup"
	"github.com/arthur-debert/snortamv/pkg/ruleset"
	"github.com/arthur-debert/snortamv/pkg/types"
)

// BuildOptions contains options for the build command
type BuildOptions struct {
	Env
}

// Build compiles the enabled set into the generated ruleset
func Build(opts BuildOptions) (*types.BuildResult, error) {
	s, err := opts.open()
	if err != nil {
		return nil, err
	}

	r, err := ruleset.New(s, ruleset.Options{
		DryRun:     opts.DryRun,
		UniqueSIDs: opts.Config.Rules.UniqueSIDs,
	}).Build()
	if err != nil {
		return nil, err
	}

	return &types.BuildResult{
		Output:     r.Output,
		Files:      nonNil(r.Files),
		Directives: r.Directives,
		Bytes:      r.Bytes,
		Checksum:   r.Checksum,
		DryRun:     r.DryRun,
	}, nil
}

// BackupOptions contains options for the backup command
type BackupOptions struct {
	Env
}

// Backup archives the rule tree into backups
func Backup(opts BackupOptions) (*types.BackupResult, error) {
	s, err := opts.open()
	if err != nil {
		return nil, err
	}

	r, err := backup.New(s, backup.Options{
		DryRun:           opts.DryRun,
		CompressionLevel: opts.Config.Backup.CompressionLevel,
		Now:              opts.clock(),
	}).Backup()
	if err != nil {
		return nil, err
	}

	return &types.BackupResult{
		Path:      r.Path,
		Timestamp: r.Timestamp,
		Files:     r.Files,
		Bytes:     r.Bytes,
		Checksum:  r.Checksum,
		DryRun:    r.DryRun,
	}, nil
}
