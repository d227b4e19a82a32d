// Package backup snapshots the rule tree into timestamped tar.gz archives.
package backup

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/filesystem"
	"github.com/arthur-debert/snortamv/pkg/internal/hashutil"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/store"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

// Options configures an Archiver
type Options struct {
	DryRun bool

	// CompressionLevel is a gzip level; -1 or 0 selects the default
	CompressionLevel int

	// Now is the clock used to name archives. Defaults to time.Now.
	Now func() time.Time
}

// Archiver writes backups of the rule tree into the backups state directory
type Archiver struct {
	store *store.RuleStore
	opts  Options
}

// New creates an Archiver
func New(s *store.RuleStore, opts Options) *Archiver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CompressionLevel == 0 {
		opts.CompressionLevel = gzip.DefaultCompression
	}
	return &Archiver{store: s, opts: opts}
}

// Result describes one backup
type Result struct {
	Path      string
	Timestamp time.Time
	Files     int
	Bytes     int64
	Checksum  string
	DryRun    bool
}

// Backup archives the rule tree, excluding the backups directory itself,
// into backups/rules_<YYYYMMDD_HHMMSS>.tar.gz. Entries are stored under the
// base name of the root. An archive that already exists is never replaced.
func (a *Archiver) Backup() (*Result, error) {
	logger := logging.GetLogger("backup")

	result, err := a.backup()
	target := ""
	if result != nil {
		target = result.Path
	}
	logging.LogOutcome(logger, "backup", target, a.opts.DryRun, err)
	if err == nil {
		logger.Debug().
			Int("files", result.Files).
			Int64("bytes", result.Bytes).
			Msg("Backup archived")
	}
	return result, err
}

func (a *Archiver) backup() (*Result, error) {
	fsys := a.store.FS()
	layout := a.store.Layout()

	now := a.opts.Now()
	name := paths.BackupName(now.Format(paths.BackupTimeFormat))
	archivePath := filepath.Join(layout.Dir(paths.StateBackups), name)

	result := &Result{
		Path:      archivePath,
		Timestamp: now,
		DryRun:    a.opts.DryRun,
	}

	if exists, _ := filesystem.Exists(fsys, archivePath); exists {
		return result, errors.Newf(errors.ErrPathCollision, "backup %s already exists", archivePath).
			WithDetail("path", archivePath)
	}

	if !a.opts.DryRun {
		if err := a.store.Ensure(); err != nil {
			return result, err
		}
	}

	entries, err := a.collect()
	if err != nil {
		return result, err
	}
	for _, e := range entries {
		if !e.info.IsDir() {
			result.Files++
		}
	}

	if a.opts.DryRun {
		return result, nil
	}

	err = filesystem.WriteStreamAtomic(fsys, archivePath, filesystem.FilePerm, func(w io.Writer) error {
		return a.writeArchive(w, entries)
	})
	if err != nil {
		return result, err
	}

	if info, err := fsys.Stat(archivePath); err == nil {
		result.Bytes = info.Size()
	}
	if sum, err := hashutil.FileChecksum(fsys, archivePath); err == nil {
		result.Checksum = sum
	}
	return result, nil
}

type entry struct {
	path string
	name string
	info os.FileInfo
}

// collect walks the tree in lexical order, skipping the backups directory
func (a *Archiver) collect() ([]entry, error) {
	fsys := a.store.FS()
	layout := a.store.Layout()
	root := layout.Root()
	base := filepath.Base(root)
	backups := layout.Dir(paths.StateBackups)

	if exists, _ := filesystem.Exists(fsys, root); !exists {
		return nil, nil
	}

	var entries []entry
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == backups {
			return filepath.SkipDir
		}
		if !info.IsDir() && !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := base
		if rel != "." {
			name = base + "/" + filepath.ToSlash(rel)
		}
		entries = append(entries, entry{path: path, name: name, info: info})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchive, "failed to walk %s", root).
			WithDetail("root", root)
	}
	return entries, nil
}

func (a *Archiver) writeArchive(w io.Writer, entries []entry) error {
	fsys := a.store.FS()

	gz, err := gzip.NewWriterLevel(w, a.opts.CompressionLevel)
	if err != nil {
		return errors.Wrap(err, errors.ErrArchive, "failed to create gzip writer")
	}
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		header, err := tar.FileInfoHeader(e.info, "")
		if err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to build header for %s", e.path)
		}
		header.Name = e.name
		if e.info.IsDir() && !strings.HasSuffix(header.Name, "/") {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return errors.Wrapf(err, errors.ErrArchive, "failed to write header for %s", e.path)
		}
		if e.info.IsDir() {
			continue
		}

		if err := copyInto(fsys, tw, e.path); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrArchive, "failed to finish tar stream")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, errors.ErrArchive, "failed to finish gzip stream")
	}
	return nil
}

func copyInto(fsys afero.Fs, w io.Writer, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "failed to open %s", path)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(w, f); err != nil {
		return errors.Wrapf(err, errors.ErrArchive, "failed to archive %s", path)
	}
	return nil
}

// List returns the archive names present in the backups directory, oldest first
func (a *Archiver) List() ([]string, error) {
	dir := a.store.Layout().Dir(paths.StateBackups)
	return filesystem.ListFiles(a.store.FS(), dir, func(name string) bool {
		return strings.HasPrefix(name, paths.BackupPrefix) && strings.HasSuffix(name, paths.BackupSuffix)
	})
}
