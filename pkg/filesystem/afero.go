package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/spf13/afero"
)

const (
	// DirPerm is used for every directory of the rule tree
	DirPerm fs.FileMode = 0755

	// FilePerm is used for newly created rule files
	FilePerm fs.FileMode = 0644

	// tempPattern names in-flight writes. The leading dot keeps them out of listings.
	tempPattern = ".snortamv-*.tmp"
)

// NewOS returns the real operating system filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Exists reports whether path exists
func Exists(fsys afero.Fs, path string) (bool, error) {
	return afero.Exists(fsys, path)
}

// IsRegular reports whether path exists and is a regular file
func IsRegular(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// EnsureDir creates path and any missing parents
func EnsureDir(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(path, DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path).
			WithDetail("path", path)
	}
	return nil
}

// ReadFile reads the whole file at path
func ReadFile(fsys afero.Fs, path string) ([]byte, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrFileRead, "%s is a directory", path).
			WithDetail("path", path)
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path).
			WithDetail("path", path)
	}
	return data, nil
}

// WriteFileAtomic replaces path with data. The content is written to a
// temporary file in the same directory, synced, then renamed over path.
func WriteFileAtomic(fsys afero.Fs, path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(fsys, dir, tempPattern)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create temporary file in %s", dir).
			WithDetail("path", path)
	}
	tmpName := tmp.Name()

	fail := func(cause error, msg string) error {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return errors.Wrapf(cause, errors.ErrFileWrite, "%s %s", msg, path).
			WithDetail("path", path)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err, "failed to write")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "failed to sync")
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close temporary file for %s", path).
			WithDetail("path", path)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", path).
			WithDetail("path", path)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move temporary file onto %s", path).
			WithDetail("path", path)
	}
	return nil
}

// WriteStreamAtomic is WriteFileAtomic for content produced by fill.
// Nothing is renamed into place unless fill succeeds.
func WriteStreamAtomic(fsys afero.Fs, path string, perm fs.FileMode, fill func(w io.Writer) error) error {
	dir := filepath.Dir(path)

	tmp, err := afero.TempFile(fsys, dir, tempPattern)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create temporary file in %s", dir).
			WithDetail("path", path)
	}
	tmpName := tmp.Name()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close temporary file for %s", path).
			WithDetail("path", path)
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", path).
			WithDetail("path", path)
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to move temporary file onto %s", path).
			WithDetail("path", path)
	}
	return nil
}

// CopyFile copies src to dst atomically, preserving mode and modification time.
// An existing dst is overwritten.
func CopyFile(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to stat %s", src).
			WithDetail("source", src)
	}

	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read %s", src).
			WithDetail("source", src)
	}

	if err := WriteFileAtomic(fsys, dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", src, dst).
			WithDetails(map[string]interface{}{"source": src, "destination": dst})
	}

	if err := fsys.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to preserve times on %s", dst).
			WithDetail("destination", dst)
	}
	return nil
}

// MoveFile renames src to dst, replacing dst. When the rename is refused
// (for example across devices) the file is copied and src removed.
func MoveFile(fsys afero.Fs, src, dst string) error {
	if err := fsys.Rename(src, dst); err == nil {
		return nil
	}

	if err := CopyFile(fsys, src, dst); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "failed to move %s to %s", src, dst).
			WithDetails(map[string]interface{}{"source": src, "destination": dst})
	}
	if err := fsys.Remove(src); err != nil {
		return errors.Wrapf(err, errors.ErrFileMove, "failed to remove %s after copy", src).
			WithDetail("source", src)
	}
	return nil
}

// ListFiles returns the sorted names of the regular, non-hidden files in dir
// accepted by keep. A missing directory yields an empty list.
func ListFiles(fsys afero.Fs, dir string, keep func(name string) bool) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to list %s", dir).
			WithDetail("path", dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !entry.Mode().IsRegular() {
			continue
		}
		if keep != nil && !keep(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
