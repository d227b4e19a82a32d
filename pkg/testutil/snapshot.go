package testutil

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/snortamv/pkg/internal/hashutil"
	"github.com/spf13/afero"
)

// Snapshot maps a slash-separated path relative to the snapshot root to a
// content checksum. Directories map to "dir".
type Snapshot map[string]string

// TakeSnapshot walks root and records every directory and file below it
func TakeSnapshot(fsys afero.Fs, root string) (Snapshot, error) {
	snap := Snapshot{}
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			snap[rel] = "dir"
			return nil
		}
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		snap[rel] = GetTestChecksum(string(data))
		return nil
	})
	return snap, err
}

// Paths returns the recorded paths in sorted order
func (s Snapshot) Paths() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Without returns a copy of s lacking prefix and everything below it
func (s Snapshot) Without(prefix string) Snapshot {
	out := Snapshot{}
	for p, v := range s {
		if p == prefix || (len(p) > len(prefix) && p[:len(prefix)+1] == prefix+"/") {
			continue
		}
		out[p] = v
	}
	return out
}

// GetTestChecksum calculates a SHA256 checksum for test content
func GetTestChecksum(content string) string {
	return hashutil.Sum([]byte(content))
}
