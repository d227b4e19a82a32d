package filesystem

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	snorterrors "github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, EnsureDir(fsys, "/tree/generated"))

	path := "/tree/generated/snort.rules"
	require.NoError(t, WriteFileAtomic(fsys, path, []byte("one\n"), FilePerm))
	require.NoError(t, WriteFileAtomic(fsys, path, []byte("two\n"), FilePerm))

	data, err := ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "two\n", string(data))

	entries, err := afero.ReadDir(fsys, "/tree/generated")
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	fsys := NewMemory()
	err := WriteFileAtomic(afero.NewReadOnlyFs(fsys), "/nowhere/x.rules", []byte("x"), FilePerm)
	require.Error(t, err)
	assert.True(t, snorterrors.IsIOFailure(err))
}

func TestWriteStreamAtomic(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, EnsureDir(fsys, "/b"))

	t.Run("success", func(t *testing.T) {
		err := WriteStreamAtomic(fsys, "/b/out", FilePerm, func(w io.Writer) error {
			_, err := io.Copy(w, strings.NewReader("payload"))
			return err
		})
		require.NoError(t, err)
		data, err := ReadFile(fsys, "/b/out")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("fill failure leaves nothing", func(t *testing.T) {
		boom := errors.New("boom")
		err := WriteStreamAtomic(fsys, "/b/failed", FilePerm, func(w io.Writer) error {
			_, _ = w.Write([]byte("partial"))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		exists, err := Exists(fsys, "/b/failed")
		require.NoError(t, err)
		assert.False(t, exists)

		names, err := ListFiles(fsys, "/b", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"out"}, names)
	})
}

func TestCopyFile(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, EnsureDir(fsys, "/src"))
	require.NoError(t, EnsureDir(fsys, "/dst"))
	require.NoError(t, afero.WriteFile(fsys, "/src/web.rules", []byte("alert tcp\n"), 0600))

	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, fsys.Chtimes("/src/web.rules", mtime, mtime))

	require.NoError(t, CopyFile(fsys, "/src/web.rules", "/dst/web.rules"))

	data, err := ReadFile(fsys, "/dst/web.rules")
	require.NoError(t, err)
	assert.Equal(t, "alert tcp\n", string(data))

	info, err := fsys.Stat("/dst/web.rules")
	require.NoError(t, err)
	assert.Equal(t, 0600, int(info.Mode().Perm()))
	assert.True(t, info.ModTime().Equal(mtime))

	assert.True(t, IsRegular(fsys, "/src/web.rules"), "source is kept")
}

func TestCopyFileMissingSource(t *testing.T) {
	fsys := NewMemory()
	err := CopyFile(fsys, "/missing", "/dst")
	require.Error(t, err)
	assert.True(t, snorterrors.IsErrorCode(err, snorterrors.ErrFileCopy))
}

func TestMoveFile(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, EnsureDir(fsys, "/enabled"))
	require.NoError(t, EnsureDir(fsys, "/disabled"))
	require.NoError(t, afero.WriteFile(fsys, "/enabled/a.rules", []byte("new"), FilePerm))
	require.NoError(t, afero.WriteFile(fsys, "/disabled/a.rules", []byte("old"), FilePerm))

	require.NoError(t, MoveFile(fsys, "/enabled/a.rules", "/disabled/a.rules"))

	exists, err := Exists(fsys, "/enabled/a.rules")
	require.NoError(t, err)
	assert.False(t, exists)

	data, err := ReadFile(fsys, "/disabled/a.rules")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestListFiles(t *testing.T) {
	fsys := NewMemory()
	dir := "/tree/source"
	require.NoError(t, EnsureDir(fsys, filepath.Join(dir, "nested")))
	for _, name := range []string{"zeta.rules", "alpha.rules", ".hidden.rules", "notes.txt"} {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, name), []byte("x"), FilePerm))
	}

	names, err := ListFiles(fsys, dir, func(name string) bool {
		return strings.HasSuffix(name, ".rules")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.rules", "zeta.rules"}, names)

	all, err := ListFiles(fsys, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.rules", "notes.txt", "zeta.rules"}, all)

	missing, err := ListFiles(fsys, "/nope", nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestReadFileErrors(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, EnsureDir(fsys, "/d"))

	_, err := ReadFile(fsys, "/d")
	assert.True(t, snorterrors.IsErrorCode(err, snorterrors.ErrFileRead))

	_, err = ReadFile(fsys, "/d/missing")
	assert.True(t, snorterrors.IsErrorCode(err, snorterrors.ErrFileRead))
}

func TestEnsureDirReadOnly(t *testing.T) {
	err := EnsureDir(afero.NewReadOnlyFs(NewMemory()), "/x")
	require.Error(t, err)
	assert.True(t, snorterrors.IsErrorCode(err, snorterrors.ErrDirCreate))
}
