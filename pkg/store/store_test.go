package store

import (
	"testing"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/paths"
	"github.com/arthur-debert/snortamv/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	s := New(env.FS, env.Layout)

	require.NoError(t, s.Ensure())
	for _, dir := range env.Layout.Dirs() {
		assert.True(t, env.Exists(dir), dir)
	}

	env.WriteRule(paths.StateSource, "web.rules", "x\n")
	require.NoError(t, s.Ensure(), "idempotent")
	assert.Equal(t, "x\n", env.ReadRule(paths.StateSource, "web.rules"))
}

func TestListNames(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithRuleTree(testutil.RuleTree{
		paths.StateSource: {
			"web.rules":     "a",
			"dns.rules":     "b",
			".draft.rules":  "c",
			"README.md":     "d",
			"backup.rules~": "e",
		},
	})
	require.NoError(t, env.FS.MkdirAll(env.Layout.RulePath(paths.StateSource, "dir.rules"), 0755))

	s := New(env.FS, env.Layout)
	names, err := s.ListNames(paths.StateSource)
	require.NoError(t, err)
	assert.Equal(t, []string{"dns.rules", "web.rules"}, names)

	names, err = s.ListNames(paths.StateEnabled)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = s.ListNames(paths.State("bogus"))
	assert.Error(t, err)
}

func TestListNamesMissingTree(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	s := New(env.FS, env.Layout)

	names, err := s.ListNames(paths.StateEnabled)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPathExistsRead(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WithRuleTree(testutil.RuleTree{paths.StateEnabled: {"web.rules": "alert\n"}})
	s := New(env.FS, env.Layout)

	path, err := s.Path(paths.StateEnabled, "web.rules")
	require.NoError(t, err)
	assert.Equal(t, "/virtual/rules/enabled/web.rules", path)

	ok, err := s.Exists(paths.StateEnabled, "web.rules")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(paths.StateSource, "web.rules")
	require.NoError(t, err)
	assert.False(t, ok)

	data, err := s.Read(paths.StateEnabled, "web.rules")
	require.NoError(t, err)
	assert.Equal(t, "alert\n", string(data))

	_, err = s.Read(paths.StateSource, "web.rules")
	assert.True(t, errors.IsIOFailure(err))
}

func TestRejectsUnsafeNames(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	s := New(env.FS, env.Layout)

	for _, name := range []string{"../etc/passwd", "a/b.rules", "", ".."} {
		_, err := s.Path(paths.StateSource, name)
		require.Error(t, err, name)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidRuleName), name)

		_, err = s.Exists(paths.StateSource, name)
		assert.True(t, errors.IsValidation(err), name)
	}
}

func TestLocalExists(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	s := New(env.FS, env.Layout)
	assert.False(t, s.LocalExists())

	env.WriteFile(env.Layout.LocalPath(), "alert\n")
	assert.True(t, s.LocalExists())
}
