// cmd/snortamv/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Temporary rule tree on disk
// PURPOSE: Drive the CLI end to end through the root command

package snortamv

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const httpLine = `alert tcp any any -> 192.168.1.10 80 (msg:"HTTP traffic"; sid:1000002; rev:1;)`

// isolate points every location the CLI touches into temp dirs
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	t.Setenv("SNORTAMV_CONFIG_DIR", filepath.Join(base, "config"))
	t.Setenv("SNORTAMV_RULES_ROOT", "")
	t.Setenv("NO_COLOR", "1")
	return filepath.Join(base, "rules")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func decode(t *testing.T, output string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), output)
}

func TestSetupCmd(t *testing.T) {
	root := isolate(t)

	out, err := execute(t, "--root", root, "--format", "json", "setup")
	require.NoError(t, err)

	var result types.SetupResult
	decode(t, out, &result)
	assert.Equal(t, root, result.Root)
	assert.False(t, result.LocalExisted)
	for _, dir := range []string{"source", "enabled", "disabled", "generated", "backups"} {
		assert.DirExists(t, filepath.Join(root, dir))
	}
	assert.FileExists(t, filepath.Join(root, "local.rules"))
}

func TestRuleLifecycleCmd(t *testing.T) {
	root := isolate(t)
	run := func(args ...string) string {
		t.Helper()
		out, err := execute(t, append([]string{"--root", root, "--format", "json"}, args...)...)
		require.NoError(t, err, out)
		return out
	}

	run("setup")

	var added types.AddResult
	decode(t, run("rule", "add", "--name", "web",
		"--protocol", "tcp", "--dst", "192.168.1.10", "--dst-port", "80",
		"--msg", "HTTP traffic", "--sid", "1000002"), &added)
	assert.Equal(t, httpLine, added.Line)
	assert.Equal(t, filepath.Join(root, "source", "web.rules"), added.Target)

	var enabled types.TransitionResult
	decode(t, run("rule", "enable", "web"), &enabled)
	assert.Equal(t, "web.rules", enabled.Rule)
	assert.Equal(t, "copy", enabled.Action)

	var built types.BuildResult
	decode(t, run("rule", "build"), &built)
	assert.Equal(t, []string{"web.rules"}, built.Files)

	data, err := os.ReadFile(filepath.Join(root, "generated", "snort.rules"))
	require.NoError(t, err)
	assert.Contains(t, string(data), httpLine)

	var listed types.ListResult
	decode(t, run("rule", "list"), &listed)
	assert.Equal(t, []string{"web.rules"}, listed.Source)
	assert.Equal(t, []string{"web.rules"}, listed.Enabled)
	assert.True(t, listed.Local.Exists)

	var disabled types.TransitionResult
	decode(t, run("rule", "disable", "web.rules"), &disabled)
	assert.Equal(t, "move", disabled.Action)
	assert.NoFileExists(t, filepath.Join(root, "enabled", "web.rules"))
	assert.FileExists(t, filepath.Join(root, "disabled", "web.rules"))
	assert.FileExists(t, filepath.Join(root, "source", "web.rules"))

	var backed types.BackupResult
	decode(t, run("rule", "backup"), &backed)
	assert.FileExists(t, backed.Path)
	assert.Equal(t, filepath.Join(root, "backups"), filepath.Dir(backed.Path))
}

func TestDisableUnknownRuleCmd(t *testing.T) {
	root := isolate(t)
	_, err := execute(t, "--root", root, "setup")
	require.NoError(t, err)

	_, err = execute(t, "--root", root, "rule", "disable", "missing.rules")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Contains(t, err.Error(), "rule not enabled")
}

func TestDryRunCmd(t *testing.T) {
	root := isolate(t)

	out, err := execute(t, "--root", root, "--format", "text", "--dry-run", "setup")
	require.NoError(t, err)
	assert.Contains(t, out, "[dry-run]")
	assert.NoDirExists(t, root)
}

func TestValidateCmd(t *testing.T) {
	root := isolate(t)

	t.Run("fresh tree is valid", func(t *testing.T) {
		_, err := execute(t, "--root", root, "setup")
		require.NoError(t, err)

		out, err := execute(t, "--root", root, "--format", "json", "rule", "validate")
		require.NoError(t, err)
		var result types.ValidateResult
		decode(t, out, &result)
		assert.True(t, result.Valid)
	})

	t.Run("missing quick-start file fails", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(root, "local.rules")))

		out, err := execute(t, "--root", root, "--format", "json", "rule", "validate")
		require.Error(t, err)
		assert.Equal(t, errors.ErrTreeInvalid, errors.GetErrorCode(err))

		var result types.ValidateResult
		decode(t, out, &result)
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Problems)
	})
}

func TestGenConfigCmd(t *testing.T) {
	isolate(t)

	out, err := execute(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[rules]")
	assert.Contains(t, out, "# unique_sids = true")
}

func TestInvalidFormatCmd(t *testing.T) {
	root := isolate(t)

	_, err := execute(t, "--root", root, "--format", "html", "rule", "list")
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.GetErrorCode(err).Kind())
}

func TestMiscCmds(t *testing.T) {
	isolate(t)

	t.Run("version", func(t *testing.T) {
		out, err := execute(t, "--format", "text", "version")
		require.NoError(t, err)
		assert.Contains(t, out, "snortamv dev")
	})

	t.Run("completion", func(t *testing.T) {
		out, err := execute(t, "completion", "bash")
		require.NoError(t, err)
		assert.Contains(t, out, "snortamv")
	})

	t.Run("help topics", func(t *testing.T) {
		out, err := execute(t, "help", "topics")
		require.NoError(t, err)
		assert.Contains(t, out, "lifecycle")
		assert.Contains(t, out, "--dry-run")
	})

	t.Run("plain text topic", func(t *testing.T) {
		out, err := execute(t, "help", "dry-run")
		require.NoError(t, err)
		assert.Contains(t, out, "stops before writing")
	})

	t.Run("no command", func(t *testing.T) {
		_, err := execute(t)
		require.Error(t, err)
	})
}
