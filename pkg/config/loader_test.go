package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/paths"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config lookup at an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	for _, key := range []string{"SNORTAMV_RULES_ROOT", "SNORTAMV_RULES_UNIQUE_SIDS", "SNORTAMV_OUTPUT_FORMAT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Rules.Root)
	assert.Equal(t, ".rules", cfg.Rules.Extension)
	assert.Equal(t, "snort.rules", cfg.Rules.RulesetFile)
	assert.Equal(t, "local.rules", cfg.Rules.LocalFile)
	assert.True(t, cfg.Rules.UniqueSIDs)
	assert.Equal(t, "any", cfg.Author.Source)
	assert.Equal(t, "1", cfg.Author.Rev)
	assert.Equal(t, -1, cfg.Backup.CompressionLevel)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoadUserConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte(`
[rules]
root = "/srv/ids"
unique_sids = false

[output]
format = "JSON"
`), 0644))

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/srv/ids", cfg.Rules.Root)
	assert.False(t, cfg.Rules.UniqueSIDs)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, ".rules", cfg.Rules.Extension, "untouched keys keep defaults")
}

func TestLoadExplicitConfigFile(t *testing.T) {
	isolate(t)

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed file fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[rules\nroot = "), 0644))

		_, err := Load(LoadOptions{ConfigFile: path})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.ConfigFileName), []byte(`
[rules]
root = "/from/file"
ruleset_file = "file.rules"
`), 0644))
	t.Setenv("SNORTAMV_RULES_ROOT", "/from/env")
	t.Setenv("SNORTAMV_RULES_UNIQUE_SIDS", "false")

	cfg, err := Load(LoadOptions{
		Overrides: map[string]interface{}{"output.format": "yaml"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Rules.Root)
	assert.Equal(t, "file.rules", cfg.Rules.RulesetFile)
	assert.False(t, cfg.Rules.UniqueSIDs)
	assert.Equal(t, "yaml", cfg.Output.Format)

	cfg, err = Load(LoadOptions{
		Overrides: map[string]interface{}{"rules.root": "/from/flag"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Rules.Root)
}

func TestLoadInvalid(t *testing.T) {
	isolate(t)

	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"unknown format", map[string]interface{}{"output.format": "html"}},
		{"compression too high", map[string]interface{}{"backup.compression_level": 12}},
		{"empty extension", map[string]interface{}{"rules.extension": ""}},
		{"ruleset with separator", map[string]interface{}{"rules.ruleset_file": "a/b.rules"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{Overrides: tt.overrides})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
		})
	}
}

func TestExtensionNormalized(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{"rules.extension": "snort"}})
	require.NoError(t, err)
	assert.Equal(t, ".snort", cfg.Rules.Extension)
}

func TestConfigLayout(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"rules.root":         "/srv/ids",
		"rules.ruleset_file": "all.rules",
	}})
	require.NoError(t, err)

	layout, err := cfg.Layout()
	require.NoError(t, err)
	assert.Equal(t, "/srv/ids", layout.Root())
	assert.Equal(t, "/srv/ids/generated/all.rules", layout.RulesetPath())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "rules.unique_sids", envKey("SNORTAMV_RULES_UNIQUE_SIDS"))
	assert.Equal(t, "backup.compression_level", envKey("SNORTAMV_BACKUP_COMPRESSION_LEVEL"))
	assert.Equal(t, "rules.root", envKey("SNORTAMV_RULES_ROOT"))
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "snort.rules", cfg.Rules.RulesetFile)
	assert.True(t, cfg.Rules.UniqueSIDs)
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[rules]")
	assert.Contains(t, content, `# ruleset_file = "snort.rules"`)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "[") {
			continue
		}
		t.Errorf("uncommented value line: %q", line)
	}
}

func TestGenerateEffectiveContent(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{"rules.root": "/srv/ids"}})
	require.NoError(t, err)

	content, err := GenerateEffectiveContent(cfg)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, gotoml.Unmarshal([]byte(content), &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestCommentOutConfigValues(t *testing.T) {
	input := "# header\n\n[rules]\nroot = \"x\"\n  unique_sids = true"
	expected := "# header\n\n[rules]\n# root = \"x\"\n#   unique_sids = true"
	assert.Equal(t, expected, commentOutConfigValues(input))
}
