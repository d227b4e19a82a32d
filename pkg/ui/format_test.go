package ui_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/types"
	"github.com/arthur-debert/snortamv/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configFormats are the values output.format accepts in the configuration
var configFormats = []string{"auto", "term", "text", "json", "yaml", "xml"}

func TestConfigFormatsRoundTrip(t *testing.T) {
	for _, name := range configFormats {
		t.Run(name, func(t *testing.T) {
			format, err := ui.ParseFormat(name)
			require.NoError(t, err)
			assert.Equal(t, name, format.String())
		})
	}
	assert.Equal(t, "unknown", ui.Format(999).String())
}

func TestParseFormatAliases(t *testing.T) {
	aliases := map[string]ui.Format{
		"":         ui.FormatAuto,
		"terminal": ui.FormatTerminal,
		" TERM ":   ui.FormatTerminal,
		"plain":    ui.FormatText,
		"Json":     ui.FormatJSON,
		"yml":      ui.FormatYAML,
		"XML":      ui.FormatXML,
	}
	for input, want := range aliases {
		got, err := ui.ParseFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	for _, input := range []string{"html", "snort", "rules"} {
		_, err := ui.ParseFormat(input)
		require.Error(t, err, input)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), input)
		assert.Equal(t, input, errors.GetErrorDetails(err)["format"])
	}
}

func TestDetectFormat(t *testing.T) {
	t.Run("NO_COLOR forces text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stdout))
	})

	t.Run("redirected output is plain text", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "snort.rules.out")
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}

func TestAutoRendersTransitionAsText(t *testing.T) {
	transition := &types.TransitionResult{
		Command: "enable", Rule: "web.rules", From: "source", To: "enabled", Action: "copy",
	}

	want := &bytes.Buffer{}
	text, err := ui.NewRenderer(ui.FormatText, want)
	require.NoError(t, err)
	require.NoError(t, text.RenderResult(transition))

	f, err := os.CreateTemp(t.TempDir(), "enable.out")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	auto, err := ui.NewRenderer(ui.FormatAuto, f)
	require.NoError(t, err)
	require.NoError(t, auto.RenderResult(transition))

	got, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, want.String(), string(got))

	buffered := &bytes.Buffer{}
	auto, err = ui.NewRenderer(ui.FormatAuto, buffered)
	require.NoError(t, err)
	require.NoError(t, auto.RenderResult(transition))
	assert.Equal(t, want.String(), buffered.String())
}
