package author

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	src := StaticSource{
		Values:   directive.Fields{Protocol: "udp", Message: "dns", SID: "5"},
		Defaults: directive.Fields{Source: "any", SourcePort: "any", Destination: "any", DestinationPort: "53", Rev: "1", Protocol: "tcp"},
	}

	fields, err := src.Collect()
	require.NoError(t, err)
	assert.Equal(t, "udp", fields.Protocol)
	assert.Equal(t, "53", fields.DestinationPort)

	_, err = directive.Build(fields)
	assert.NoError(t, err)
}

func TestPromptSource(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"tcp",          // protocol
		"",             // source, default any
		"any",          // source port
		"192.168.1.10", // destination
		"80",           // destination port
		"",             // message required, asked again
		"HTTP traffic", // message
		"",             // rev default 1
	}, "\n") + "\n")
	var out bytes.Buffer

	src := PromptSource{
		In:       in,
		Out:      &out,
		Preset:   directive.Fields{SID: "1000002"},
		Defaults: directive.Fields{Source: "any", Rev: "1"},
	}

	fields, err := src.Collect()
	require.NoError(t, err)

	assert.Equal(t, webFields(), fields)
	assert.Contains(t, out.String(), "Protocol (tcp, udp, icmp, ip): ")
	assert.Contains(t, out.String(), "Source IP [any]: ")
	assert.Contains(t, out.String(), "This field is required")
	assert.NotContains(t, out.String(), "SID", "preset fields are not asked for")
}

func TestPromptSourceInputEnds(t *testing.T) {
	src := PromptSource{
		In:  strings.NewReader("tcp\n"),
		Out: &bytes.Buffer{},
	}

	_, err := src.Collect()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, "source", errors.GetErrorDetails(err)["field"])
}
