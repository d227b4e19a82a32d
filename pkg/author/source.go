package author

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/errors"
)

// FieldSource supplies the raw fields of one directive
type FieldSource interface {
	Collect() (directive.Fields, error)
}

// StaticSource returns fixed fields, filling gaps from Defaults
type StaticSource struct {
	Values   directive.Fields
	Defaults directive.Fields
}

// Collect implements FieldSource
func (s StaticSource) Collect() (directive.Fields, error) {
	return s.Values.Merge(s.Defaults), nil
}

// PromptSource asks for every field not already present in Preset.
// Defaults are offered in brackets and used when the answer is empty.
type PromptSource struct {
	In       io.Reader
	Out      io.Writer
	Preset   directive.Fields
	Defaults directive.Fields
}

// Collect implements FieldSource
func (p PromptSource) Collect() (directive.Fields, error) {
	fields := p.Preset
	reader := bufio.NewReader(p.In)

	for _, field := range directive.FieldOrder {
		if field.Get(fields) != "" {
			continue
		}
		value, err := promptString(reader, p.Out, field.Prompt, field.Get(p.Defaults))
		if err != nil {
			return fields, errors.Wrapf(err, errors.ErrInvalidInput, "no value for %s", field.Name).
				WithDetail("field", field.Name)
		}
		field.Set(&fields, value)
	}

	return fields, nil
}

// promptString asks until it gets a non-empty answer or the default
func promptString(reader *bufio.Reader, out io.Writer, prompt, defaultValue string) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(out, "%s [%s]: ", prompt, defaultValue)
		} else {
			fmt.Fprintf(out, "%s: ", prompt)
		}

		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			return input, nil
		}
		if defaultValue != "" {
			return defaultValue, nil
		}
		if err != nil {
			fmt.Fprintln(out)
			return "", err
		}
		fmt.Fprintln(out, "This field is required")
	}
}
