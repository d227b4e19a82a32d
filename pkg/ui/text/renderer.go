// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/snortamv/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var lines []string
	switch v := result.(type) {
	case *types.ListResult:
		lines = listLines(v)
	case *types.AddResult:
		lines = []string{prefix(v.DryRun) + "appended to " + v.Target, "  " + v.Line}
		if v.Created {
			lines = append(lines, "  (file created with the default directive)")
		}
	case *types.TransitionResult:
		lines = []string{fmt.Sprintf("%s%s %s: %s -> %s (%s)",
			prefix(v.DryRun), v.Command, v.Rule, v.From, v.To, v.Action)}
	case *types.BuildResult:
		lines = []string{fmt.Sprintf("%sbuilt %s from %d files (%d directives, %d bytes)",
			prefix(v.DryRun), v.Output, len(v.Files), v.Directives, v.Bytes)}
		for _, f := range v.Files {
			lines = append(lines, "  "+f)
		}
		lines = append(lines, "  "+v.Checksum)
	case *types.BackupResult:
		lines = []string{fmt.Sprintf("%sbacked up %d files to %s",
			prefix(v.DryRun), v.Files, v.Path)}
		if v.Checksum != "" {
			lines = append(lines, "  "+v.Checksum)
		}
	case *types.SetupResult:
		lines = setupLines(v)
	case *types.ValidateResult:
		lines = validateLines(v)
	case *types.MessageResult:
		lines = []string{strings.TrimRight(v.Message, "\n")}
	default:
		lines = []string{fmt.Sprintf("%+v", result)}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func prefix(dryRun bool) string {
	if dryRun {
		return "[dry-run] "
	}
	return ""
}

func joined(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

func listLines(v *types.ListResult) []string {
	local := "missing"
	if v.Local.Exists {
		local = fmt.Sprintf("%d directives", v.Local.Directives)
	}
	return []string{
		"root:     " + v.Root,
		"source:   " + joined(v.Source),
		"enabled:  " + joined(v.Enabled),
		"disabled: " + joined(v.Disabled),
		"backups:  " + joined(v.Backups),
		"local:    " + v.Local.Path + " (" + local + ")",
	}
}

func setupLines(v *types.SetupResult) []string {
	lines := []string{prefix(v.DryRun) + "rule tree at " + v.Root}
	for _, d := range v.Directories {
		lines = append(lines, "  "+d)
	}
	if v.LocalExisted {
		lines = append(lines, v.LocalFile+" already exists")
	} else {
		lines = append(lines, "created "+v.LocalFile)
	}
	return lines
}

func validateLines(v *types.ValidateResult) []string {
	var lines []string
	for _, p := range v.Problems {
		lines = append(lines, "problem: "+p)
	}
	for _, f := range v.Files {
		status := "ok"
		if len(f.Issues) > 0 {
			status = fmt.Sprintf("%d issues", len(f.Issues))
		}
		lines = append(lines, fmt.Sprintf("%s/%s: %d directives, %s", f.State, f.Name, f.Directives, status))
		for _, issue := range f.Issues {
			lines = append(lines, "  "+issue.Message)
		}
	}
	for _, c := range v.Conflicts {
		lines = append(lines, fmt.Sprintf("sid %d declared by %s", c.SID, strings.Join(c.Files, ", ")))
	}
	if v.Valid {
		lines = append(lines, "rule tree is valid")
	} else {
		lines = append(lines, "rule tree is invalid")
	}
	return lines
}
