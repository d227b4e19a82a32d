// Package terminal provides rich terminal output with colors, tables and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/style"
	"github.com/arthur-debert/snortamv/pkg/types"
	"github.com/pterm/pterm"
)

// Result lines, in style markup
const (
	msgAppended    = "Appended to [path]{{target}}[/path]"
	msgSeeded      = "[muted]file created with the default directive[/muted]"
	msgTransition  = "[bold]{{command}}[/bold] [bold]{{rule}}[/bold]  %s → %s  [muted]({{action}})[/muted]"
	msgBuilt       = "Built [path]{{output}}[/path]"
	msgBuildStats  = "[muted]{{files}} files, {{directives}} directives, {{bytes}} bytes[/muted]"
	msgBackedUp    = "Backed up {{files}} files to [path]{{path}}[/path]"
	msgChecksum    = "[code]{{checksum}}[/code]"
	msgRulesIn     = "[title]Rules in {{root}}[/title]"
	msgLocalFile   = "[subtitle]Quick-start file[/subtitle] [path]{{path}}[/path] {{status}}"
	msgLocalCount  = "{{directives}} directives"
	msgLocalAbsent = "[warning]missing[/warning]"
	msgTreeRoot    = "Rule tree at [path]{{root}}[/path]"
	msgLocalKept   = "{{file}} already exists"
	msgLocalMade   = "created {{file}}"
	msgProblem     = "[error]{{problem}}[/error]"
	msgConflict    = "[error]sid {{sid}}[/error] declared by {{files}}"
	msgValid       = "[success]rule tree is valid[/success]"
	msgInvalid     = "[error]rule tree is invalid[/error]"
	msgDryRun      = "[warning][dry-run][/warning]"
	msgNone        = "[muted]none[/muted]"
	msgDetail      = "[muted]{{key}}: {{value}}[/muted]"
	msgFailure     = "[error]{{error}}[/error]"
)

// Renderer provides rich terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.ListResult:
		return r.renderList(v)
	case *types.AddResult:
		lines := []string{
			r.header(v.DryRun, msgAppended, vars{"target": v.Target}),
			style.Indent(style.CodeStyle.Render(v.Line), 1),
		}
		if v.Created {
			lines = append(lines, style.Indent(style.Render(msgSeeded), 1))
		}
		return r.print(lines...)
	case *types.TransitionResult:
		tmpl := fmt.Sprintf(msgTransition, style.StateTag(v.From, "{{from}}"), style.StateTag(v.To, "{{to}}"))
		return r.print(r.header(v.DryRun, tmpl, vars{
			"command": v.Command,
			"rule":    v.Rule,
			"from":    v.From,
			"to":      v.To,
			"action":  v.Action,
		}))
	case *types.BuildResult:
		return r.renderBuild(v)
	case *types.BackupResult:
		lines := []string{r.header(v.DryRun, msgBackedUp, vars{
			"files": strconv.Itoa(v.Files),
			"path":  v.Path,
		})}
		if v.Checksum != "" {
			lines = append(lines, style.Indent(style.RenderTemplate(msgChecksum, vars{"checksum": v.Checksum}), 1))
		}
		return r.print(lines...)
	case *types.SetupResult:
		return r.renderSetup(v)
	case *types.ValidateResult:
		return r.renderValidate(v)
	case *types.MessageResult:
		return r.print(strings.TrimRight(v.Message, "\n"))
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	lines := []string{style.ErrorIndicator + " " + style.RenderTemplate(msgFailure, vars{"error": err.Error()})}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		for _, key := range sortedKeys(details) {
			lines = append(lines, style.Indent(style.RenderTemplate(msgDetail, vars{
				"key":   key,
				"value": fmt.Sprintf("%v", details[key]),
			}), 1))
		}
	}
	return r.print(lines...)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.print(style.InfoIndicator + " " + style.NormalStyle.Render(msg))
}

type vars = map[string]string

func (r *Renderer) print(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

// header renders tmpl behind the outcome indicator of an operation
func (r *Renderer) header(dryRun bool, tmpl string, values vars) string {
	text := style.RenderTemplate(tmpl, values)
	if dryRun {
		return style.Outcome(true) + " " + style.Render(msgDryRun) + " " + text
	}
	return style.Outcome(false) + " " + text
}

func (r *Renderer) renderList(v *types.ListResult) error {
	data := pterm.TableData{{"State", "Rules"}}
	rows := []struct {
		state string
		names []string
	}{
		{"source", v.Source},
		{"enabled", v.Enabled},
		{"disabled", v.Disabled},
		{"backups", v.Backups},
	}
	for _, row := range rows {
		names := style.Render(msgNone)
		if len(row.names) > 0 {
			names = strings.Join(row.names, ", ")
		}
		data = append(data, []string{style.RenderState(row.state), names})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	status := style.WarningIndicator + " " + style.Render(msgLocalAbsent)
	if v.Local.Exists {
		status = style.SuccessIndicator + " " +
			style.RenderTemplate(msgLocalCount, vars{"directives": strconv.Itoa(v.Local.Directives)})
	}

	return r.print(
		style.RenderTemplate(msgRulesIn, vars{"root": v.Root}),
		table,
		style.RenderTemplate(msgLocalFile, vars{"path": v.Local.Path, "status": status}),
	)
}

func (r *Renderer) renderBuild(v *types.BuildResult) error {
	lines := []string{
		r.header(v.DryRun, msgBuilt, vars{"output": v.Output}),
		style.Indent(style.RenderTemplate(msgBuildStats, vars{
			"files":      strconv.Itoa(len(v.Files)),
			"directives": strconv.Itoa(v.Directives),
			"bytes":      strconv.Itoa(v.Bytes),
		}), 1),
	}
	for _, f := range v.Files {
		lines = append(lines, style.Indent(style.RenderTemplate(style.StateTag("enabled", "{{file}}"), vars{"file": f}), 1))
	}
	lines = append(lines, style.Indent(style.RenderTemplate(msgChecksum, vars{"checksum": v.Checksum}), 1))
	return r.print(lines...)
}

func (r *Renderer) renderSetup(v *types.SetupResult) error {
	lines := []string{r.header(v.DryRun, msgTreeRoot, vars{"root": v.Root})}
	for _, d := range v.Directories {
		lines = append(lines, style.Indent(d, 1))
	}
	if v.LocalExisted {
		lines = append(lines, style.InfoIndicator+" "+style.RenderTemplate(msgLocalKept, vars{"file": v.LocalFile}))
	} else {
		lines = append(lines, style.SuccessIndicator+" "+style.RenderTemplate(msgLocalMade, vars{"file": v.LocalFile}))
	}
	return r.print(lines...)
}

func (r *Renderer) renderValidate(v *types.ValidateResult) error {
	var lines []string
	for _, p := range v.Problems {
		lines = append(lines, style.ErrorIndicator+" "+style.RenderTemplate(msgProblem, vars{"problem": p}))
	}

	data := pterm.TableData{{"State", "File", "Directives", "Issues"}}
	for _, f := range v.Files {
		issues := style.SuccessIndicator
		if len(f.Issues) > 0 {
			issues = style.ErrorStyle.Render(strconv.Itoa(len(f.Issues)))
		}
		data = append(data, []string{style.RenderState(f.State), f.Name, strconv.Itoa(f.Directives), issues})
	}
	if len(v.Files) > 0 {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		lines = append(lines, table)
	}

	for _, f := range v.Files {
		for _, issue := range f.Issues {
			lines = append(lines, style.WarningIndicator+" "+f.Name+": "+issue.Message)
		}
	}
	for _, c := range v.Conflicts {
		lines = append(lines, style.ErrorIndicator+" "+style.RenderTemplate(msgConflict, vars{
			"sid":   strconv.FormatUint(c.SID, 10),
			"files": strings.Join(c.Files, ", "),
		}))
	}

	if v.Valid {
		lines = append(lines, style.SuccessIndicator+" "+style.Render(msgValid))
	} else {
		lines = append(lines, style.ErrorIndicator+" "+style.Render(msgInvalid))
	}
	return r.print(lines...)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
