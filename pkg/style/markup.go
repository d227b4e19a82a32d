package style

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with the package styles.
// Tags may nest; unknown tags are left untouched.
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
	tags     []string
}

// NewMarkupParser creates a parser knowing the text and rule state styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, s := range map[string]lipgloss.Style{
		"title":    TitleStyle,
		"subtitle": SubtitleStyle,
		"success":  SuccessStyle,
		"error":    ErrorStyle,
		"warning":  WarningStyle,
		"info":     InfoStyle,
		"code":     CodeStyle,
		"path":     PathStyle,
		"muted":    MutedStyle,
		"bold":     lipgloss.NewStyle().Bold(true),

		"source":    SourceStyle,
		"enabled":   EnabledStyle,
		"disabled":  DisabledStyle,
		"generated": GeneratedStyle,
		"backups":   MutedStyle,
	} {
		p.styles[tag] = s
		p.patterns[tag] = regexp.MustCompile(`(?s)\[` + tag + `\](.*?)\[/` + tag + `\]`)
		p.tags = append(p.tags, tag)
	}
	sort.Strings(p.tags)
	return p
}

// Render replaces every known tag pair with its styled content
func (p *MarkupParser) Render(text string) string {
	for {
		before := text
		for _, tag := range p.tags {
			s := p.styles[tag]
			text = p.patterns[tag].ReplaceAllStringFunc(text, func(match string) string {
				inner := match[len(tag)+2 : len(match)-len(tag)-3]
				return s.Render(inner)
			})
		}
		if text == before {
			return text
		}
	}
}

// RenderTemplate renders the markup of template, then fills {{name}}
// placeholders from vars. Values are inserted after styling, so markup in a
// value (a rule name, a message) is printed as is.
func (p *MarkupParser) RenderTemplate(template string, vars map[string]string) string {
	out := p.Render(template)
	if len(vars) == 0 {
		return out
	}
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(out)
}

var defaultParser = NewMarkupParser()

// Render renders markup with the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// RenderTemplate renders a template with the default parser
func RenderTemplate(template string, vars map[string]string) string {
	return defaultParser.RenderTemplate(template, vars)
}

// StateTag wraps text in the markup tag of a rule state, or bold for
// anything that is not a state
func StateTag(state, text string) string {
	tag := state
	if !isState(tag) {
		tag = "bold"
	}
	return "[" + tag + "]" + text + "[/" + tag + "]"
}

func isState(tag string) bool {
	switch tag {
	case "source", "enabled", "disabled", "generated", "backups":
		return true
	}
	return false
}
