package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// StateStyle returns the pterm style used for a rule state label
func StateStyle(state string) *pterm.Style {
	switch state {
	case "source":
		return pterm.NewStyle(pterm.FgMagenta, pterm.Bold)
	case "enabled":
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	case "disabled":
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case "generated", "backups":
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderState renders a padded, colored state label
func RenderState(state string) string {
	return StateStyle(state).Sprint(fmt.Sprintf("%-9s", state))
}

// Outcome renders the indicator for a finished operation
func Outcome(dryRun bool) string {
	if dryRun {
		return PendingIndicator
	}
	return SuccessIndicator
}
