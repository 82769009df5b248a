package style

import (
	"github.com/pterm/pterm"

	"github.com/eloualiche/relink/pkg/types"
)

// StatusStyle returns the pterm style for an entry status.
func StatusStyle(status types.EntryStatus) *pterm.Style {
	switch status {
	case types.StatusSucceeded:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case types.StatusPartiallyFailed:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	case types.StatusSkipped:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// Operation indicators, populated once the registry is loaded.
var (
	SuccessIndicator string
	ErrorIndicator   string
	WarningIndicator string
	InfoIndicator    string
	SkippedIndicator string
)
