package outwriter

import (
	"os"

	"github.com/huangsam/loadout/internal/contract"
	"golang.org/x/term"
)

// getMaxComponentWidth calculates the maximum width for component labels in
// table output based on terminal width.
func getMaxComponentWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Score + Label + Slots + six attribute columns
	baseWidth := 30 + 6*8

	// Reserve space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 50 {
		return 50
	}
	return available
}
