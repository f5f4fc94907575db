package term

import (
	"github.com/fatih/color"
)

var (
	GreenHighlight  = color.New(color.FgGreen).SprintFunc()
	RedHighlight    = color.New(color.FgRed).SprintFunc()
	YellowHighlight = color.New(color.FgYellow).SprintFunc()

	MagentaHighlight = color.New(color.FgMagenta).SprintFunc()

	Underline = color.New(color.Underline).SprintFunc()

	Highlight = MagentaHighlight
)

// ColoredCheckResult returns "passed" in green if err is nil, otherwise
// "failed" in red.
func ColoredCheckResult(err error) string {
	if err == nil {
		return GreenHighlight("passed")
	}

	return RedHighlight("failed")
}
