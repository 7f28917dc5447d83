package promptsx

import (
	"fmt"
	"strings"

	"github.com/orochaa/go-clack/prompts"
	"github.com/orochaa/go-clack/prompts/symbols"
	"github.com/orochaa/go-clack/third_party/picocolors"
)

// Note displays a formatted note box with a title, message, and borders.
func Note(msg string) {
	prompts.Note(msg, prompts.NoteOptions{})
}

// InfoWithLastLine displays an informational message with a blue info symbol
// and a last line.
func InfoWithLastLine(msg string) {
	prompts.Message(msg, prompts.MessageOptions{
		FirstLine: prompts.MessageLineOptions{
			Start: picocolors.Blue(symbols.INFO),
		},
		NewLine: prompts.MessageLineOptions{
			Start: picocolors.Gray(symbols.BAR),
		},
		LastLine: prompts.MessageLineOptions{
			Start: picocolors.Gray(symbols.BAR),
		},
	})
}

// List displays a title followed by indented items, truncated after max
// items when max is positive.
func List(title string, items []string, max int) {
	shown := items
	if max > 0 && len(items) > max {
		shown = items[:max]
	}

	var sb strings.Builder
	sb.WriteString(title)
	for _, item := range shown {
		sb.WriteString("\n     ")
		sb.WriteString(item)
	}
	if len(shown) < len(items) {
		sb.WriteString("\n     ")
		sb.WriteString(picocolors.Dim(fmt.Sprintf("... and %d more", len(items)-len(shown))))
	}

	InfoWithLastLine(sb.String())
}
