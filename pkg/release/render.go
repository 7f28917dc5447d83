package release

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zbiljic/semrel/pkg/commit"
)

// NotesContext carries release metadata rendered into the notes header.
type NotesContext struct {
	Version string
	Date    time.Time
}

const breakingChangesTitle = "⚠ BREAKING CHANGES"

// RenderMarkdown writes the changelog as conventional-changelog style
// markdown.
func RenderMarkdown(w io.Writer, nc NotesContext, c Changelog) error {
	var sb strings.Builder

	title := nc.Version
	if title == "" {
		title = "Unreleased"
	}
	if nc.Date.IsZero() {
		fmt.Fprintf(&sb, "## %s\n", title)
	} else {
		fmt.Fprintf(&sb, "## %s (%s)\n", title, nc.Date.Format(time.DateOnly))
	}

	if len(c.BreakingChanges) > 0 {
		writeMarkdownSection(&sb, breakingChangesTitle, c.BreakingChanges)
	}

	for _, s := range c.Sections {
		writeMarkdownSection(&sb, s.Title, s.Entries)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMarkdownSection(sb *strings.Builder, title string, entries []Entry) {
	fmt.Fprintf(sb, "\n### %s\n\n", title)
	for _, e := range entries {
		sb.WriteString("* ")
		if e.Scope != "" {
			fmt.Fprintf(sb, "**%s:** ", e.Scope)
		}
		sb.WriteString(indentContinuation(e.Subject))
		if e.Hash != "" {
			fmt.Fprintf(sb, " (%s)", commit.ShortHash(e.Hash))
		}
		sb.WriteString("\n")
	}
}

// indentContinuation keeps multi-line entries inside their list item.
func indentContinuation(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n  ")
}
