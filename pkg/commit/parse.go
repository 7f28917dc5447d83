package commit

import (
	"regexp"
	"strings"
)

var (
	commitMessageRegex = regexp.MustCompile(`^(?P<type>[\w\-]+)(\((?P<scope>[\w\-\.\/ ,]+)\))?(!)?: (?P<message>.+)$`)
	revertMessageRegex = regexp.MustCompile(`^[Rr]evert:? "(?P<header>.+)"\s*$`)
)

// ParseMessage parses a single commit header line.
func ParseMessage(message string) Message {
	message = strings.TrimSpace(message)

	if match := revertMessageRegex.FindStringSubmatch(message); len(match) > 0 {
		return Message{
			Type:    "revert",
			Subject: match[1],
		}
	}

	match := commitMessageRegex.FindStringSubmatch(message)
	if len(match) == 0 {
		return Message{
			Subject: message,
		}
	}

	typeString := match[1]
	scopeString := match[3]
	breakingString := match[4]
	messageString := match[5]

	if typeString == "" {
		return Message{
			Subject: message,
		}
	}

	return Message{
		Type:     typeString,
		Scope:    strings.TrimSpace(scopeString),
		Breaking: breakingString != "",
		Subject:  strings.TrimSpace(messageString),
	}
}

// ParseRecord parses a full raw commit message (header, body and footers).
//
// A header that does not follow the conventional format produces a record
// with an empty type. Breaking change footers mark the record as breaking
// and their text is collected into BreakingNotes.
func ParseRecord(hash, raw string) Record {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.TrimSpace(raw)

	header, body, _ := strings.Cut(raw, "\n")
	m := ParseMessage(header)

	r := Record{
		Hash:     strings.TrimSpace(hash),
		Type:     m.Type,
		Scope:    m.Scope,
		Subject:  m.Subject,
		Body:     strings.TrimSpace(body),
		Breaking: m.Breaking,
	}

	if notes := parseBreakingNotes(r.Body); len(notes) > 0 {
		r.Breaking = true
		r.BreakingNotes = notes
	}

	return r
}

// parseBreakingNotes extracts the text following breaking change footer
// tokens. A note continues until the next blank line or the next footer.
func parseBreakingNotes(body string) []string {
	if body == "" {
		return nil
	}

	var (
		notes   []string
		current []string
	)

	flush := func() {
		if len(current) > 0 {
			notes = append(notes, strings.TrimSpace(strings.Join(current, "\n")))
			current = nil
		}
	}

	inNote := false
	for _, line := range strings.Split(body, "\n") {
		if text, ok := cutBreakingToken(line); ok {
			flush()
			inNote = true
			if text != "" {
				current = append(current, text)
			}
			continue
		}

		if !inNote {
			continue
		}

		if strings.TrimSpace(line) == "" || isFooterLine(line) {
			flush()
			inNote = false
			continue
		}

		current = append(current, strings.TrimSpace(line))
	}
	flush()

	return notes
}

func cutBreakingToken(line string) (string, bool) {
	for _, token := range BreakingChangeTokens {
		if rest, ok := strings.CutPrefix(line, token+":"); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

var footerRegex = regexp.MustCompile(`^[\w\-]+(: | #)`)

func isFooterLine(line string) bool {
	return footerRegex.MatchString(line)
}
