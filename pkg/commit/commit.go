package commit

import (
	"fmt"
	"strings"
)

// Message is the parsed header line of a conventional commit.
type Message struct {
	Type     string
	Scope    string
	Breaking bool
	Subject  string
}

// ToString converts the Message struct into a string representation.
func (m Message) ToString() string {
	var out string
	if m.Type != "" {
		if strings.HasSuffix(m.Type, "!") {
			m.Type = m.Type[:len(m.Type)-1]
			m.Breaking = true
		}
		m.Type = strings.TrimSpace(m.Type)
		out += m.Type
		if m.Scope != "" {
			if strings.HasSuffix(m.Scope, "!") {
				m.Scope = m.Scope[:len(m.Scope)-1]
				m.Breaking = true
			}
			m.Scope = strings.TrimSpace(m.Scope)
			out += fmt.Sprintf("(%s)", m.Scope)
		}
		if m.Breaking {
			out += "!"
		}
		out += ": "
	}
	out += strings.TrimSpace(m.Subject)
	return out
}

// Record is a single commit taken from history. Records are treated as
// immutable values once parsed.
type Record struct {
	Hash          string
	Type          string
	Scope         string
	Subject       string
	Body          string
	Breaking      bool
	BreakingNotes []string
}

// Header returns the conventional header of the record.
func (r Record) Header() string {
	return Message{
		Type:     r.Type,
		Scope:    r.Scope,
		Breaking: r.Breaking,
		Subject:  r.Subject,
	}.ToString()
}

// ShortHash returns the abbreviated commit hash.
func (r Record) ShortHash() string {
	return ShortHash(r.Hash)
}

// ShortHash abbreviates a commit hash.
func ShortHash(hash string) string {
	if len(hash) > shortHashLength {
		return hash[:shortHashLength]
	}
	return hash
}

// NormalizedType returns the lowercase commit type used for rule lookups.
func (r Record) NormalizedType() string {
	return strings.ToLower(strings.TrimSpace(r.Type))
}
