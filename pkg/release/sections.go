package release

import (
	"cmp"
	"slices"

	"github.com/duke-git/lancet/v2/slice"

	"github.com/zbiljic/semrel/pkg/commit"
)

// Entry is a single line of a changelog section.
type Entry struct {
	Subject string `json:"subject"`
	Scope   string `json:"scope,omitempty"`
	Hash    string `json:"hash,omitempty"`
}

// Section is a titled group of changelog entries.
type Section struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Changelog is the grouped, ordered changelog of a release.
type Changelog struct {
	Sections        []Section `json:"sections"`
	BreakingChanges []Entry   `json:"breakingChanges,omitempty"`
}

// IsEmpty reports whether the changelog has nothing to show.
func (c Changelog) IsEmpty() bool {
	return len(c.Sections) == 0 && len(c.BreakingChanges) == 0
}

// Subjects returns the entry subjects of the section with the given title.
func (c Changelog) Subjects(title string) []string {
	for _, s := range c.Sections {
		if s.Title == title {
			return slice.Map(s.Entries, func(_ int, e Entry) string { return e.Subject })
		}
	}
	return nil
}

type sectionGroup struct {
	order     int
	firstSeen int
	section   Section
}

// MapSections groups commits into changelog sections.
//
// Commits whose type has no rule, or whose rule is hidden, are skipped.
// Inside a section commits keep their input order. Sections are ordered by
// the lowest Order of the rules feeding them, ties by first appearance.
// Breaking commits are listed in BreakingChanges even when their section is
// skipped.
func MapSections(commits []commit.Record, rules SectionRules) Changelog {
	var (
		groups   []*sectionGroup
		byTitle  = map[string]*sectionGroup{}
		breaking []Entry
	)

	for _, c := range commits {
		if c.Breaking {
			breaking = append(breaking, breakingEntries(c)...)
		}

		rule, ok := rules.Lookup(c.Type)
		if !ok || rule.Hidden {
			continue
		}

		g, ok := byTitle[rule.Section]
		if !ok {
			g = &sectionGroup{
				order:     rule.Order,
				firstSeen: len(groups),
				section:   Section{Title: rule.Section},
			}
			byTitle[rule.Section] = g
			groups = append(groups, g)
		} else if rule.Order < g.order {
			g.order = rule.Order
		}

		g.section.Entries = append(g.section.Entries, Entry{
			Subject: c.Subject,
			Scope:   c.Scope,
			Hash:    c.Hash,
		})
	}

	slices.SortStableFunc(groups, func(a, b *sectionGroup) int {
		if c := cmp.Compare(a.order, b.order); c != 0 {
			return c
		}
		return cmp.Compare(a.firstSeen, b.firstSeen)
	})

	return Changelog{
		Sections:        slice.Map(groups, func(_ int, g *sectionGroup) Section { return g.section }),
		BreakingChanges: breaking,
	}
}

func breakingEntries(c commit.Record) []Entry {
	if len(c.BreakingNotes) == 0 {
		return []Entry{{Subject: c.Subject, Scope: c.Scope, Hash: c.Hash}}
	}
	return slice.Map(c.BreakingNotes, func(_ int, note string) Entry {
		return Entry{Subject: note, Scope: c.Scope, Hash: c.Hash}
	})
}
