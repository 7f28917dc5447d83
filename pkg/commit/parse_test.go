package commit

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Message
	}{
		{
			input: "fix: correct minor typos",
			expected: Message{
				Type:    "fix",
				Subject: "correct minor typos",
			},
		},
		{
			input: "feat(parser): add new parsing functions",
			expected: Message{
				Type:    "feat",
				Scope:   "parser",
				Subject: "add new parsing functions",
			},
		},
		{
			input: "refactor(core)!: extract methods",
			expected: Message{
				Type:     "refactor",
				Scope:    "core",
				Breaking: true,
				Subject:  "extract methods",
			},
		},
		{
			input: "style!: remove unused imports",
			expected: Message{
				Type:     "style",
				Breaking: true,
				Subject:  "remove unused imports",
			},
		},
		{
			input: "unknown-type: do something",
			expected: Message{
				Type:    "unknown-type",
				Subject: "do something",
			},
		},
		{
			input: `Revert "feat(api): add endpoint"`,
			expected: Message{
				Type:    "revert",
				Subject: "feat(api): add endpoint",
			},
		},
		{
			input: "wrong format message",
			expected: Message{
				Subject: "wrong format message",
			},
		},
		{
			input: "",
			expected: Message{
				Subject: "",
			},
		},
	}

	for _, test := range tests {
		result := ParseMessage(test.input)
		if result != test.expected {
			t.Errorf("ParseMessage(%q) = %v; want %v", test.input, result, test.expected)
		}
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		raw      string
		expected Record
	}{
		{
			name: "header only",
			hash: "0123456789abcdef",
			raw:  "feat(cli): add notes command\n",
			expected: Record{
				Hash:    "0123456789abcdef",
				Type:    "feat",
				Scope:   "cli",
				Subject: "add notes command",
			},
		},
		{
			name: "breaking footer",
			hash: "abc",
			raw: "fix: drop legacy flag\n\nSome context.\n\nBREAKING CHANGE: the --legacy flag\nwas removed\n\nRefs #12",
			expected: Record{
				Hash:          "abc",
				Type:          "fix",
				Subject:       "drop legacy flag",
				Body:          "Some context.\n\nBREAKING CHANGE: the --legacy flag\nwas removed\n\nRefs #12",
				Breaking:      true,
				BreakingNotes: []string{"the --legacy flag\nwas removed"},
			},
		},
		{
			name: "hyphenated breaking token ends at next footer",
			hash: "def",
			raw:  "chore: bump\r\n\r\nBREAKING-CHANGE: node 20 required\r\nReviewed-by: someone",
			expected: Record{
				Hash:          "def",
				Type:          "chore",
				Subject:       "bump",
				Body:          "BREAKING-CHANGE: node 20 required\nReviewed-by: someone",
				Breaking:      true,
				BreakingNotes: []string{"node 20 required"},
			},
		},
		{
			name: "malformed header",
			hash: "fff",
			raw:  "Merge branch 'main'",
			expected: Record{
				Hash:    "fff",
				Subject: "Merge branch 'main'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRecord(tt.hash, tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseRecord() = %#v; want %#v", got, tt.expected)
			}
		})
	}
}

func TestRecordHeader(t *testing.T) {
	r := Record{Type: "feat", Scope: "api", Breaking: true, Subject: " add v2 "}
	if got, want := r.Header(), "feat(api)!: add v2"; got != want {
		t.Errorf("Header() = %q; want %q", got, want)
	}

	if got, want := (Record{Hash: "0123456789"}).ShortHash(), "0123456"; got != want {
		t.Errorf("ShortHash() = %q; want %q", got, want)
	}
}

func TestShortHash(t *testing.T) {
	tests := []struct {
		hash string
		want string
	}{
		{hash: "", want: ""},
		{hash: "abc", want: "abc"},
		{hash: "0123456", want: "0123456"},
		{hash: "0123456789abcdef", want: "0123456"},
	}

	for _, tt := range tests {
		if got := ShortHash(tt.hash); got != tt.want {
			t.Errorf("ShortHash(%q) = %q; want %q", tt.hash, got, tt.want)
		}
	}
}
