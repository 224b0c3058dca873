package issues

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"petrarch/internal/corpus"
)

// VetoPrefix marks a veto code.
const VetoPrefix = "~"

// Entry is one phrase of the table. CodeRef indexes Table.Codes.
type Entry struct {
	Phrase  string
	CodeRef int
}

// Table holds issue phrases in declaration order.
type Table struct {
	Entries []Entry
	Codes   []string
}

// Add appends a phrase for code, interning the code.
func (t *Table) Add(phrase, code string) {
	phrase = normalize(strings.TrimSpace(phrase))
	code = strings.TrimSpace(code)
	if phrase == "" || code == "" {
		return
	}
	ref := -1
	for i, existing := range t.Codes {
		if existing == code {
			ref = i
			break
		}
	}
	if ref < 0 {
		t.Codes = append(t.Codes, code)
		ref = len(t.Codes) - 1
	}
	t.Entries = append(t.Entries, Entry{Phrase: phrase, CodeRef: ref})
}

// Len returns the number of phrases.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// IsVeto reports whether code suppresses all issues.
func IsVeto(code string) bool {
	return strings.HasPrefix(code, VetoPrefix)
}

// Classify returns the issue codes found in text with their counts, in order
// of first occurrence. Any veto phrase yields nil.
func (t *Table) Classify(text string) []corpus.IssueTally {
	if t == nil {
		return nil
	}
	sent := normalize(text)
	var tallies []corpus.IssueTally
	for _, entry := range t.Entries {
		if !strings.Contains(sent, entry.Phrase) {
			continue
		}
		code := t.Codes[entry.CodeRef]
		if IsVeto(code) {
			return nil
		}
		found := false
		for i := range tallies {
			if tallies[i].Code == code {
				tallies[i].Count++
				found = true
				break
			}
		}
		if !found {
			tallies = append(tallies, corpus.IssueTally{Code: code, Count: 1})
		}
	}
	return tallies
}

func normalize(text string) string {
	return cases.Upper(language.Und).String(text)
}
