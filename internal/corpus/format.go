package corpus

import (
	"fmt"
	"strings"
	"time"
)

// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01, where
// 0001-01-01 is day 1.
const unixEpochOrdinal = 719163

// DateOrdinal converts a YYYYMMDD date string to a proleptic Gregorian day
// ordinal.
func DateOrdinal(value string) (int, error) {
	value = strings.TrimSpace(value)
	if len(value) < 8 {
		return 0, fmt.Errorf("date %q: expected YYYYMMDD", value)
	}
	t, err := time.Parse("20060102", value[:8])
	if err != nil {
		return 0, fmt.Errorf("date %q: %w", value, err)
	}
	return int(t.Unix()/86400) + unixEpochOrdinal, nil
}

// FormatParsed normalizes a bracketed parse tree into the single-line,
// upper-cased form the sentence coder expects. A wrapping (ROOT ...) node is
// removed and every closing bracket becomes its own token.
func FormatParsed(parsed string) string {
	trimmed := strings.TrimSpace(parsed)
	switch {
	case strings.HasPrefix(trimmed, "(ROOT") && strings.HasSuffix(trimmed, ")"):
		trimmed = strings.TrimSpace(trimmed[len("(ROOT") : len(trimmed)-1])
	case len(trimmed) > 1 && strings.HasPrefix(strings.TrimSpace(trimmed[1:]), "("):
		trimmed = trimmed[1 : len(trimmed)-1]
	}

	var b strings.Builder
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.ReplaceAll(line+" ", ")", " ) ")
		b.WriteString(strings.ToUpper(line))
	}
	return b.String()
}

// CleanText collapses the line breaks and indentation left by XML pretty
// printing into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitRecordID splits an "entry-sentence" identifier on its last hyphen.
func SplitRecordID(id string) (string, string, error) {
	id = strings.TrimSpace(id)
	idx := strings.LastIndex(id, "-")
	if idx <= 0 || idx == len(id)-1 {
		return "", "", fmt.Errorf("id %q: expected entryId-sentenceId", id)
	}
	return id[:idx], id[idx+1:], nil
}
