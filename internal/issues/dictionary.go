package issues

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads an issue dictionary file.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open issue dictionary: %w", err)
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Read parses "PHRASE [CODE]" lines. A "#" starts a comment, underscores in
// the phrase stand for spaces, and lines starting with "<" are section
// markers.
func Read(r io.Reader) (*Table, error) {
	table := &Table{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "<") {
			continue
		}

		open := strings.LastIndex(line, "[")
		end := strings.LastIndex(line, "]")
		if open < 0 || end < open {
			return nil, fmt.Errorf("line %d: expected PHRASE [CODE], got %q", lineNo, line)
		}
		phrase := strings.TrimSpace(strings.ReplaceAll(line[:open], "_", " "))
		code := strings.TrimSpace(line[open+1 : end])
		if phrase == "" || code == "" {
			return nil, fmt.Errorf("line %d: empty phrase or code", lineNo)
		}
		table.Add(phrase, code)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read issue dictionary: %w", err)
	}
	return table, nil
}
