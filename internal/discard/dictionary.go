package discard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a discard dictionary file.
func Load(path string) (*Trie, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open discard dictionary: %w", err)
	}
	defer file.Close()

	trie, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trie, nil
}

// Read parses discard dictionary lines. A "#" starts a comment, a leading
// "+" marks a story discard, an optional leading "$" marks a sentence
// discard, and underscores stand for spaces. Lines starting with "<" are
// section markers and are skipped.
func Read(r io.Reader) (*Trie, error) {
	trie := New()
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

		kind := SentenceDiscard
		switch line[0] {
		case '+':
			kind = StoryDiscard
			line = line[1:]
		case '$':
			line = line[1:]
		}
		phrase := strings.TrimSpace(strings.ReplaceAll(line, "_", " "))
		if phrase == "" {
			return nil, fmt.Errorf("line %d: empty discard phrase", lineNo)
		}
		trie.Insert(phrase, kind)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read discard dictionary: %w", err)
	}
	return trie, nil
}
