package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// ErrOutputLocked is returned when another run holds the output lock.
var ErrOutputLocked = errors.New("event output is locked by another run")

// WriteEvents writes one tab-delimited line per coded event:
// date, source, target, event code, story-sentence id, issues. Discarded
// stories and sentences without events produce no lines.
func WriteEvents(w io.Writer, c Corpus) (int, error) {
	buf := bufio.NewWriter(w)
	lines := 0
	for _, storyID := range c.StoryIDs() {
		story := c[storyID]
		if story.Discarded {
			continue
		}
		for _, sentenceID := range story.SentenceIDs() {
			sent := story.Sentences[sentenceID]
			date := sent.Date
			if date == "" {
				date = story.Meta.Date
			}
			issues := formatIssues(sent.Issues)
			for _, ev := range sent.Events {
				fields := []string{date, ev.Source, ev.Target, ev.Code, storyID + "-" + sentenceID, issues}
				if _, err := buf.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
					return lines, fmt.Errorf("write events: %w", err)
				}
				lines++
			}
		}
	}
	if err := buf.Flush(); err != nil {
		return lines, fmt.Errorf("flush events: %w", err)
	}
	return lines, nil
}

// WriteEventsFile writes the event file at path while holding an advisory
// lock on path+".lock".
func WriteEventsFile(path string, c Corpus) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, errors.New("event output path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrOutputLocked, path)
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open event file: %w", err)
	}
	lines, err := WriteEvents(file, c)
	if err != nil {
		_ = file.Close()
		return lines, err
	}
	if err := file.Close(); err != nil {
		return lines, fmt.Errorf("close event file: %w", err)
	}
	return lines, nil
}

func formatIssues(issues []IssueTally) string {
	if len(issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Code+","+strconv.Itoa(issue.Count))
	}
	return strings.Join(parts, ";")
}
