package corpus

import (
	"sort"

	"petrarch/internal/config"
)

// Corpus maps story identifiers to stories.
type Corpus map[string]*Story

// Meta carries story-level metadata.
type Meta struct {
	Date   string `json:"date"`
	Source string `json:"source"`
}

// Story is one document of the corpus.
type Story struct {
	Meta      Meta                 `json:"meta"`
	Sentences map[string]*Sentence `json:"sentences,omitempty"`
	Discarded bool                 `json:"discarded,omitempty"`
}

// Sentence is a single unit of coding. Events and Issues are filled in by the
// orchestrator.
type Sentence struct {
	Text   string             `json:"text"`
	Parsed string             `json:"parsed,omitempty"`
	Config []config.Directive `json:"config,omitempty"`
	Date   string             `json:"date,omitempty"`
	Events []Event            `json:"events,omitempty"`
	Issues []IssueTally       `json:"issues,omitempty"`
}

// Event is a coded (source, target, event code) triple.
type Event struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Code   string `json:"code"`
}

// IssueTally counts how often an issue code matched a sentence.
type IssueTally struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// Complete reports whether every part of the triple is filled.
func (e Event) Complete() bool {
	return e.Source != "" && e.Target != "" && e.Code != ""
}

// Less orders events by source, target, then code.
func (e Event) Less(other Event) bool {
	if e.Source != other.Source {
		return e.Source < other.Source
	}
	if e.Target != other.Target {
		return e.Target < other.Target
	}
	return e.Code < other.Code
}

// StoryIDs returns the story identifiers in traversal order.
func (c Corpus) StoryIDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Add inserts a sentence, creating the story on first use. Story metadata is
// taken from the first sentence added for that story.
func (c Corpus) Add(storyID, sentenceID string, meta Meta, sentence *Sentence) {
	story, ok := c[storyID]
	if !ok {
		story = &Story{Meta: meta, Sentences: map[string]*Sentence{}}
		c[storyID] = story
	}
	if story.Sentences == nil {
		story.Sentences = map[string]*Sentence{}
	}
	story.Sentences[sentenceID] = sentence
}

// SentenceCount returns the number of sentences across all stories that are
// not discarded.
func (c Corpus) SentenceCount() int {
	total := 0
	for _, story := range c {
		total += len(story.Sentences)
	}
	return total
}

// SentenceIDs returns the sentence identifiers in traversal order.
func (s *Story) SentenceIDs() []string {
	ids := make([]string, 0, len(s.Sentences))
	for id := range s.Sentences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Discard applies a story-level discard.
func (s *Story) Discard() {
	s.Sentences = nil
	s.Discarded = true
}

// SortEvents returns a sorted copy of events.
func SortEvents(events []Event) []Event {
	out := append([]Event(nil), events...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// EventSet returns the sorted distinct events of events.
func EventSet(events []Event) []Event {
	sorted := SortEvents(events)
	out := sorted[:0]
	for _, ev := range sorted {
		if len(out) > 0 && ev == out[len(out)-1] {
			continue
		}
		out = append(out, ev)
	}
	return out
}
