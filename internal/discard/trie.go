package discard

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind classifies a match.
type Kind int

const (
	NoMatch Kind = iota
	SentenceDiscard
	StoryDiscard
)

func (k Kind) String() string {
	switch k {
	case SentenceDiscard:
		return "sentence"
	case StoryDiscard:
		return "story"
	default:
		return "none"
	}
}

// Marker returns the dictionary prefix for the kind: "+" for story discards
// and "$" for sentence discards.
func (k Kind) Marker() string {
	switch k {
	case SentenceDiscard:
		return "$"
	case StoryDiscard:
		return "+"
	default:
		return ""
	}
}

// Result is the outcome of Match.
type Result struct {
	Kind   Kind
	Phrase string
}

// node is a trie position. children holds the next tokens; story and
// sentence mark the end of a phrase of that kind. A node can be both internal
// and terminal when one phrase is a prefix of another.
type node struct {
	children map[string]*node
	story    bool
	sentence bool
}

func (n *node) terminal() Kind {
	switch {
	case n.story:
		return StoryDiscard
	case n.sentence:
		return SentenceDiscard
	default:
		return NoMatch
	}
}

// Trie holds discard phrases.
type Trie struct {
	root    *node
	phrases int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: &node{}}
}

// Insert adds a phrase. Phrases are normalized the same way as matched text.
// Empty phrases are ignored.
func (t *Trie) Insert(phrase string, kind Kind) {
	tokens := tokenize(phrase)
	if len(tokens) == 0 || kind == NoMatch {
		return
	}
	current := t.root
	for _, tok := range tokens {
		next, ok := current.children[tok]
		if !ok {
			if current.children == nil {
				current.children = map[string]*node{}
			}
			next = &node{}
			current.children[tok] = next
		}
		current = next
	}
	if current.terminal() == NoMatch {
		t.phrases++
	}
	switch kind {
	case StoryDiscard:
		current.story = true
	case SentenceDiscard:
		current.sentence = true
	}
}

// Len returns the number of distinct phrases.
func (t *Trie) Len() int {
	if t == nil {
		return 0
	}
	return t.phrases
}

// Match reports the first discard phrase contained in text. A nil or empty
// trie never matches.
func (t *Trie) Match(text string) Result {
	if t == nil || t.root == nil {
		return Result{}
	}
	tokens := tokenize(text)
	for start := range tokens {
		if res, ok := t.walk(tokens[start:]); ok {
			return res
		}
	}
	return Result{}
}

// walk follows tokens from the root, checking for a terminal before each
// token is consumed and once more after the last one.
func (t *Trie) walk(tokens []string) (Result, bool) {
	current := t.root
	for i := 0; ; i++ {
		if kind := current.terminal(); kind != NoMatch && current != t.root {
			return Result{Kind: kind, Phrase: strings.Join(tokens[:i], " ")}, true
		}
		if i == len(tokens) {
			return Result{}, false
		}
		next, ok := current.children[tokens[i]]
		if !ok {
			return Result{}, false
		}
		current = next
	}
}

// tokenize upper-cases text and splits it on whitespace. A Caser carries
// state, so each call builds its own.
func tokenize(text string) []string {
	return strings.Fields(cases.Upper(language.Und).String(text))
}
