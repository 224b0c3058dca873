package discard_test

import (
	"testing"

	"petrarch/internal/discard"
)

func newTestTrie() *discard.Trie {
	trie := discard.New()
	trie.Insert("troops withdraw", discard.StoryDiscard)
	trie.Insert("basketball", discard.SentenceDiscard)
	trie.Insert("world cup", discard.SentenceDiscard)
	trie.Insert("world cup final", discard.StoryDiscard)
	return trie
}

func TestMatch(t *testing.T) {
	trie := newTestTrie()
	tests := []struct {
		name   string
		text   string
		kind   discard.Kind
		phrase string
	}{
		{"story phrase at start", "Troops withdraw from the border", discard.StoryDiscard, "TROOPS WITHDRAW"},
		{"story phrase mid sentence", "Officials said troops withdraw today", discard.StoryDiscard, "TROOPS WITHDRAW"},
		{"story phrase at end", "Officials said TROOPS WITHDRAW", discard.StoryDiscard, "TROOPS WITHDRAW"},
		{"sentence phrase", "The basketball team won", discard.SentenceDiscard, "BASKETBALL"},
		{"partial phrase", "Troops advanced", discard.NoMatch, ""},
		{"no match", "Parliament passed the budget", discard.NoMatch, ""},
		{"empty text", "", discard.NoMatch, ""},
		{"shorter phrase wins", "the world cup final was held", discard.SentenceDiscard, "WORLD CUP"},
		{"restart after failed walk", "troops troops withdraw", discard.StoryDiscard, "TROOPS WITHDRAW"},
		{"earliest start wins", "basketball before troops withdraw", discard.SentenceDiscard, "BASKETBALL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trie.Match(tt.text)
			if got.Kind != tt.kind || got.Phrase != tt.phrase {
				t.Fatalf("Match(%q) = {%s %q}, want {%s %q}", tt.text, got.Kind, got.Phrase, tt.kind, tt.phrase)
			}
		})
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	trie := newTestTrie()
	text := "Reports say troops withdraw after the basketball game"
	first := trie.Match(text)
	for i := 0; i < 10; i++ {
		if got := trie.Match(text); got != first {
			t.Fatalf("run %d: got %+v want %+v", i, got, first)
		}
	}
}

func TestStoryPriorityAtSameNode(t *testing.T) {
	trie := discard.New()
	trie.Insert("ceasefire", discard.SentenceDiscard)
	trie.Insert("ceasefire", discard.StoryDiscard)
	if trie.Len() != 1 {
		t.Fatalf("expected one distinct phrase, got %d", trie.Len())
	}
	if got := trie.Match("a ceasefire held"); got.Kind != discard.StoryDiscard {
		t.Fatalf("expected story discard priority, got %s", got.Kind)
	}
}

func TestNilTrieNeverMatches(t *testing.T) {
	var trie *discard.Trie
	if got := trie.Match("troops withdraw"); got.Kind != discard.NoMatch {
		t.Fatalf("expected no match from nil trie, got %s", got.Kind)
	}
	if trie.Len() != 0 {
		t.Fatal("expected nil trie to be empty")
	}
}

func TestKindMarker(t *testing.T) {
	if discard.StoryDiscard.Marker() != "+" || discard.SentenceDiscard.Marker() != "$" || discard.NoMatch.Marker() != "" {
		t.Fatal("unexpected kind markers")
	}
}
