package coding_test

import (
	"context"
	"strings"
	"time"

	"petrarch/internal/config"
	"petrarch/internal/corpus"
	"petrarch/internal/services"
)

// stubCoder answers from a text-keyed table and records every request.
type stubCoder struct {
	events map[string][]corpus.Event
	fail   map[string]error
	panics map[string]bool
	calls  []services.CodeRequest
}

func newStubCoder() *stubCoder {
	return &stubCoder{
		events: map[string][]corpus.Event{},
		fail:   map[string]error{},
		panics: map[string]bool{},
	}
}

func (s *stubCoder) Code(_ context.Context, req services.CodeRequest) ([]corpus.Event, error) {
	s.calls = append(s.calls, req)
	if s.panics[req.Text] {
		panic("tree walk exploded")
	}
	if err, ok := s.fail[req.Text]; ok {
		return nil, err
	}
	return append([]corpus.Event(nil), s.events[req.Text]...), nil
}

func (s *stubCoder) visited() []string {
	out := make([]string, 0, len(s.calls))
	for _, call := range s.calls {
		out = append(out, call.StoryID+"-"+call.SentenceID)
	}
	return out
}

func sentence(text string, directives ...config.Directive) *corpus.Sentence {
	return &corpus.Sentence{
		Text:   text,
		Parsed: "(S (NP (NNP " + strings.ToUpper(text) + " ) ) ) ",
		Config: directives,
	}
}

func story(sentences map[string]*corpus.Sentence) *corpus.Story {
	return &corpus.Story{Meta: corpus.Meta{Date: "20140101", Source: "AFP"}, Sentences: sentences}
}

func fakeClock() func() time.Time {
	current := time.Unix(0, 0)
	return func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}
}

var (
	fraUSA = corpus.Event{Source: "FRA", Target: "USA", Code: "111"}
	usaRus = corpus.Event{Source: "USA", Target: "RUS", Code: "042"}
)
