package validation

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"petrarch/internal/config"
	"petrarch/internal/corpus"
	"petrarch/internal/services"
)

// Key identifies one gold sentence.
type Key struct {
	StoryID    string
	SentenceID string
}

func (k Key) String() string {
	return k.StoryID + "-" + k.SentenceID
}

// Expectation is the expected answer for one sentence. Empty and Error both
// score as an empty event set.
type Expectation struct {
	Events []corpus.Event `json:"events,omitempty"`
	Empty  bool           `json:"empty,omitempty"`
	Error  bool           `json:"error,omitempty"`
}

// Record is a validated gold sentence record.
type Record struct {
	Key
	Date        string
	Source      string
	Text        string
	Parsed      string
	Directives  []config.Directive
	Expectation *Expectation
}

// Environment carries the optional dictionary and pause settings of a gold
// file. Empty fields leave the configured values alone.
type Environment struct {
	VerbFile    string `xml:"Verbfile"`
	ActorFile   string `xml:"Actorfile"`
	AgentFile   string `xml:"Agentfile"`
	DiscardFile string `xml:"Discardfile"`
	IssueFile   string `xml:"Issuefile"`
	Pause       string `xml:"Pause"`
}

// Gold is a parsed gold corpus.
type Gold struct {
	Records     []Record
	Expected    map[Key]Expectation
	Environment Environment
	// Directives is the final value of every Config option, in first-seen
	// order.
	Directives []config.Directive
}

// Corpus builds a fresh corpus from the gold records. Every record is coded
// as its own story keyed by its full id, so a story discard only drops that
// record. Each call returns new sentences, so a gold file can be coded more
// than once.
func (g *Gold) Corpus() corpus.Corpus {
	c := corpus.Corpus{}
	for _, rec := range g.Records {
		c.Add(rec.Key.String(), rec.SentenceID, corpus.Meta{Date: rec.Date, Source: rec.Source}, &corpus.Sentence{
			Text:   rec.Text,
			Parsed: rec.Parsed,
			Config: append([]config.Directive(nil), rec.Directives...),
			Date:   rec.Date,
		})
	}
	return c
}

// Load parses the gold file at path.
func Load(path string) (*Gold, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "validation", "open gold file", path, err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads a gold document. Any malformed record aborts parsing with an
// error wrapping services.ErrMalformedInput.
func Parse(r io.Reader) (*Gold, error) {
	gold := &Gold{Expected: map[Key]Expectation{}}
	directives := &directiveSet{}

	other := func(d *xml.Decoder, start xml.StartElement) error {
		switch start.Name.Local {
		case "Config":
			var elem struct {
				Option *string `xml:"option,attr"`
				Value  string  `xml:"value,attr"`
			}
			if err := d.DecodeElement(&elem, &start); err != nil {
				return malformed("decode Config", err)
			}
			if elem.Option == nil || strings.TrimSpace(*elem.Option) == "" {
				return malformed("Config element without option", nil)
			}
			directives.set(config.Directive{Option: strings.TrimSpace(*elem.Option), Value: strings.TrimSpace(elem.Value)})
		case "Environment":
			if err := d.DecodeElement(&gold.Environment, &start); err != nil {
				return malformed("decode Environment", err)
			}
			gold.Environment.trim()
		}
		return nil
	}

	each := func(elem *corpus.SentenceElement) error {
		rec, ok, err := buildRecord(elem)
		if err != nil || !ok {
			return err
		}
		rec.Directives = directives.snapshot()
		gold.Records = append(gold.Records, rec)
		if rec.Expectation != nil {
			gold.Expected[rec.Key] = mergeExpectation(gold.Expected[rec.Key], *rec.Expectation)
		}
		return nil
	}

	if err := corpus.EachSentence(r, each, other); err != nil {
		if errors.Is(err, services.ErrMalformedInput) {
			return nil, err
		}
		return nil, malformed("read gold document", err)
	}
	gold.Directives = directives.snapshot()
	return gold, nil
}

func buildRecord(elem *corpus.SentenceElement) (Record, bool, error) {
	if err := elem.Check(); err != nil {
		return Record{}, false, malformed("sentence record", err)
	}
	if !elem.IsSentence() {
		return Record{}, false, nil
	}
	storyID, sentenceID, err := corpus.SplitRecordID(elem.ID)
	if err != nil {
		return Record{}, false, malformed("sentence record", err)
	}
	key := Key{StoryID: storyID, SentenceID: sentenceID}
	if !elem.HasParse() {
		return Record{}, false, malformed(key.String()+" has no Parse", nil)
	}
	exp, err := expectationOf(key, elem.Codings)
	if err != nil {
		return Record{}, false, err
	}
	sent := elem.ToSentence()
	return Record{
		Key:         key,
		Date:        strings.TrimSpace(elem.Date),
		Source:      strings.TrimSpace(elem.Source),
		Text:        sent.Text,
		Parsed:      sent.Parsed,
		Expectation: exp,
	}, true, nil
}

func expectationOf(key Key, codings []corpus.CodingElement) (*Expectation, error) {
	if len(codings) == 0 {
		return nil, nil
	}
	exp := &Expectation{}
	for _, coding := range codings {
		switch {
		case coding.NoEvents != nil:
			exp.Empty = true
		case coding.Error != nil:
			exp.Error = true
		default:
			ev := coding.Event()
			if !ev.Complete() {
				return nil, malformed(fmt.Sprintf("%s: EventCoding needs sourcecode, targetcode and eventcode", key), nil)
			}
			exp.Events = append(exp.Events, ev)
		}
	}
	return exp, nil
}

// mergeExpectation joins expectations of records that repeat an id.
func mergeExpectation(prev, next Expectation) Expectation {
	prev.Events = append(prev.Events, next.Events...)
	prev.Empty = prev.Empty || next.Empty
	prev.Error = prev.Error || next.Error
	return prev
}

func malformed(message string, err error) error {
	return services.Wrap(services.ErrMalformedInput, "validation", "parse", message, err)
}

func (e *Environment) trim() {
	for _, field := range []*string{&e.VerbFile, &e.ActorFile, &e.AgentFile, &e.DiscardFile, &e.IssueFile, &e.Pause} {
		*field = strings.TrimSpace(*field)
	}
}

// directiveSet keeps the latest value per option in first-seen order.
type directiveSet struct {
	order  []string
	values map[string]string
}

func (s *directiveSet) set(d config.Directive) {
	if s.values == nil {
		s.values = map[string]string{}
	}
	if _, ok := s.values[d.Option]; !ok {
		s.order = append(s.order, d.Option)
	}
	s.values[d.Option] = d.Value
}

func (s *directiveSet) snapshot() []config.Directive {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]config.Directive, 0, len(s.order))
	for _, option := range s.order {
		out = append(out, config.Directive{Option: option, Value: s.values[option]})
	}
	return out
}
