package corpus

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMalformedRecord marks a sentence record missing required attributes.
var ErrMalformedRecord = errors.New("malformed sentence record")

// SentenceElement is the XML shape shared by corpus and gold files.
type SentenceElement struct {
	Date     string `xml:"date,attr"`
	ID       string `xml:"id,attr"`
	Sentence string `xml:"sentence,attr"`
	Source   string `xml:"source,attr"`
	Text     string `xml:"Text"`
	Parse    *struct {
		Value string `xml:",chardata"`
	} `xml:"Parse"`
	Codings []CodingElement `xml:"EventCoding"`

	present map[string]bool
}

// CodingElement is an expected answer of a gold record: either a coded
// triple or a noevents / error marker.
type CodingElement struct {
	SourceCode string  `xml:"sourcecode,attr"`
	TargetCode string  `xml:"targetcode,attr"`
	EventCode  string  `xml:"eventcode,attr"`
	NoEvents   *string `xml:"noevents,attr"`
	Error      *string `xml:"error,attr"`
}

// Event returns the coded triple with surrounding space removed.
func (c CodingElement) Event() Event {
	return Event{
		Source: strings.TrimSpace(c.SourceCode),
		Target: strings.TrimSpace(c.TargetCode),
		Code:   strings.TrimSpace(c.EventCode),
	}
}

// UnmarshalXML records which attributes were present so missing and empty
// values can be told apart.
func (e *SentenceElement) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	type plain SentenceElement
	var decoded plain
	if err := d.DecodeElement(&decoded, &start); err != nil {
		return err
	}
	*e = SentenceElement(decoded)
	e.present = make(map[string]bool, len(start.Attr))
	for _, attr := range start.Attr {
		e.present[attr.Name.Local] = true
	}
	return nil
}

// Check verifies the required attributes are present.
func (e *SentenceElement) Check() error {
	var missing []string
	for _, name := range []string{"date", "id", "sentence", "source"} {
		if !e.present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: id %q missing attributes %s", ErrMalformedRecord, e.ID, strings.Join(missing, ", "))
	}
	return nil
}

// IsSentence reports whether the record is flagged for coding.
func (e *SentenceElement) IsSentence() bool {
	return strings.EqualFold(strings.TrimSpace(e.Sentence), "true")
}

// HasParse reports whether the record carried a Parse element.
func (e *SentenceElement) HasParse() bool {
	return e.Parse != nil && strings.TrimSpace(e.Parse.Value) != ""
}

// ToSentence builds the corpus sentence for the record.
func (e *SentenceElement) ToSentence() *Sentence {
	sent := &Sentence{
		Text: CleanText(e.Text),
		Date: strings.TrimSpace(e.Date),
	}
	if e.HasParse() {
		sent.Parsed = FormatParsed(e.Parse.Value)
	}
	return sent
}

// EachSentence streams every Sentence element of r to fn in document order.
// Other elements are passed to other when it is non-nil.
func EachSentence(r io.Reader, fn func(*SentenceElement) error, other func(*xml.Decoder, xml.StartElement) error) error {
	decoder := xml.NewDecoder(r)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "Sentence" {
			if other != nil {
				if err := other(decoder, start); err != nil {
					return err
				}
			}
			continue
		}
		var elem SentenceElement
		if err := decoder.DecodeElement(&elem, &start); err != nil {
			return fmt.Errorf("decode sentence: %w", err)
		}
		if err := fn(&elem); err != nil {
			return err
		}
	}
}

// ReadXML reads a corpus document. Records not flagged as sentences are
// skipped; records without a parse are kept with an empty Parsed field.
func ReadXML(r io.Reader) (Corpus, error) {
	c := Corpus{}
	if err := mergeXML(c, r); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadXML reads and merges corpus files in the order given.
func LoadXML(paths []string) (Corpus, error) {
	c := Corpus{}
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open corpus: %w", err)
		}
		err = mergeXML(c, file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return c, nil
}

func mergeXML(c Corpus, r io.Reader) error {
	return EachSentence(r, func(elem *SentenceElement) error {
		if err := elem.Check(); err != nil {
			return err
		}
		if !elem.IsSentence() {
			return nil
		}
		storyID, sentenceID, err := SplitRecordID(elem.ID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedRecord, err)
		}
		meta := Meta{Date: strings.TrimSpace(elem.Date), Source: strings.TrimSpace(elem.Source)}
		c.Add(storyID, sentenceID, meta, elem.ToSentence())
		return nil
	}, nil)
}

// ExpandInputs resolves a file or a directory of *.xml files into a sorted
// list of corpus paths.
func ExpandInputs(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%q could not be located: %w", input, err)
	}
	if !info.IsDir() {
		return []string{input}, nil
	}
	paths, err := filepath.Glob(filepath.Join(input, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("list corpus files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .xml files in %s", input)
	}
	sort.Strings(paths)
	return paths, nil
}
