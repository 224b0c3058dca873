package validation

import (
	"context"
	"log/slog"
	"slices"

	"petrarch/internal/coding"
	"petrarch/internal/corpus"
	"petrarch/internal/logging"
	"petrarch/internal/services"
)

// Mismatch reports a gold record whose coded events differ from the gold
// answer. Discarded marks a record whose story was discarded.
type Mismatch struct {
	StoryID    string         `json:"story_id"`
	SentenceID string         `json:"sentence_id,omitempty"`
	Expected   []corpus.Event `json:"expected"`
	Actual     []corpus.Event `json:"actual"`
	Discarded  bool           `json:"discarded,omitempty"`
}

// Report is the outcome of a validation run.
type Report struct {
	Correct     int          `json:"correct"`
	Scored      int          `json:"scored"`
	Unannotated int          `json:"unannotated"`
	Discarded   int          `json:"discarded_records"`
	Mismatches  []Mismatch   `json:"mismatches,omitempty"`
	Stats       coding.Stats `json:"stats"`
}

// Accuracy is Correct / Scored, or 0 when nothing was scored.
func (r Report) Accuracy() float64 {
	if r.Scored == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Scored)
}

// Engine runs gold corpora through an orchestrator and scores the result.
type Engine struct {
	orchestrator *coding.Orchestrator
	logger       *slog.Logger
}

// NewEngine builds an Engine around orch.
func NewEngine(orch *coding.Orchestrator, logger *slog.Logger) (*Engine, error) {
	if orch == nil {
		return nil, services.Wrap(services.ErrConfiguration, "validation", "init", "orchestrator required", nil)
	}
	return &Engine{orchestrator: orch, logger: logging.NewComponentLogger(logger, "validation")}, nil
}

// Validate codes the gold corpus and scores it. On cancellation nothing is
// scored and the report only carries the partial statistics.
func (e *Engine) Validate(ctx context.Context, gold *Gold) (Report, error) {
	if gold == nil {
		return Report{}, services.Wrap(services.ErrMalformedInput, "validation", "validate", "gold corpus required", nil)
	}
	// Directives that preceded the first record are in force before coding
	// starts; later ones ride along on the sentences they precede.
	if len(gold.Records) > 0 {
		for _, d := range gold.Records[0].Directives {
			if err := e.orchestrator.RunConfig().ApplyDirective(d); err != nil {
				logging.WarnWithContext(e.logger, "gold config directive ignored", "config_directive",
					logging.String("option", d.Option), logging.String("value", d.Value), logging.Error(err))
			}
		}
	}

	coded := gold.Corpus()
	stats, err := e.orchestrator.Code(ctx, coded)
	if err != nil {
		return Report{Stats: stats}, err
	}

	report := Score(gold, coded)
	report.Stats = stats
	for _, m := range report.Mismatches {
		e.logger.Info("validation mismatch",
			logging.String(logging.FieldStoryID, m.StoryID),
			logging.String(logging.FieldSentenceID, m.SentenceID),
			logging.Any("expected", m.Expected),
			logging.Any("actual", m.Actual),
		)
	}
	e.logger.Info("validation finished",
		logging.Int("correct", report.Correct),
		logging.Int("scored", report.Scored),
		logging.Int("unannotated", report.Unannotated),
		logging.Int("mismatches", len(report.Mismatches)),
	)
	return report, nil
}

// Score compares a coded corpus against the gold expectations. Each gold
// record is coded as its own story. A discarded record is correct only when
// it expects no events. Every other record scores by event-set equality;
// records without annotations count as correct.
func Score(gold *Gold, coded corpus.Corpus) Report {
	keys := make(map[string]Key, len(gold.Records))
	for _, rec := range gold.Records {
		keys[rec.Key.String()] = rec.Key
	}

	var report Report
	for _, recordID := range coded.StoryIDs() {
		key, ok := keys[recordID]
		if !ok {
			continue
		}
		story := coded[recordID]
		report.Scored++
		exp, annotated := gold.Expected[key]
		if story.Discarded {
			report.Discarded++
			if len(exp.Events) == 0 {
				report.Correct++
				continue
			}
			report.Mismatches = append(report.Mismatches, Mismatch{
				StoryID:    key.StoryID,
				SentenceID: key.SentenceID,
				Expected:   corpus.EventSet(exp.Events),
				Discarded:  true,
			})
			continue
		}
		if !annotated {
			report.Unannotated++
			report.Correct++
			continue
		}
		var got []corpus.Event
		if sent := story.Sentences[key.SentenceID]; sent != nil {
			got = sent.Events
		}
		want := corpus.EventSet(exp.Events)
		got = corpus.EventSet(got)
		if slices.Equal(want, got) {
			report.Correct++
			continue
		}
		report.Mismatches = append(report.Mismatches, Mismatch{
			StoryID:    key.StoryID,
			SentenceID: key.SentenceID,
			Expected:   want,
			Actual:     got,
		})
	}
	return report
}
