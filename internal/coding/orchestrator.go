package coding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"petrarch/internal/config"
	"petrarch/internal/corpus"
	"petrarch/internal/discard"
	"petrarch/internal/issues"
	"petrarch/internal/logging"
	"petrarch/internal/services"
)

// Options configures an Orchestrator. RunConfig and Coder are required.
type Options struct {
	RunConfig       *config.RunConfig
	Coder           services.SentenceCoder
	Discards        *discard.Trie
	Issues          *issues.Table
	Pauser          Pauser
	PauseBySentence bool
	PauseByStory    bool
	Logger          *slog.Logger
	// Now is the clock used to time coder calls. Defaults to time.Now.
	Now func() time.Time
}

// Orchestrator codes corpora sentence by sentence.
type Orchestrator struct {
	run             *config.RunConfig
	coder           services.SentenceCoder
	discards        *discard.Trie
	issues          *issues.Table
	pauser          Pauser
	pauseBySentence bool
	pauseByStory    bool
	logger          *slog.Logger
	now             func() time.Time
}

// New validates opts and builds an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.RunConfig == nil {
		return nil, services.Wrap(services.ErrConfiguration, "coding", "init", "run config required", nil)
	}
	if opts.Coder == nil {
		return nil, services.Wrap(services.ErrConfiguration, "coding", "init", "sentence coder required", nil)
	}
	if (opts.PauseBySentence || opts.PauseByStory) && opts.Pauser == nil {
		return nil, services.Wrap(services.ErrConfiguration, "coding", "init", "pausing requires a pauser", nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		run:             opts.RunConfig,
		coder:           opts.Coder,
		discards:        opts.Discards,
		issues:          opts.Issues,
		pauser:          opts.Pauser,
		pauseBySentence: opts.PauseBySentence,
		pauseByStory:    opts.PauseByStory,
		logger:          logging.NewComponentLogger(opts.Logger, "coding"),
		now:             now,
	}, nil
}

// RunConfig returns the shared configuration the orchestrator mutates.
func (o *Orchestrator) RunConfig() *config.RunConfig {
	return o.run
}

// Code codes every sentence of c in place and returns run statistics. On
// cancellation the statistics gathered so far are returned with an error
// wrapping services.ErrCancelled.
func (o *Orchestrator) Code(ctx context.Context, c corpus.Corpus) (Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := services.RunIDFromContext(ctx); !ok {
		ctx = services.WithRunID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("coding started",
		logging.Int("stories", len(c)),
		logging.Int("discard_phrases", o.discards.Len()),
		logging.Int("issue_phrases", o.issues.Len()),
	)

	var stats Stats
	for _, storyID := range c.StoryIDs() {
		stats.Stories++
		if err := o.codeStory(services.WithStoryID(ctx, storyID), c[storyID], &stats); err != nil {
			logger.Info("coding stopped", logging.Error(err))
			return stats, err
		}
	}

	logger.Info("coding finished",
		logging.Int("stories", stats.Stories),
		logging.Int("sentences", stats.Sentences),
		logging.Int("events", stats.Events),
		logging.Int("empty", stats.Empty),
		logging.Int("discard_sentences", stats.DiscardSentences),
		logging.Int("discard_stories", stats.DiscardStories),
		logging.Duration("average_latency", stats.AverageLatency()),
	)
	return stats, nil
}

func (o *Orchestrator) codeStory(ctx context.Context, story *corpus.Story, stats *Stats) error {
	if story == nil || story.Discarded {
		return nil
	}
	storyID, _ := services.StoryIDFromContext(ctx)
	skipStory := false

	for _, sentenceID := range story.SentenceIDs() {
		if err := ctx.Err(); err != nil {
			return services.Wrap(services.ErrCancelled, "coding", "run", "context done", err)
		}
		sctx := services.WithSentenceID(ctx, sentenceID)
		logger := logging.WithContext(sctx, o.logger)
		sent := story.Sentences[sentenceID]

		if sent == nil || strings.TrimSpace(sent.Parsed) == "" {
			logger.Info("sentence has no parse information; skipping")
			stats.NoParse++
			continue
		}

		// Directives mutate the shared RunConfig before this sentence is
		// coded and stay in force for every later sentence.
		o.applyDirectives(logger, sent.Config)

		if res := o.discards.Match(sent.Text); res.Kind != discard.NoMatch {
			logger.Info(res.Kind.String()+" discard",
				logging.Args(logging.DecisionAttrs("discard", res.Kind.String(), res.Kind.Marker()+" "+res.Phrase)...)...)
			if res.Kind == discard.StoryDiscard {
				stats.DiscardStories++
				skipStory = true
				break
			}
			stats.DiscardSentences++
			continue
		}

		events, err := o.codeSentence(sctx, logger, story, storyID, sentenceID, sent, stats)
		if err != nil {
			return err
		}

		sent.Events = nil
		sent.Issues = nil
		if len(events) > 0 {
			sent.Events = events
			if o.issues.Len() > 0 {
				if found := o.issues.Classify(sent.Text); len(found) > 0 {
					sent.Issues = found
				}
			}
		}

		stats.Sentences++
		stats.Events += len(events)
		if len(events) == 0 {
			stats.Empty++
		}
		logger.Debug("sentence coded", logging.Int("events", len(events)), logging.Int("issues", len(sent.Issues)))

		if o.pauseBySentence {
			if err := o.pauser.Pause(sctx, storyID+"-"+sentenceID); err != nil {
				return err
			}
		}
	}

	if skipStory {
		story.Discard()
	}
	if o.pauseByStory {
		if err := o.pauser.Pause(ctx, storyID); err != nil {
			return err
		}
	}
	return nil
}

// codeSentence calls the coder and absorbs its failures: a failed or
// panicking call becomes an empty result. Only cancellation is returned.
func (o *Orchestrator) codeSentence(ctx context.Context, logger *slog.Logger, story *corpus.Story, storyID, sentenceID string, sent *corpus.Sentence, stats *Stats) ([]corpus.Event, error) {
	dateValue := sent.Date
	if dateValue == "" {
		dateValue = story.Meta.Date
	}
	date, err := corpus.DateOrdinal(dateValue)
	if err != nil {
		logging.WarnWithContext(logger, "sentence date unreadable; coding without date", "bad_date", logging.Error(err))
	}

	req := services.CodeRequest{
		StoryID:    storyID,
		SentenceID: sentenceID,
		Parsed:     sent.Parsed,
		Text:       sent.Text,
		Date:       date,
		Config:     *o.run,
	}

	start := o.now()
	events, err := o.callCoder(ctx, req)
	stats.CodingTime += o.now().Sub(start)

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, services.Wrap(services.ErrCancelled, "coding", "code", "context done", ctxErr)
		}
		stats.CoderFailures++
		logging.WarnWithContext(logger, "sentence coder failed; recording empty result", "coder_failure", logging.Error(err))
		return nil, nil
	}

	complete := events[:0:0]
	for _, ev := range events {
		if !ev.Complete() {
			logging.WarnWithContext(logger, "dropping incomplete event", "incomplete_event",
				logging.String("source", ev.Source), logging.String("target", ev.Target), logging.String("code", ev.Code))
			continue
		}
		complete = append(complete, ev)
	}
	return complete, nil
}

func (o *Orchestrator) callCoder(ctx context.Context, req services.CodeRequest) (events []corpus.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			events = nil
			err = services.Wrap(services.ErrCoder, "coding", "code", fmt.Sprintf("coder panic: %v", r), nil)
		}
	}()
	return o.coder.Code(ctx, req)
}

func (o *Orchestrator) applyDirectives(logger *slog.Logger, directives []config.Directive) {
	for _, d := range directives {
		if err := o.run.ApplyDirective(d); err != nil {
			logging.WarnWithContext(logger, "config directive ignored", "config_directive",
				logging.String("option", d.Option), logging.String("value", d.Value), logging.Error(err))
			continue
		}
		logger.Debug("config directive applied", logging.String("option", d.Option), logging.String("value", d.Value))
	}
}
