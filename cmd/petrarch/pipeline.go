package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"petrarch/internal/coding"
	"petrarch/internal/config"
	"petrarch/internal/discard"
	"petrarch/internal/issues"
	"petrarch/internal/logging"
	"petrarch/internal/preflight"
	"petrarch/internal/services"
	"petrarch/internal/services/treecoder"
)

// newSentenceCoder builds the external coder. Tests replace it with a stub.
var newSentenceCoder = func(cfg *config.Config) (services.SentenceCoder, error) {
	if cfg.Coder.Command == "" {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "coder",
			"coder.command is empty; set it in the config file or PETRARCH_CODER_COMMAND", nil)
	}
	return treecoder.NewCLI(cfg.Coder.Command,
		treecoder.WithArgs(cfg.Coder.Args...),
		treecoder.WithTimeout(time.Duration(cfg.Coder.TimeoutSeconds)*time.Second),
		treecoder.WithEnv(dictionaryEnv(cfg)...),
	), nil
}

// dictionaryEnv hands the pattern dictionaries to the coder process.
func dictionaryEnv(cfg *config.Config) []string {
	actors := make([]string, 0, len(cfg.Dictionaries.ActorFiles))
	for _, name := range cfg.Dictionaries.ActorFiles {
		actors = append(actors, cfg.DictionaryPath(name))
	}
	return []string{
		"PETRARCH_VERB_FILE=" + cfg.DictionaryPath(cfg.Dictionaries.VerbFile),
		"PETRARCH_ACTOR_FILES=" + strings.Join(actors, ","),
		"PETRARCH_AGENT_FILE=" + cfg.DictionaryPath(cfg.Dictionaries.AgentFile),
	}
}

type pipelineOptions struct {
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

// buildOrchestrator loads the discard and issue dictionaries named by cfg
// and wires them with the coder and the initial run configuration.
func buildOrchestrator(cfg *config.Config, opts pipelineOptions) (*coding.Orchestrator, error) {
	logger := logging.NewComponentLogger(opts.logger, "cli")
	for _, failed := range preflight.Failed(preflight.RunAll(cfg)) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight",
			logging.String("check", failed.Name), logging.String("detail", failed.Detail))
	}

	var trie *discard.Trie
	if path := cfg.DictionaryPath(cfg.Dictionaries.DiscardFile); path != "" {
		loaded, err := discard.Load(path)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "cli", "load discards", "", err)
		}
		trie = loaded
		logger.Info("discard dictionary loaded", logging.String("path", path), logging.Int("phrases", trie.Len()))
	}

	var table *issues.Table
	if path := cfg.DictionaryPath(cfg.Dictionaries.IssueFile); path != "" {
		loaded, err := issues.Load(path)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "cli", "load issues", "", err)
		}
		table = loaded
		logger.Info("issue dictionary loaded", logging.String("path", path), logging.Int("phrases", table.Len()))
	}

	coder, err := newSentenceCoder(cfg)
	if err != nil {
		return nil, err
	}

	pauseBySentence := cfg.Run.PauseBySentence
	pauseByStory := cfg.Run.PauseByStory
	var pauser coding.Pauser
	if pauseBySentence || pauseByStory {
		if isTerminal(opts.in) {
			pauser = coding.NewPromptPauser(opts.in, opts.out)
		} else {
			logging.WarnWithContext(logger, "pausing needs an interactive terminal; running without pauses", "pause_disabled")
			pauseBySentence, pauseByStory = false, false
		}
	}

	runConfig := cfg.Coding
	orch, err := coding.New(coding.Options{
		RunConfig:       &runConfig,
		Coder:           coder,
		Discards:        trie,
		Issues:          table,
		Pauser:          pauser,
		PauseBySentence: pauseBySentence,
		PauseByStory:    pauseByStory,
		Logger:          opts.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build orchestrator: %w", err)
	}
	return orch, nil
}
