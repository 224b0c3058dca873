package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"petrarch/internal/config"
	"petrarch/internal/corpus"
	"petrarch/internal/logging"
	"petrarch/internal/services"
	"petrarch/internal/validation"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var goldPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Score the coder against a gold validation file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := strings.TrimSpace(goldPath)
			if path == "" {
				path = cfg.Paths.ValidationFile
			}
			if path == "" {
				return services.Wrap(services.ErrConfiguration, "cli", "validate", "--input or paths.validation_file is required", nil)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			gold, err := validation.Load(path)
			if err != nil {
				return err
			}
			logger.Info("validation file loaded",
				logging.String("path", path),
				logging.Int("records", len(gold.Records)),
				logging.Int("annotated", len(gold.Expected)),
			)

			runCfg := withEnvironment(cfg, gold.Environment)
			orch, err := buildOrchestrator(runCfg, pipelineOptions{in: cmd.InOrStdin(), out: cmd.ErrOrStderr(), logger: logger})
			if err != nil {
				return err
			}
			engine, err := validation.NewEngine(orch, logger)
			if err != nil {
				return err
			}

			report, err := engine.Validate(commandCtx(cmd), gold)
			stopped := services.IsCancelled(err)
			if err != nil && !stopped {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), validationSummary{Path: path, Stopped: stopped, Report: report})
			}
			out := cmd.OutOrStdout()
			if stopped {
				fmt.Fprintln(out, "Validation stopped by operator; nothing scored")
				return nil
			}
			renderReport(out, report, shouldColorize(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&goldPath, "input", "i", "", "Gold validation file (default paths.validation_file)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

// withEnvironment returns a copy of cfg with the dictionary and pause
// settings of a gold file applied.
func withEnvironment(cfg *config.Config, env validation.Environment) *config.Config {
	out := *cfg
	out.Dictionaries.ActorFiles = append([]string(nil), cfg.Dictionaries.ActorFiles...)
	if env.VerbFile != "" {
		out.Dictionaries.VerbFile = env.VerbFile
	}
	if env.ActorFile != "" {
		out.Dictionaries.ActorFiles = []string{env.ActorFile}
	}
	if env.AgentFile != "" {
		out.Dictionaries.AgentFile = env.AgentFile
	}
	if env.DiscardFile != "" {
		out.Dictionaries.DiscardFile = env.DiscardFile
	}
	if env.IssueFile != "" {
		out.Dictionaries.IssueFile = env.IssueFile
	}
	switch strings.ToLower(env.Pause) {
	case "true", "sentence":
		out.Run.PauseBySentence = true
	case "story":
		out.Run.PauseByStory = true
	case "false", "none":
		out.Run.PauseBySentence, out.Run.PauseByStory = false, false
	}
	return &out
}

func renderReport(out io.Writer, report validation.Report, colorize bool) {
	summary := [][]string{
		{"Correct", strconv.Itoa(report.Correct)},
		{"Scored", strconv.Itoa(report.Scored)},
		{"Unannotated", strconv.Itoa(report.Unannotated)},
		{"Discarded records", strconv.Itoa(report.Discarded)},
		{"Mismatches", strconv.Itoa(len(report.Mismatches))},
		{"Accuracy", fmt.Sprintf("%.1f%%", report.Accuracy()*100)},
	}
	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, summary, []columnAlignment{alignLeft, alignRight}, colorize))

	if len(report.Mismatches) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Story", "Sentence", "Expected", "Actual"}, mismatchRows(report.Mismatches), nil, colorize))
	}
	fmt.Fprintf(out, "Correctly identified %d out of %d\n", report.Correct, report.Scored)
}

func mismatchRows(mismatches []validation.Mismatch) [][]string {
	rows := make([][]string, 0, len(mismatches))
	for _, m := range mismatches {
		actual := formatEvents(m.Actual)
		if m.Discarded {
			actual = "discarded"
		}
		rows = append(rows, []string{m.StoryID, m.SentenceID, formatEvents(m.Expected), actual})
	}
	return rows
}

func formatEvents(events []corpus.Event) string {
	if len(events) == 0 {
		return "empty"
	}
	parts := make([]string, 0, len(events))
	for _, ev := range events {
		parts = append(parts, fmt.Sprintf("(%s, %s, %s)", ev.Source, ev.Target, ev.Code))
	}
	return strings.Join(parts, " ")
}
