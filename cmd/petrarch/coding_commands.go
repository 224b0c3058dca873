package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"petrarch/internal/coding"
	"petrarch/internal/corpus"
	"petrarch/internal/services"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Code a corpus file or a directory of corpus files",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.TrimSpace(inputPath)
			if input == "" {
				return services.Wrap(services.ErrConfiguration, "cli", "parse", "--input is required", nil)
			}
			inputs, err := corpus.ExpandInputs(input)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "cli", "parse", "", err)
			}
			return runCoding(cmd, ctx, inputs, strings.TrimSpace(outputPath), jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Corpus file or directory of .xml files")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Event file to write")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Code the corpus files listed in the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(cfg.Paths.TextFiles) == 0 {
				return services.Wrap(services.ErrConfiguration, "cli", "batch", "paths.text_files is empty", nil)
			}
			var inputs []string
			for _, entry := range cfg.Paths.TextFiles {
				expanded, err := corpus.ExpandInputs(entry)
				if err != nil {
					return services.Wrap(services.ErrConfiguration, "cli", "batch", "", err)
				}
				inputs = append(inputs, expanded...)
			}
			return runCoding(cmd, ctx, inputs, cfg.Paths.EventFile, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

// runCoding codes inputs and writes the events to output. A run stopped by
// the operator prints its partial statistics, skips the event file and
// succeeds.
func runCoding(cmd *cobra.Command, ctx *commandContext, inputs []string, output string, jsonOutput bool) error {
	if output == "" {
		return services.Wrap(services.ErrConfiguration, "cli", "code", "an output event file is required", nil)
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg, pipelineOptions{in: cmd.InOrStdin(), out: cmd.ErrOrStderr(), logger: logger})
	if err != nil {
		return err
	}

	c, err := corpus.LoadXML(inputs)
	if err != nil {
		return services.Wrap(services.ErrMalformedInput, "cli", "read corpus", "", err)
	}

	summary := codingSummary{Inputs: inputs, Output: output}
	summary.Stats, err = orch.Code(commandCtx(cmd), c)
	switch {
	case services.IsCancelled(err):
		summary.Stopped = true
		summary.Output = ""
	case err != nil:
		return err
	default:
		summary.Written, err = corpus.WriteEventsFile(output, c)
		if err != nil {
			return fmt.Errorf("write events: %w", err)
		}
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), summary)
	}
	out := cmd.OutOrStdout()
	if summary.Stopped {
		fmt.Fprintln(out, "Coding stopped by operator; event file not written")
	}
	fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, statsRows(summary.Stats, summary.Written), []columnAlignment{alignLeft, alignRight}, shouldColorize(out)))
	if !summary.Stopped {
		fmt.Fprintf(out, "Wrote %d events to %s\n", summary.Written, output)
	}
	return nil
}

func statsRows(stats coding.Stats, written int) [][]string {
	return [][]string{
		{"Stories", strconv.Itoa(stats.Stories)},
		{"Sentences coded", strconv.Itoa(stats.Sentences)},
		{"Events", strconv.Itoa(stats.Events)},
		{"Empty sentences", strconv.Itoa(stats.Empty)},
		{"Discarded sentences", strconv.Itoa(stats.DiscardSentences)},
		{"Discarded stories", strconv.Itoa(stats.DiscardStories)},
		{"Without parse", strconv.Itoa(stats.NoParse)},
		{"Coder failures", strconv.Itoa(stats.CoderFailures)},
		{"Events written", strconv.Itoa(written)},
		{"Average latency", stats.AverageLatency().String()},
	}
}

func commandCtx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
