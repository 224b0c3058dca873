package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"petrarch/internal/config"
	"petrarch/internal/corpus"
	"petrarch/internal/services"
	"petrarch/internal/testsupport"
)

const testCorpus = `<Sentences>
<Sentence date="20140101" id="AFP01-1" sentence="true" source="AFP">
  <Text>France protested the decision.</Text>
  <Parse>(ROOT (S (NP (NNP France)) (VP (VBD protested))))</Parse>
</Sentence>
<Sentence date="20140102" id="AFP02-1" sentence="true" source="AFP">
  <Text>The world cup final ended.</Text>
  <Parse>(ROOT (S (NP (NN final)) (VP (VBD ended))))</Parse>
</Sentence>
</Sentences>`

type cliTestEnv struct {
	cfg        *config.Config
	baseDir    string
	configPath string
	corpusPath string
	outputPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{
		testsupport.WithDiscards("+world_cup_final\n"),
		testsupport.WithIssues("DECISION [POLICY]\n"),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	env := &cliTestEnv{
		cfg:        cfg,
		baseDir:    base,
		configPath: filepath.Join(base, "petrarch.toml"),
		corpusPath: filepath.Join(base, "corpus.xml"),
		outputPath: filepath.Join(base, "out", "events.txt"),
	}
	testsupport.WriteFile(t, env.corpusPath, testCorpus)
	testsupport.WriteConfig(t, env.configPath, cfg)
	stubSentenceCoder(t)
	return env
}

// stubSentenceCoder codes "France" sentences as FRA -> USA 111 and reverses
// the triple for "Reversed" sentences.
func stubSentenceCoder(t *testing.T) {
	t.Helper()
	original := newSentenceCoder
	newSentenceCoder = func(*config.Config) (services.SentenceCoder, error) {
		return services.CoderFunc(func(_ context.Context, req services.CodeRequest) ([]corpus.Event, error) {
			switch {
			case strings.Contains(req.Text, "Reversed"):
				return []corpus.Event{{Source: "Y", Target: "X", Code: "010"}}, nil
			case strings.Contains(req.Text, "France"):
				return []corpus.Event{{Source: "FRA", Target: "USA", Code: "111"}}, nil
			case strings.Contains(req.Text, "met"):
				return []corpus.Event{{Source: "X", Target: "Y", Code: "010"}}, nil
			}
			return nil, nil
		}), nil
	}
	t.Cleanup(func() {
		newSentenceCoder = original
	})
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
