package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"petrarch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Dictionaries start unset and logging is limited to errors.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DictionaryDir = filepath.Join(base, "dictionaries")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Dictionaries = config.Dictionaries{}
	cfgVal.Coder.Command = "treecoder"
	cfgVal.Logging.Level = "error"
	if err := os.MkdirAll(cfgVal.Paths.DictionaryDir, 0o755); err != nil {
		t.Fatalf("mkdir dictionary dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDiscards writes a discard dictionary and points the config at it.
func WithDiscards(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteFile(b.t, filepath.Join(b.cfg.Paths.DictionaryDir, "discards.txt"), content)
		b.cfg.Dictionaries.DiscardFile = "discards.txt"
	}
}

// WithIssues writes an issue dictionary and points the config at it.
func WithIssues(content string) ConfigOption {
	return func(b *configBuilder) {
		WriteFile(b.t, filepath.Join(b.cfg.Paths.DictionaryDir, "issues.txt"), content)
		b.cfg.Dictionaries.IssueFile = "issues.txt"
	}
}

// WithBatchPaths sets the batch inputs and event file.
func WithBatchPaths(eventFile string, textFiles ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.EventFile = eventFile
		b.cfg.Paths.TextFiles = append([]string(nil), textFiles...)
	}
}

// WithValidationFile sets the default gold file for validation runs.
func WithValidationFile(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.ValidationFile = path
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the coder command is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{b.cfg.Coder.Command}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\necho '{\"events\":[]}'\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DictionaryDir)
}

// WriteConfig encodes cfg as TOML at path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	WriteFile(t, path, string(data))
}
