package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file locations used by batch runs.
// ValidationFile is the gold file read by validate when no --input is given.
type Paths struct {
	DictionaryDir  string   `toml:"dictionary_dir"`
	LogDir         string   `toml:"log_dir"`
	TextFiles      []string `toml:"text_files"`
	EventFile      string   `toml:"event_file"`
	ValidationFile string   `toml:"validation_file"`
}

// Dictionaries names the dictionary files. Relative names resolve against
// Paths.DictionaryDir.
type Dictionaries struct {
	VerbFile    string   `toml:"verb_file"`
	ActorFiles  []string `toml:"actor_files"`
	AgentFile   string   `toml:"agent_file"`
	DiscardFile string   `toml:"discard_file"`
	IssueFile   string   `toml:"issue_file"`
}

// Run contains interactive run controls.
type Run struct {
	PauseBySentence bool `toml:"pause_by_sentence"`
	PauseByStory    bool `toml:"pause_by_story"`
}

// Coder configures the external sentence coder process.
type Coder struct {
	Command        string   `toml:"command"`
	Args           []string `toml:"args"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for petrarch.
//
// Configuration sections:
//   - Paths: dictionary directory, log directory, batch inputs and output
//   - Dictionaries: verb/actor/agent/discard/issue dictionary files
//   - Coding: initial RunConfig thresholds and flags
//   - Run: pause-by-sentence and pause-by-story controls
//   - Coder: external sentence coder command
//   - Logging: log format and level
type Config struct {
	Paths        Paths        `toml:"paths"`
	Dictionaries Dictionaries `toml:"dictionaries"`
	Coding       RunConfig    `toml:"coding"`
	Run          Run          `toml:"run"`
	Coder        Coder        `toml:"coder"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("petrarch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// DictionaryPath resolves a dictionary file name against the dictionary
// directory. Absolute names and names starting with ~ are expanded as-is.
// Empty names stay empty.
func (c *Config) DictionaryPath(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "~") {
		expanded, err := expandPath(name)
		if err != nil {
			return name
		}
		return expanded
	}
	return filepath.Join(c.Paths.DictionaryDir, name)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
