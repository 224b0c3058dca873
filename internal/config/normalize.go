package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDictionaries()
	c.normalizeCoder()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DictionaryDir) == "" {
		c.Paths.DictionaryDir = defaultDictionaryDir
	}
	if c.Paths.DictionaryDir, err = expandPath(c.Paths.DictionaryDir); err != nil {
		return fmt.Errorf("paths.dictionary_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	files := make([]string, 0, len(c.Paths.TextFiles))
	for _, file := range c.Paths.TextFiles {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("paths.text_files: %w", err)
		}
		files = append(files, expanded)
	}
	c.Paths.TextFiles = files
	if c.Paths.EventFile, err = expandPath(strings.TrimSpace(c.Paths.EventFile)); err != nil {
		return fmt.Errorf("paths.event_file: %w", err)
	}
	if c.Paths.ValidationFile, err = expandPath(strings.TrimSpace(c.Paths.ValidationFile)); err != nil {
		return fmt.Errorf("paths.validation_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeDictionaries() {
	c.Dictionaries.VerbFile = strings.TrimSpace(c.Dictionaries.VerbFile)
	c.Dictionaries.AgentFile = strings.TrimSpace(c.Dictionaries.AgentFile)
	c.Dictionaries.DiscardFile = strings.TrimSpace(c.Dictionaries.DiscardFile)
	c.Dictionaries.IssueFile = strings.TrimSpace(c.Dictionaries.IssueFile)
	actors := c.Dictionaries.ActorFiles[:0]
	for _, name := range c.Dictionaries.ActorFiles {
		if name = strings.TrimSpace(name); name != "" {
			actors = append(actors, name)
		}
	}
	c.Dictionaries.ActorFiles = actors
}

func (c *Config) normalizeCoder() {
	c.Coder.Command = strings.TrimSpace(c.Coder.Command)
	if c.Coder.Command == "" {
		if value, ok := os.LookupEnv(coderCommandEnv); ok {
			c.Coder.Command = strings.TrimSpace(value)
		}
	}
	if c.Coder.TimeoutSeconds == 0 {
		c.Coder.TimeoutSeconds = defaultCoderTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
