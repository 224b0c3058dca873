package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCoding(); err != nil {
		return err
	}
	if err := c.validateCoder(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCoding() error {
	if c.Coding.NewActorLength < 0 {
		return errors.New("coding.new_actor_length must be zero or positive")
	}
	for _, pair := range []struct {
		name     string
		min, max int
	}{
		{"comma", c.Coding.CommaMin, c.Coding.CommaMax},
		{"comma_b", c.Coding.CommaBMin, c.Coding.CommaBMax},
		{"comma_e", c.Coding.CommaEMin, c.Coding.CommaEMax},
	} {
		if pair.min < 0 || pair.max < 0 {
			return fmt.Errorf("coding.%s thresholds must be zero or positive", pair.name)
		}
	}
	return nil
}

func (c *Config) validateCoder() error {
	if c.Coder.TimeoutSeconds < 0 {
		return errors.New("coder.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
