package main

import (
	"encoding/json"
	"fmt"
	"io"

	"petrarch/internal/coding"
	"petrarch/internal/validation"
)

// codingSummary is the --json payload of parse and batch.
type codingSummary struct {
	Inputs  []string     `json:"inputs"`
	Output  string       `json:"output,omitempty"`
	Written int          `json:"events_written"`
	Stopped bool         `json:"stopped"`
	Stats   coding.Stats `json:"stats"`
}

// validationSummary is the --json payload of validate.
type validationSummary struct {
	Path    string            `json:"path"`
	Stopped bool              `json:"stopped"`
	Report  validation.Report `json:"report"`
}

// writeJSON encodes v as indented JSON. Sentence text and parse trees are
// written without HTML escaping.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json output: %w", err)
	}
	return nil
}
