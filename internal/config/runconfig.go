package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOptionIgnored marks a directive that was not applied. The prior value of
// the option is always retained.
var ErrOptionIgnored = errors.New("config option ignored")

// RunConfig holds the coding thresholds and flags shared across a run.
//
// A single RunConfig is passed by pointer to the orchestrator and every
// directive mutates it in place. Reads that happen after a directive is
// applied observe the new value; there is no per-sentence scoping.
type RunConfig struct {
	NewActorLength int  `toml:"new_actor_length" json:"new_actor_length"`
	RequireDyad    bool `toml:"require_dyad" json:"require_dyad"`
	StopOnError    bool `toml:"stop_on_error" json:"stop_on_error"`
	CommaMin       int  `toml:"comma_min" json:"comma_min"`
	CommaMax       int  `toml:"comma_max" json:"comma_max"`
	CommaBMin      int  `toml:"comma_bmin" json:"comma_bmin"`
	CommaBMax      int  `toml:"comma_bmax" json:"comma_bmax"`
	CommaEMin      int  `toml:"comma_emin" json:"comma_emin"`
	CommaEMax      int  `toml:"comma_emax" json:"comma_emax"`
}

// Directive is a single option change embedded in a corpus.
type Directive struct {
	Option string `json:"option"`
	Value  string `json:"value"`
}

// Apply changes one option. A non-nil error wraps ErrOptionIgnored and
// describes why the directive was ignored; callers log it and continue.
func (r *RunConfig) Apply(option, value string) error {
	option = strings.TrimSpace(option)
	switch {
	case option == "new_actor_length":
		n, err := parseInt(value)
		if err != nil {
			return ignored(option, "new_actor_length must be an integer")
		}
		r.NewActorLength = n
	case option == "require_dyad":
		r.RequireDyad = parseFlag(value)
	case option == "stop_on_error":
		r.StopOnError = parseFlag(value)
	case strings.HasPrefix(option, "comma_"):
		return r.applyComma(option, value)
	default:
		return ignored(option, "unrecognized option")
	}
	return nil
}

// ApplyDirective is Apply for a Directive value.
func (r *RunConfig) ApplyDirective(d Directive) error {
	return r.Apply(d.Option, d.Value)
}

func (r *RunConfig) applyComma(option, value string) error {
	n, err := parseInt(value)
	if err != nil {
		return ignored(option, "comma_* value must be an integer")
	}
	var target *int
	switch strings.TrimPrefix(option, "comma_") {
	case "min":
		target = &r.CommaMin
	case "max":
		target = &r.CommaMax
	case "bmin":
		target = &r.CommaBMin
	case "bmax":
		target = &r.CommaBMax
	case "emin":
		target = &r.CommaEMin
	case "emax":
		target = &r.CommaEMax
	default:
		return ignored(option, "unrecognized option beginning with comma_")
	}
	*target = n
	return nil
}

// parseFlag treats every value as true unless it mentions "false".
func parseFlag(value string) bool {
	return !strings.Contains(strings.ToLower(value), "false")
}

func parseInt(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

func ignored(option, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrOptionIgnored, option, reason)
}
