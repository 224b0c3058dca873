package preflight

import (
	"petrarch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

type dictionaryCheck struct {
	name     string
	file     string
	optional bool
}

// RunAll executes the checks that apply to cfg.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	results = append(results, CheckCommand("Sentence coder", cfg.Coder.Command))

	dict := cfg.Dictionaries
	checks := []dictionaryCheck{{name: "Verb dictionary", file: dict.VerbFile}}
	for _, actor := range dict.ActorFiles {
		checks = append(checks, dictionaryCheck{name: "Actor dictionary", file: actor})
	}
	checks = append(checks,
		dictionaryCheck{name: "Agent dictionary", file: dict.AgentFile},
		dictionaryCheck{name: "Discard dictionary", file: dict.DiscardFile, optional: true},
		dictionaryCheck{name: "Issue dictionary", file: dict.IssueFile, optional: true},
	)
	for _, check := range checks {
		switch {
		case check.file == "" && check.optional:
			continue
		case check.file == "":
			results = append(results, Result{Name: check.name, Detail: "not configured"})
		default:
			result := CheckFileAccess(check.name, cfg.DictionaryPath(check.file))
			result.Optional = check.optional
			results = append(results, result)
		}
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
