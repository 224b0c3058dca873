// Package config loads, normalizes, and validates petrarch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PETRARCH_CODER_COMMAND. The Config type centralizes every knob the CLI needs:
// dictionary locations, batch input/output paths, the external sentence coder,
// logging, and the initial coding thresholds.
//
// RunConfig is the mutable half of the configuration. It is seeded from the
// [coding] table before any corpus is processed and is then mutated in place
// by directives embedded in the corpus as the orchestrator reaches them. Those
// mutations are not scoped to the sentence that declared them; they remain in
// force for every sentence processed afterwards.
package config
