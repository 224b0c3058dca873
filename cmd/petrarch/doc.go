// Package main hosts the petrarch CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, reads dictionaries and corpus
// files, and hands the corpus to the coding orchestrator. Subcommands stay
// thin: the coding, validation and I/O behavior lives in the internal
// packages and is only wired together here.
package main
