// Package services defines the contracts petrarch consumes from external
// collaborators and the shared utilities used when calling them.
//
// Key responsibilities:
//   - The SentenceCoder contract implemented by the external syntactic pattern
//     matcher (see the treecoder subpackage for the process adapter).
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures with errors.Is.
//   - Context helpers that stamp run, story, and sentence identifiers for
//     logging.
package services
