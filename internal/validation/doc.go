// Package validation scores the coding pipeline against hand-annotated gold
// corpora.
//
// Parse turns a gold XML document into a corpus plus typed expectations,
// rejecting malformed records before anything is coded. Engine.Validate
// codes the corpus with a coding.Orchestrator and compares the coded events
// of every sentence against the expected set.
package validation
