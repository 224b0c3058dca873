// Package coding walks a corpus and codes every sentence.
//
// The Orchestrator visits stories in ascending id order and the sentences of
// each story in ascending id order. For every sentence it applies the
// sentence's configuration directives to the shared RunConfig, checks the
// discard trie, delegates to the external SentenceCoder, and classifies
// issues for sentences that produced events.
//
// Directive mutations are visible to every sentence processed after the one
// that carried them, including sentences of later stories. Changing the
// traversal order therefore changes the output; keep it sorted.
//
// A story-level discard stops processing of the story and replaces its
// sentence map with the discard marker once the story is left. The optional
// pause after each sentence (or story) is the only suspension point: any
// non-empty operator input cancels the whole run, and Code returns the
// statistics gathered so far together with services.ErrCancelled.
package coding
