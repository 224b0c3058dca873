// Package discard decides whether a sentence, or the whole story it belongs
// to, must be excluded from coding.
//
// Discard phrases are stored in a token trie built once from a dictionary and
// never modified while coding. Matching uses a sliding window: a walk starts
// from the root at every token position, so a phrase is found wherever it
// occurs in the sentence, not only as a prefix. The first phrase found, by
// start position and then by length, wins; at a node that ends both a story
// and a sentence phrase the story discard takes priority.
package discard
