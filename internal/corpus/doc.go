// Package corpus holds the in-memory story/sentence model that the coding
// orchestrator walks, together with the boundary readers and writers around
// it.
//
// A Corpus maps story identifiers to stories and a story maps sentence
// identifiers to sentences. Traversal order is always ascending by story id
// and then sentence id; StoryIDs and SentenceIDs are the only sanctioned way
// to iterate, because that order decides which embedded configuration
// directives are visible to which sentences.
//
// A story discarded at story level has Discarded set and its sentence map
// removed. An empty sentence map is not a discard.
package corpus
