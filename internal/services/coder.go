package services

import (
	"context"

	"petrarch/internal/config"
	"petrarch/internal/corpus"
)

// CodeRequest carries everything the external coder needs for one sentence.
type CodeRequest struct {
	StoryID    string           `json:"story_id"`
	SentenceID string           `json:"sentence_id"`
	Parsed     string           `json:"parsed"`
	Text       string           `json:"text"`
	Date       int              `json:"date"`
	Config     config.RunConfig `json:"config"`
}

// SentenceCoder turns a parsed sentence into event triples. Implementations
// return an empty slice rather than an error for malformed trees; an error
// means the invocation itself failed.
type SentenceCoder interface {
	Code(ctx context.Context, req CodeRequest) ([]corpus.Event, error)
}

// CoderFunc adapts a function to the SentenceCoder interface.
type CoderFunc func(ctx context.Context, req CodeRequest) ([]corpus.Event, error)

// Code implements SentenceCoder.
func (f CoderFunc) Code(ctx context.Context, req CodeRequest) ([]corpus.Event, error) {
	return f(ctx, req)
}
