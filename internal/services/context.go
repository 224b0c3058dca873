package services

import "context"

type contextKey string

const (
	runIDKey      contextKey = "run_id"
	storyIDKey    contextKey = "story_id"
	sentenceIDKey contextKey = "sentence_id"
)

// WithRunID annotates context with the run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, runIDKey)
}

// WithStoryID annotates context with the story being coded.
func WithStoryID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, storyIDKey, id)
}

// StoryIDFromContext returns the story identifier if present.
func StoryIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, storyIDKey)
}

// WithSentenceID annotates context with the sentence being coded.
func WithSentenceID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sentenceIDKey, id)
}

// SentenceIDFromContext returns the sentence identifier if present.
func SentenceIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, sentenceIDKey)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
