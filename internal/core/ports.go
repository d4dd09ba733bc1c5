package core

import (
	"context"
)

// Engine defines the interface for the scoring engine.
type Engine interface {
	// Classify scores and classifies a single input
	Classify(input *ClassificationInput) *ClassificationResult

	// DetectHighRisk runs the high-risk overlay over raw text, independently
	// of the scoring pipeline
	DetectHighRisk(text string) (bool, []string)
}

// MessageFilter defines the interface for message-stream front-ends.
type MessageFilter interface {
	// Start starts the filter service
	Start() error

	// Stop stops the filter service
	Stop() error
}

// ResultCache defines the interface for caching classification verdicts.
type ResultCache interface {
	// Get retrieves a cached entry by input digest
	Get(ctx context.Context, digest string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, digest string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
