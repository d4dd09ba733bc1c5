package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ClassifierService is the boundary around the scoring engine. It consults
// the verdict cache, invokes the engine, and emits one structured event per
// classification. The engine itself stays free of I/O and logging.
type ClassifierService struct {
	engine       Engine
	cache        ResultCache
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
}

// NewClassifierService creates a new classifier service
func NewClassifierService(
	engine Engine,
	cache ResultCache,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
) *ClassifierService {
	return &ClassifierService{
		engine:       engine,
		cache:        cache,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
	}
}

// InputDigest derives the cache key for an input. The digest covers the text,
// all channel flags, and every call metadata field, so two inputs collide only
// when the engine would score them identically.
func InputDigest(input *ClassificationInput) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%t\x00%t\x00%t", input.Text, input.IsEmail, input.IsCall, input.IsAcademic)
	if md := input.CallMetadata; md != nil {
		if md.CallerID != nil {
			fmt.Fprintf(h, "\x00cid=%s", *md.CallerID)
		}
		if md.Duration != nil {
			fmt.Fprintf(h, "\x00dur=%d", *md.Duration)
		}
		if md.Frequency != nil {
			fmt.Fprintf(h, "\x00freq=%d", *md.Frequency)
		}
		if md.CallTime != nil {
			fmt.Fprintf(h, "\x00time=%s", *md.CallTime)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Classify runs the full pipeline for one input. The engine is deterministic,
// so a cache hit returns the stored verdict without rescoring; the detailed
// component breakdown is only available on a fresh classification.
func (s *ClassifierService) Classify(ctx context.Context, input *ClassificationInput) (*ClassificationResult, error) {
	digest := InputDigest(input)

	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, digest); err == nil {
			s.logger.Debug("Cache hit for input", zap.String("digest", digest))
			return &ClassificationResult{
				Classification: entry.Classification,
				Score:          float64(entry.Score),
				IsHighRisk:     entry.IsHighRisk,
				AnalyzedAt:     time.Now(),
				Cached:         true,
			}, nil
		}
	}

	result := s.engine.Classify(input)

	s.logger.Info("Classified input",
		zap.String("classification", string(result.Classification)),
		zap.Float64("score", result.Score),
		zap.Float64("keyword_score", result.Scores.KeywordScore),
		zap.Float64("pattern_score", result.Scores.PatternScore),
		zap.Float64("word_score", result.Scores.WordScore),
		zap.Float64("url_score", result.Scores.URLScore),
		zap.Float64("format_score", result.Scores.FormatScore),
		zap.Bool("is_email", input.IsEmail),
		zap.Bool("is_call", input.IsCall),
		zap.Bool("is_high_risk", result.IsHighRisk))

	if s.cacheEnabled {
		entry := &CacheEntry{
			Digest:         digest,
			Classification: result.Classification,
			Score:          float32(result.Score),
			IsHighRisk:     result.IsHighRisk,
			LastSeen:       time.Now(),
			ExpiresAt:      time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	return result, nil
}

// DetectHighRisk exposes the overlay directly for callers that only need the
// high-risk flag and reasons for a piece of text.
func (s *ClassifierService) DetectHighRisk(text string) (bool, []string) {
	return s.engine.DetectHighRisk(text)
}
