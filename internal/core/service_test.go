package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEngine struct {
	calls int
}

func (s *stubEngine) Classify(input *ClassificationInput) *ClassificationResult {
	s.calls++
	return &ClassificationResult{
		Classification: Spam,
		Score:          0.9,
		IsHighRisk:     true,
		RiskReasons:    []string{"Requests for financial information"},
		AnalyzedAt:     time.Now(),
	}
}

func (s *stubEngine) DetectHighRisk(text string) (bool, []string) {
	return false, nil
}

type mapCache struct {
	entries map[string]*CacheEntry
	setErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*CacheEntry)}
}

func (c *mapCache) Get(ctx context.Context, digest string) (*CacheEntry, error) {
	entry, ok := c.entries[digest]
	if !ok {
		return nil, errors.New("not found")
	}
	return entry, nil
}

func (c *mapCache) Set(ctx context.Context, entry *CacheEntry) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[entry.Digest] = entry
	return nil
}

func (c *mapCache) Delete(ctx context.Context, digest string) error {
	delete(c.entries, digest)
	return nil
}

func (c *mapCache) Cleanup(ctx context.Context) error { return nil }

func TestClassifierService_CacheHit(t *testing.T) {
	engine := &stubEngine{}
	service := NewClassifierService(engine, newMapCache(), zap.NewNop(), true, time.Hour)

	input := &ClassificationInput{Text: "win a free prize"}

	first, err := service.Classify(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, engine.calls)

	second, err := service.Classify(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, Spam, second.Classification)
	assert.InDelta(t, first.Score, second.Score, 1e-6)
	assert.True(t, second.IsHighRisk)
}

func TestClassifierService_CacheDisabled(t *testing.T) {
	engine := &stubEngine{}
	service := NewClassifierService(engine, newMapCache(), zap.NewNop(), false, time.Hour)

	input := &ClassificationInput{Text: "win a free prize"}

	_, err := service.Classify(context.Background(), input)
	require.NoError(t, err)
	_, err = service.Classify(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.calls)
}

func TestClassifierService_CacheWriteFailureIsNonFatal(t *testing.T) {
	engine := &stubEngine{}
	cache := newMapCache()
	cache.setErr = errors.New("disk full")
	service := NewClassifierService(engine, cache, zap.NewNop(), true, time.Hour)

	result, err := service.Classify(context.Background(), &ClassificationInput{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, Spam, result.Classification)
}

func TestInputDigest(t *testing.T) {
	callerID := "555"
	base := &ClassificationInput{Text: "hello"}

	assert.Equal(t, InputDigest(base), InputDigest(&ClassificationInput{Text: "hello"}))

	variants := []*ClassificationInput{
		{Text: "hello!"},
		{Text: "hello", IsEmail: true},
		{Text: "hello", IsCall: true},
		{Text: "hello", IsAcademic: true},
		{Text: "hello", CallMetadata: &CallMetadata{CallerID: &callerID}},
	}

	seen := map[string]bool{InputDigest(base): true}
	for _, v := range variants {
		digest := InputDigest(v)
		assert.False(t, seen[digest], "digest collision for %+v", v)
		seen[digest] = true
	}
}

func TestIsSpam(t *testing.T) {
	for _, c := range []Classification{Spam, Phishing, Robocall, Telemarketing} {
		assert.True(t, (&ClassificationResult{Classification: c}).IsSpam())
	}
	for _, c := range []Classification{Legitimate, Suspicious} {
		assert.False(t, (&ClassificationResult{Classification: c}).IsSpam())
	}
}
