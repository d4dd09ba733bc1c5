package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mikey/comm-classifier/internal/classifier"
	"github.com/mikey/comm-classifier/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *core.ClassifierService {
	t.Helper()
	return core.NewClassifierService(classifier.New(), nil, zap.NewNop(), false, time.Hour)
}

func writeBatchFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0644))
	return path
}

func TestProcessFile(t *testing.T) {
	service := newTestService(t)
	processor := NewProcessor(service, zap.NewNop(), 2)

	spamLine := "URGENT!!! Congratulations! You have WON a FREE cash prize! " +
		"Click here now and claim your prize immediately! Limited time offer! Act now! " +
		"Don't miss this once in a lifetime opportunity! 100% FREE! Call now: 555-123-4567! " +
		"http://bit.ly/free-cash $1000 gift card guaranteed winner!"

	path := writeBatchFile(t, strings.Join([]string{
		"Hey, are we still meeting for lunch tomorrow?",
		"",
		"   ",
		spamLine,
	}, "\n"))

	results, err := processor.ProcessFile(context.Background(), path, false)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Input order survives concurrent workers
	assert.Equal(t, "Hey, are we still meeting for lunch tomorrow?", results[0].Text)
	assert.Equal(t, string(core.Legitimate), results[0].Classification)

	assert.True(t, strings.HasPrefix(results[1].Text, "URGENT!"))
	assert.NotEqual(t, string(core.Legitimate), results[1].Classification)
	assert.Greater(t, results[1].Score, results[0].Score)
}

func TestProcessFile_PreviewTruncation(t *testing.T) {
	service := newTestService(t)
	processor := NewProcessor(service, zap.NewNop(), 1)

	long := strings.Repeat("a", 150)
	path := writeBatchFile(t, long+"\n")

	results, err := processor.ProcessFile(context.Background(), path, false)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Len(t, results[0].Text, 103)
	assert.True(t, strings.HasSuffix(results[0].Text, "..."))
}

func TestProcessFile_MissingFile(t *testing.T) {
	service := newTestService(t)
	processor := NewProcessor(service, zap.NewNop(), 1)

	_, err := processor.ProcessFile(context.Background(), "/does/not/exist.txt", false)
	assert.Error(t, err)
}

func TestProcessFile_ScorePercentage(t *testing.T) {
	service := newTestService(t)
	processor := NewProcessor(service, zap.NewNop(), 1)

	path := writeBatchFile(t, "completely ordinary sentence\n")
	results, err := processor.ProcessFile(context.Background(), path, false)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.GreaterOrEqual(t, results[0].Score, 0.0)
	assert.LessOrEqual(t, results[0].Score, 100.0)
}

func TestNewProcessor_DefaultsWorkers(t *testing.T) {
	processor := NewProcessor(newTestService(t), zap.NewNop(), 0)
	assert.Greater(t, processor.workers, 0)
}
