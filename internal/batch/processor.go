// Package batch classifies newline-delimited message files with a worker pool.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/mikey/comm-classifier/internal/core"
	"go.uber.org/zap"
)

// Result is the per-line outcome of a batch run. The preview is truncated to
// keep summaries readable; the score is a percentage rounded to one decimal.
type Result struct {
	Text           string   `json:"message"`
	Classification string   `json:"prediction"`
	Score          float64  `json:"confidence"`
	IsHighRisk     bool     `json:"is_high_risk"`
	RiskReasons    []string `json:"risk_reasons,omitempty"`
}

// Processor runs a file of messages through the classifier concurrently.
type Processor struct {
	service *core.ClassifierService
	logger  *zap.Logger
	workers int
}

// NewProcessor creates a batch processor. A worker count of zero or less
// defaults to one worker per CPU.
func NewProcessor(service *core.ClassifierService, logger *zap.Logger, workers int) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{
		service: service,
		logger:  logger,
		workers: workers,
	}
}

// ProcessFile classifies every non-blank line of the file as a plain text
// message. Results come back in input order regardless of worker scheduling.
func (p *Processor) ProcessFile(ctx context.Context, path string, academic bool) ([]Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	p.logger.Info("Processing batch file",
		zap.String("file", path),
		zap.Int("messages", len(lines)),
		zap.Int("workers", p.workers))

	results := make([]Result, len(lines))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.classifyLine(ctx, lines[i], academic)
			}
		}()
	}

	for i := range lines {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results, nil
}

func (p *Processor) classifyLine(ctx context.Context, text string, academic bool) Result {
	input := &core.ClassificationInput{
		Text:       text,
		IsAcademic: academic,
	}

	result, err := p.service.Classify(ctx, input)
	if err != nil {
		p.logger.Error("Failed to classify batch line", zap.Error(err))
		return Result{
			Text:           preview(text),
			Classification: "error",
		}
	}

	out := Result{
		Text:           preview(text),
		Classification: string(result.Classification),
		Score:          math.Round(result.Score*1000) / 10,
		IsHighRisk:     result.IsHighRisk,
	}
	if result.IsHighRisk {
		out.RiskReasons = result.RiskReasons
	}
	return out
}

func preview(text string) string {
	if len(text) > 100 {
		return text[:100] + "..."
	}
	return text
}
