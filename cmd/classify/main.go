package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mikey/comm-classifier/internal/adapters/cache"
	"github.com/mikey/comm-classifier/internal/adapters/filter"
	"github.com/mikey/comm-classifier/internal/batch"
	"github.com/mikey/comm-classifier/internal/classifier"
	"github.com/mikey/comm-classifier/internal/core"
	"github.com/mikey/comm-classifier/internal/logging"
	"go.uber.org/zap"
)

var (
	// Input flags
	inputFile = flag.String("file", "", "Input message file (use stdin if not specified)")
	batchFile = flag.String("batch", "", "Batch file with one message per line")

	// Channel flags
	isEmail    = flag.Bool("email", false, "Treat input as a raw email message")
	isCall     = flag.Bool("call", false, "Treat input as a call transcript")
	isAcademic = flag.Bool("academic", false, "Apply academic context mitigation")

	// Call metadata flags
	callerID  = flag.String("caller-id", "", "Caller ID for call classification")
	duration  = flag.String("duration", "", "Call duration in seconds")
	frequency = flag.String("frequency", "", "Calls from this number in recent period")
	callTime  = flag.String("call-time", "", "Call timestamp (YYYY-MM-DD HH:MM:SS)")

	// Output flags
	jsonOutput = flag.Bool("json", false, "Output results as JSON")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")

	// Worker flags
	workers = flag.Int("workers", 0, "Batch worker count (0 = one per CPU)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	engine := classifier.New()
	resultCache := cache.NewMemoryCache(logger, time.Hour)
	defer resultCache.Stop()
	service := core.NewClassifierService(engine, resultCache, logger, true, time.Hour)

	ctx := context.Background()

	if *batchFile != "" {
		runBatch(ctx, service, logger)
		return
	}

	runSingle(ctx, service, logger)
}

func runSingle(ctx context.Context, service *core.ClassifierService, logger *zap.Logger) {
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
		logger.Info("Reading message from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	text, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}

	input := &core.ClassificationInput{
		Text:       string(text),
		IsEmail:    *isEmail,
		IsCall:     *isCall,
		IsAcademic: *isAcademic,
	}
	if *isCall {
		input.CallMetadata = callMetadataFromFlags()
	}

	if *jsonOutput {
		result, err := service.Classify(ctx, input)
		if err != nil {
			logger.Fatal("Failed to classify input", zap.Error(err))
		}
		printJSON(struct {
			*core.ClassificationResult
			IsSpam bool   `json:"is_spam"`
			Advice string `json:"advice"`
		}{result, result.IsSpam(), filter.AdviceFor(result)})
		return
	}

	cliFilter, err := filter.NewCliFilter(service, logger, *verbose)
	if err != nil {
		logger.Fatal("Failed to create CLI filter", zap.Error(err))
	}
	if _, err := cliFilter.ProcessInput(ctx, input); err != nil {
		os.Exit(1)
	}
}

func runBatch(ctx context.Context, service *core.ClassifierService, logger *zap.Logger) {
	processor := batch.NewProcessor(service, logger, *workers)

	startTime := time.Now()
	results, err := processor.ProcessFile(ctx, *batchFile, *isAcademic)
	if err != nil {
		logger.Fatal("Failed to process batch file", zap.Error(err))
	}
	elapsed := time.Since(startTime)

	if *jsonOutput {
		printJSON(results)
		return
	}

	fmt.Printf("\n=== Batch Results (%d messages, %v) ===\n", len(results), elapsed)
	unwanted := 0
	for i, r := range results {
		fmt.Printf("\n[%d] %s\n", i+1, r.Text)
		fmt.Printf("    %s (%.1f%%)", r.Classification, r.Score)
		if r.IsHighRisk {
			fmt.Printf(" HIGH RISK")
		}
		fmt.Printf("\n")
		if r.Classification != string(core.Legitimate) && r.Classification != string(core.Suspicious) {
			unwanted++
		}
	}
	fmt.Printf("\nFlagged %d of %d messages\n", unwanted, len(results))
}

// callMetadataFromFlags builds call metadata from the command line. Numeric
// fields that fail to parse are treated as absent rather than failing the run.
func callMetadataFromFlags() *core.CallMetadata {
	md := &core.CallMetadata{}
	any := false

	if *callerID != "" {
		md.CallerID = callerID
		any = true
	}
	if v, err := strconv.Atoi(*duration); err == nil && *duration != "" {
		md.Duration = &v
		any = true
	}
	if v, err := strconv.Atoi(*frequency); err == nil && *frequency != "" {
		md.Frequency = &v
		any = true
	}
	if *callTime != "" {
		md.CallTime = callTime
		any = true
	}

	if !any {
		return nil
	}
	return md
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
		os.Exit(1)
	}
}
