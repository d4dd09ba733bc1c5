package filter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mikey/comm-classifier/internal/core"
	"go.uber.org/zap"
)

// adviceByClassification maps each verdict to a short recommendation shown to
// the user after classification.
var adviceByClassification = map[core.Classification]string{
	core.Spam:          "Avoid responding or clicking links. Delete this message.",
	core.Phishing:      "Do NOT click any links or provide information. Report immediately.",
	core.Suspicious:    "Exercise caution. Verify sender independently before acting.",
	core.Legitimate:    "Appears safe, but always verify unexpected messages.",
	core.Robocall:      "This is likely an automated call. Do not answer or call back.",
	core.Telemarketing: "This may be a sales call. Consider blocking the number.",
}

const defaultAdvice = "Use caution and verify independently."

// AdviceFor returns the recommendation for a result, prefixed with a warning
// and the risk reasons when the high-risk overlay fired.
func AdviceFor(result *core.ClassificationResult) string {
	advice, ok := adviceByClassification[result.Classification]
	if !ok {
		advice = defaultAdvice
	}
	if result.IsHighRisk {
		advice = "HIGH RISK DETECTED! " + advice + " " + strings.Join(result.RiskReasons, ", ")
	}
	return advice
}

// CliFilter implements a command-line interface for classification
type CliFilter struct {
	service *core.ClassifierService
	logger  *zap.Logger
	verbose bool
}

// NewCliFilter creates a new CLI filter
func NewCliFilter(service *core.ClassifierService, logger *zap.Logger, verbose bool) (*CliFilter, error) {
	return &CliFilter{
		service: service,
		logger:  logger,
		verbose: verbose,
	}, nil
}

// ProcessInput classifies an input and displays the results
func (f *CliFilter) ProcessInput(ctx context.Context, input *core.ClassificationInput) (*core.ClassificationResult, error) {
	f.logger.Debug("Processing input",
		zap.Bool("is_email", input.IsEmail),
		zap.Bool("is_call", input.IsCall))

	// Print input summary
	fmt.Printf("\n=== Input Summary ===\n")
	fmt.Printf("Channel: %s\n", channelLabel(input))
	fmt.Printf("Academic context: %t\n", input.IsAcademic)
	fmt.Printf("Text length: %d bytes\n", len(input.Text))

	if input.CallMetadata != nil {
		md := input.CallMetadata
		if md.CallerID != nil {
			fmt.Printf("Caller ID: %s\n", *md.CallerID)
		}
		if md.Duration != nil {
			fmt.Printf("Duration: %ds\n", *md.Duration)
		}
		if md.Frequency != nil {
			fmt.Printf("Frequency: %d calls\n", *md.Frequency)
		}
		if md.CallTime != nil {
			fmt.Printf("Call time: %s\n", *md.CallTime)
		}
	}

	// Print text preview if verbose
	if f.verbose {
		preview := input.Text
		if len(preview) > 500 {
			preview = preview[:500] + "..."
		}
		fmt.Printf("\nText preview:\n%s\n", preview)
	}

	fmt.Printf("\n")

	// Classify
	fmt.Printf("=== Analysis ===\n")
	startTime := time.Now()
	result, err := f.service.Classify(ctx, input)
	if err != nil {
		f.logger.Error("Failed to classify input", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return nil, err
	}
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Classification: %s\n", result.Classification)
	fmt.Printf("Confidence: %.1f%%\n", result.Score*100)
	fmt.Printf("Is spam: %t\n", result.IsSpam())
	fmt.Printf("High risk: %t\n", result.IsHighRisk)
	if result.Cached {
		fmt.Printf("(cached verdict, component breakdown unavailable)\n")
	} else {
		fmt.Printf("\nComponent scores:\n")
		fmt.Printf("  Keywords:   %.1f%%\n", result.Scores.KeywordScore*100)
		fmt.Printf("  Patterns:   %.1f%%\n", result.Scores.PatternScore*100)
		fmt.Printf("  Words:      %.1f%%\n", result.Scores.WordScore*100)
		fmt.Printf("  URLs:       %.1f%%\n", result.Scores.URLScore*100)
		fmt.Printf("  Formatting: %.1f%%\n", result.Scores.FormatScore*100)
		if result.Scores.EmailMetadataScore != nil {
			fmt.Printf("  Email metadata: %.1f%%\n", *result.Scores.EmailMetadataScore*100)
		}
		if result.Scores.CallMetadataScore != nil {
			fmt.Printf("  Call metadata:  %.1f%%\n", *result.Scores.CallMetadataScore*100)
		}

		if f.verbose {
			printMatches(&result.Matches)
		}
	}

	fmt.Printf("\nAdvice: %s\n", AdviceFor(result))
	fmt.Printf("Processing time: %v\n", duration)

	return result, nil
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}

func channelLabel(input *core.ClassificationInput) string {
	switch {
	case input.IsEmail:
		return "email"
	case input.IsCall:
		return "call"
	default:
		return "text"
	}
}

func printMatches(m *core.MatchDetails) {
	if len(m.SpamKeywords) > 0 {
		fmt.Printf("\nKeyword hits:\n")
		categories := make([]string, 0, len(m.SpamKeywords))
		for category := range m.SpamKeywords {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Printf("  %s (%d): %s\n", category, m.SpamKeywords[category],
				strings.Join(m.MatchedSpamKeywords[category], ", "))
		}
	}
	if m.SpamPatterns > 0 {
		fmt.Printf("\nSpam patterns (%d):\n", m.SpamPatterns)
		for _, p := range m.MatchedSpamPatterns {
			fmt.Printf("  %s\n", p)
		}
	}
	if m.PhishingPatterns > 0 {
		fmt.Printf("\nPhishing patterns (%d):\n", m.PhishingPatterns)
		for _, p := range m.MatchedPhishingPatterns {
			fmt.Printf("  %s\n", p)
		}
	}
	if m.CallPatterns > 0 {
		fmt.Printf("\nCall patterns (%d):\n", m.CallPatterns)
		for _, p := range m.MatchedCallPatterns {
			fmt.Printf("  %s\n", p)
		}
	}
	if len(m.CallKeywords) > 0 {
		fmt.Printf("\nCall keyword hits:\n")
		categories := make([]string, 0, len(m.CallKeywords))
		for category := range m.CallKeywords {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			fmt.Printf("  %s (%d): %s\n", category, m.CallKeywords[category],
				strings.Join(m.MatchedCallKeywords[category], ", "))
		}
	}
}
