// Package classifier implements the rule-based scoring engine: keyword and
// pattern matching, per-word risk weighting, URL and formatting analysis,
// channel metadata analysis, and threshold classification.
//
// All lexicons, pattern families, and weight tables are compiled once at
// package initialization and are read-only afterwards, so the engine is safe
// for unlimited concurrent use. Every analyzer is total: malformed input
// degrades to a documented fallback score instead of an error.
package classifier

import (
	"math"
	"strings"
	"time"

	"github.com/mikey/comm-classifier/internal/core"
)

// Component weights and caps. These reproduce the hand-tuned source rule set
// exactly and are deliberately not configurable.
const (
	keywordWeight = 0.35
	patternWeight = 0.30
	wordWeight    = 0.20
	urlWeight     = 0.10
	formatWeight  = 0.05

	spamPatternWeight     = 0.15
	phishingPatternWeight = 0.20
	componentScoreCap     = 0.9

	emailBaseWeight     = 0.7
	emailMetadataWeight = 0.3

	callBaseWeight      = 0.4
	callComponentWeight = 0.4
	callMetadataWeight  = 0.2

	textOnlyBoost = 1.1

	academicMitigationCap = 0.8

	spamThreshold          = 0.60
	phishingThreshold      = 0.75
	suspiciousThreshold    = 0.45
	robocallThreshold      = 0.60
	telemarketingThreshold = 0.60

	// phishing needs several structural signatures, not just a high score
	phishingPatternMinimum = 3

	// fallback when an email payload cannot be parsed at all
	emailParseFallbackScore = 0.1

	// substitute transcript for a metadata-only call
	defaultCallTranscript = "Automated call detected"
)

// Engine is the scoring engine. It holds no mutable state; the shared
// configuration tables live at package level and are read-only.
type Engine struct{}

// New creates a new scoring engine
func New() *Engine {
	return &Engine{}
}

// Classify scores one input and assigns a classification. The high-risk
// overlay runs over the raw input text, independent of the score pipeline.
func (e *Engine) Classify(input *core.ClassificationInput) *core.ClassificationResult {
	text := input.Text

	emailMetadataScore := 0.0
	callMetadataScore := 0.0

	if input.IsEmail {
		body, headers, err := parseEmail(text)
		if err != nil {
			// Slight suspicion for a malformed email; score the raw text
			emailMetadataScore = emailParseFallbackScore
		} else {
			if body != "" {
				text = body
			}
			emailMetadataScore = analyzeEmailHeaders(headers, input.IsAcademic)
		}
	}

	if input.IsCall && input.CallMetadata != nil {
		callMetadataScore = analyzeCallMetadata(input.CallMetadata)
		if strings.TrimSpace(text) == "" {
			text = defaultCallTranscript
		}
	}

	originalText := text
	text = maybeCleanHTML(text)
	normalized := strings.ToLower(text)

	spamCounts, matchedSpamKeywords := matchKeywords(spamKeywords, normalized)

	callCounts := map[string]int{}
	matchedCallKeywords := map[string][]string{}
	if input.IsCall {
		callCounts, matchedCallKeywords = matchKeywords(callKeywords, normalized)
	}

	matchedSpamPatterns := matchPatterns(spamPatterns, text)
	matchedPhishingPatterns := matchPatterns(phishingPatterns, text)
	var matchedCallPatterns []string
	if input.IsCall {
		matchedCallPatterns = matchPatterns(callPatterns, text)
	}

	wordScore := scoreWords(normalized)

	academicMitigation := 0.0
	if input.IsAcademic {
		academicMitigation = math.Min(float64(countAcademicTerms(normalized))/10.0, academicMitigationCap)
	}

	urlScore := analyzeURLs(extractURLs(text))
	formatScore := analyzeFormatting(originalText)

	keywordScore := float64(sumCounts(spamCounts)) /
		math.Max(50, float64(len(strings.Fields(text)))/2)
	keywordScore = math.Min(keywordScore, componentScoreCap)

	patternScore := float64(len(matchedSpamPatterns))*spamPatternWeight +
		float64(len(matchedPhishingPatterns))*phishingPatternWeight
	patternScore = math.Min(patternScore, componentScoreCap)

	baseScore := keywordScore*keywordWeight +
		patternScore*patternWeight +
		wordScore*wordWeight +
		urlScore*urlWeight +
		formatScore*formatWeight

	var finalScore float64
	switch {
	case input.IsEmail:
		finalScore = baseScore*emailBaseWeight + emailMetadataScore*emailMetadataWeight
	case input.IsCall:
		callComponent := float64(sumCounts(callCounts))/5.0*0.6 +
			float64(len(matchedCallPatterns))/2.0*0.4
		callComponent = math.Min(callComponent, componentScoreCap)
		finalScore = baseScore*callBaseWeight +
			callComponent*callComponentWeight +
			callMetadataScore*callMetadataWeight
	default:
		finalScore = baseScore * textOnlyBoost
	}

	if input.IsAcademic {
		finalScore = math.Max(0, finalScore-academicMitigation)
	}
	finalScore = math.Max(0, math.Min(finalScore, 1.0))

	classification := classify(input.IsCall, finalScore, len(matchedPhishingPatterns), callCounts)

	isHighRisk, riskReasons := e.DetectHighRisk(input.Text)

	result := &core.ClassificationResult{
		Classification: classification,
		Score:          finalScore,
		Scores: core.ComponentScores{
			KeywordScore: keywordScore,
			PatternScore: patternScore,
			WordScore:    wordScore,
			URLScore:     urlScore,
			FormatScore:  formatScore,
		},
		Matches: core.MatchDetails{
			SpamKeywords:            spamCounts,
			MatchedSpamKeywords:     matchedSpamKeywords,
			SpamPatterns:            len(matchedSpamPatterns),
			MatchedSpamPatterns:     matchedSpamPatterns,
			PhishingPatterns:        len(matchedPhishingPatterns),
			MatchedPhishingPatterns: matchedPhishingPatterns,
			CallPatterns:            len(matchedCallPatterns),
			MatchedCallPatterns:     matchedCallPatterns,
			CallKeywords:            callCounts,
			MatchedCallKeywords:     matchedCallKeywords,
		},
		IsHighRisk:  isHighRisk,
		RiskReasons: riskReasons,
		AnalyzedAt:  time.Now(),
	}

	if input.IsEmail {
		result.Scores.EmailMetadataScore = &emailMetadataScore
	}
	if input.IsCall {
		result.Scores.CallMetadataScore = &callMetadataScore
	}
	if input.IsAcademic {
		result.Scores.AcademicMitigation = &academicMitigation
	}

	return result
}

// classify applies the ordered threshold rules; the first matching rule wins.
func classify(isCall bool, score float64, phishingMatches int, callCounts map[string]int) core.Classification {
	if isCall {
		switch {
		case score >= robocallThreshold && callCounts["robocall"] >= 1:
			return core.Robocall
		case score >= telemarketingThreshold && callCounts["telemarketing"] >= 1:
			return core.Telemarketing
		case score >= suspiciousThreshold:
			return core.Suspicious
		}
		return core.Legitimate
	}

	switch {
	case phishingMatches >= phishingPatternMinimum && score >= phishingThreshold:
		return core.Phishing
	case score >= spamThreshold:
		return core.Spam
	case score >= suspiciousThreshold:
		return core.Suspicious
	}
	return core.Legitimate
}

func sumCounts(counts map[string]int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
