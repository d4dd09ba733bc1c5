package core

import (
	"time"
)

// Classification is the verdict assigned to a piece of communication.
type Classification string

const (
	Legitimate    Classification = "legitimate"
	Suspicious    Classification = "suspicious"
	Spam          Classification = "spam"
	Phishing      Classification = "phishing"
	Robocall      Classification = "robocall"
	Telemarketing Classification = "telemarketing"
)

// CallMetadata carries optional details about a phone call. Nil fields are
// treated as absent and skipped by the call metadata analyzer.
type CallMetadata struct {
	CallerID  *string `json:"caller_id,omitempty"`
	Duration  *int    `json:"duration,omitempty"`
	Frequency *int    `json:"frequency,omitempty"`
	CallTime  *string `json:"call_time,omitempty"`
}

// ClassificationInput is a single classification request. IsEmail and IsCall
// are not mutually exclusive in the contract; when both are set the email
// branch takes effect and the call metadata branch is skipped.
type ClassificationInput struct {
	Text         string        `json:"message"`
	IsEmail      bool          `json:"is_email"`
	IsCall       bool          `json:"is_call"`
	IsAcademic   bool          `json:"is_academic"`
	CallMetadata *CallMetadata `json:"call_metadata,omitempty"`
}

// ComponentScores holds the pre-weighting sub-signal scores, each in [0,1].
// Channel-specific scores are only set for the matching channel.
type ComponentScores struct {
	KeywordScore       float64  `json:"keyword_score"`
	PatternScore       float64  `json:"pattern_score"`
	WordScore          float64  `json:"word_score"`
	URLScore           float64  `json:"url_score"`
	FormatScore        float64  `json:"format_score"`
	EmailMetadataScore *float64 `json:"email_metadata_score,omitempty"`
	CallMetadataScore  *float64 `json:"call_metadata_score,omitempty"`
	AcademicMitigation *float64 `json:"academic_mitigation,omitempty"`
}

// MatchDetails records what the keyword and pattern matchers hit. Keyword
// maps only carry categories with at least one match; the pattern lists carry
// the literal source strings of the patterns that fired.
type MatchDetails struct {
	SpamKeywords            map[string]int      `json:"spam_keywords"`
	MatchedSpamKeywords     map[string][]string `json:"matched_spam_keywords"`
	SpamPatterns            int                 `json:"spam_patterns"`
	MatchedSpamPatterns     []string            `json:"matched_spam_patterns"`
	PhishingPatterns        int                 `json:"phishing_patterns"`
	MatchedPhishingPatterns []string            `json:"matched_phishing_patterns"`
	CallPatterns            int                 `json:"call_patterns"`
	MatchedCallPatterns     []string            `json:"matched_call_patterns"`
	CallKeywords            map[string]int      `json:"call_keywords"`
	MatchedCallKeywords     map[string][]string `json:"matched_call_keywords"`
}

// ClassificationResult is the full outcome of classifying one input.
type ClassificationResult struct {
	Classification Classification  `json:"classification"`
	Score          float64         `json:"score"`
	Scores         ComponentScores `json:"component_scores"`
	Matches        MatchDetails    `json:"matches"`
	IsHighRisk     bool            `json:"is_high_risk"`
	RiskReasons    []string        `json:"risk_reasons"`
	AnalyzedAt     time.Time       `json:"analyzed_at"`
	Cached         bool            `json:"-"`
}

// IsSpam reports whether the verdict falls in one of the unwanted categories.
func (r *ClassificationResult) IsSpam() bool {
	switch r.Classification {
	case Spam, Phishing, Robocall, Telemarketing:
		return true
	}
	return false
}

// CacheEntry is a cached verdict keyed by input digest. Only the digest and
// the verdict are stored; the input text itself is never persisted.
type CacheEntry struct {
	Digest         string
	Classification Classification
	Score          float32
	IsHighRisk     bool
	LastSeen       time.Time
	ExpiresAt      time.Time
}
