package classifier

import (
	"testing"

	"github.com/mikey/comm-classifier/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestClassify_LegitimateText(t *testing.T) {
	engine := New()

	result := engine.Classify(&core.ClassificationInput{
		Text: "Hey, are we still meeting for lunch tomorrow at noon?",
	})

	assert.Equal(t, core.Legitimate, result.Classification)
	assert.Less(t, result.Score, 0.45)
	assert.False(t, result.IsSpam())
	assert.False(t, result.IsHighRisk)
	assert.Nil(t, result.Scores.EmailMetadataScore)
	assert.Nil(t, result.Scores.CallMetadataScore)
	assert.Nil(t, result.Scores.AcademicMitigation)
}

func TestClassify_SpamText(t *testing.T) {
	engine := New()

	text := "URGENT!!! Congratulations! You have WON a FREE cash prize! " +
		"Click here now and claim your prize immediately! Limited time offer! Act now! " +
		"Don't miss this once in a lifetime opportunity! 100% FREE! Call now: 555-123-4567! " +
		"http://bit.ly/free-cash $1000 gift card guaranteed winner!"

	result := engine.Classify(&core.ClassificationInput{Text: text})

	assert.Equal(t, core.Spam, result.Classification)
	assert.GreaterOrEqual(t, result.Score, 0.6)
	assert.True(t, result.IsSpam())
	assert.Greater(t, result.Matches.SpamPatterns, 5)
	assert.NotEmpty(t, result.Matches.SpamKeywords["financial"])
	assert.NotEmpty(t, result.Matches.SpamKeywords["urgency"])
	assert.Greater(t, result.Scores.URLScore, 0.0)
	assert.Greater(t, result.Scores.FormatScore, 0.0)
}

func TestClassify_Robocall(t *testing.T) {
	engine := New()

	transcript := "This is an automated message from the IRS. We have a tax case against you. " +
		"Press 1 to speak to an agent immediately. Act now. This is urgent. " +
		"Immediate action required. Call back now to avoid legal action."

	result := engine.Classify(&core.ClassificationInput{
		Text:   transcript,
		IsCall: true,
		CallMetadata: &core.CallMetadata{
			CallerID:  strPtr("1234"),
			Duration:  intPtr(3),
			Frequency: intPtr(5),
			CallTime:  strPtr("2024-01-15 23:30:00"),
		},
	})

	assert.Equal(t, core.Robocall, result.Classification)
	assert.GreaterOrEqual(t, result.Score, 0.6)
	assert.GreaterOrEqual(t, result.Matches.CallKeywords["robocall"], 1)
	assert.Greater(t, result.Matches.CallPatterns, 0)
	require.NotNil(t, result.Scores.CallMetadataScore)
	assert.InDelta(t, 1.0, *result.Scores.CallMetadataScore, 1e-9)
}

func TestClassify_Telemarketing(t *testing.T) {
	engine := New()

	transcript := "Special promotion! Our exclusive offer expires soon. " +
		"Subscribe today for a free trial and save big on vacation insurance. " +
		"Don't miss this limited time offer. Act now! Save $50 today."

	result := engine.Classify(&core.ClassificationInput{
		Text:   transcript,
		IsCall: true,
		CallMetadata: &core.CallMetadata{
			CallerID:  strPtr("1234"),
			Duration:  intPtr(3),
			Frequency: intPtr(5),
			CallTime:  strPtr("2024-01-15 23:30:00"),
		},
	})

	assert.Equal(t, core.Telemarketing, result.Classification)
	assert.GreaterOrEqual(t, result.Score, 0.6)
	assert.Zero(t, result.Matches.CallKeywords["robocall"])
	assert.GreaterOrEqual(t, result.Matches.CallKeywords["telemarketing"], 1)
}

func TestClassify_CallWithoutTranscript(t *testing.T) {
	engine := New()

	result := engine.Classify(&core.ClassificationInput{
		IsCall: true,
		CallMetadata: &core.CallMetadata{
			CallerID: strPtr("1234"),
		},
	})

	// Metadata-only calls are scored against the substitute transcript
	assert.GreaterOrEqual(t, result.Matches.CallKeywords["robocall"], 1)
	require.NotNil(t, result.Scores.CallMetadataScore)
	assert.Greater(t, *result.Scores.CallMetadataScore, 0.0)
	assert.Equal(t, core.Legitimate, result.Classification)
}

func TestClassify_MalformedEmailFallsBack(t *testing.T) {
	engine := New()

	result := engine.Classify(&core.ClassificationInput{
		Text:    "this is not an rfc 5322 message at all",
		IsEmail: true,
	})

	require.NotNil(t, result.Scores.EmailMetadataScore)
	assert.InDelta(t, 0.1, *result.Scores.EmailMetadataScore, 1e-9)
}

func TestClassify_EmailHeaders(t *testing.T) {
	engine := New()

	raw := "From: support@paypal-secure.tk\r\n" +
		"Reply-To: attacker@evil.com\r\n" +
		"X-Mailer: Bulk Mailer\r\n" +
		"Subject: Verify your account\r\n" +
		"\r\n" +
		"Please verify your account now.\r\n"

	result := engine.Classify(&core.ClassificationInput{
		Text:    raw,
		IsEmail: true,
	})

	require.NotNil(t, result.Scores.EmailMetadataScore)
	// Mismatched Reply-To, bulk mailer, and missing Message-ID saturate the header score
	assert.InDelta(t, 1.0, *result.Scores.EmailMetadataScore, 1e-9)
	assert.Nil(t, result.Scores.CallMetadataScore)
}

func TestClassify_AcademicMitigation(t *testing.T) {
	engine := New()

	text := "The university professor invites every student to the research seminar. " +
		"The course lecture covers thesis and dissertation deadlines. " +
		"Free registration, act now, limited time offer!"

	plain := engine.Classify(&core.ClassificationInput{Text: text})
	academic := engine.Classify(&core.ClassificationInput{Text: text, IsAcademic: true})

	assert.Nil(t, plain.Scores.AcademicMitigation)
	require.NotNil(t, academic.Scores.AcademicMitigation)
	assert.Greater(t, *academic.Scores.AcademicMitigation, 0.0)
	assert.LessOrEqual(t, *academic.Scores.AcademicMitigation, 0.8)
	assert.LessOrEqual(t, academic.Score, plain.Score)
	assert.GreaterOrEqual(t, academic.Score, 0.0)
}

func TestClassify_Deterministic(t *testing.T) {
	engine := New()

	input := &core.ClassificationInput{
		Text: "Limited time offer! Click here now and claim your FREE prize! http://bit.ly/x",
	}

	first := engine.Classify(input)
	second := engine.Classify(input)

	assert.Equal(t, first.Classification, second.Classification)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Scores, second.Scores)
}

func TestClassify_ScoreBounds(t *testing.T) {
	engine := New()

	inputs := []*core.ClassificationInput{
		{Text: ""},
		{Text: "URGENT FREE CASH WINNER!!! Click here now! Act now! $1000 prize! " +
			"Limited time! Don't miss! http://bit.ly/x congratulations you won"},
		{Text: "hello", IsEmail: true},
		{Text: "hello", IsCall: true, CallMetadata: &core.CallMetadata{
			CallerID: strPtr(""), Duration: intPtr(1), Frequency: intPtr(20), CallTime: strPtr("2024-01-15 03:00:00"),
		}},
	}

	for _, input := range inputs {
		result := engine.Classify(input)
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 1.0)
		for _, component := range []float64{
			result.Scores.KeywordScore, result.Scores.PatternScore, result.Scores.WordScore,
			result.Scores.URLScore, result.Scores.FormatScore,
		} {
			assert.GreaterOrEqual(t, component, 0.0)
			assert.LessOrEqual(t, component, 1.0)
		}
	}
}

func TestClassify_ComponentCaps(t *testing.T) {
	engine := New()

	// Enough patterns to blow far past the cap without it
	text := "Congratulations you won! Click here! Act now! Limited time! Don't miss! " +
		"$100 gift card! Call 555-123-4567 now! http://spam.example account locked " +
		"action required immediate action verify your account information urgent alert"

	result := engine.Classify(&core.ClassificationInput{Text: text})

	assert.LessOrEqual(t, result.Scores.PatternScore, 0.9)
	assert.LessOrEqual(t, result.Scores.KeywordScore, 0.9)
}

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		name            string
		isCall          bool
		score           float64
		phishingMatches int
		callCounts      map[string]int
		want            core.Classification
	}{
		{"phishing needs matches and score", false, 0.8, 3, nil, core.Phishing},
		{"high score without matches is spam", false, 0.8, 2, nil, core.Spam},
		{"matches without score is spam", false, 0.65, 5, nil, core.Spam},
		{"spam boundary inclusive", false, 0.60, 0, nil, core.Spam},
		{"suspicious band", false, 0.5, 0, nil, core.Suspicious},
		{"suspicious boundary inclusive", false, 0.45, 0, nil, core.Suspicious},
		{"below all thresholds", false, 0.44, 0, nil, core.Legitimate},
		{"robocall", true, 0.60, 0, map[string]int{"robocall": 1}, core.Robocall},
		{"robocall outranks telemarketing", true, 0.7, 0, map[string]int{"robocall": 1, "telemarketing": 2}, core.Robocall},
		{"telemarketing", true, 0.60, 0, map[string]int{"telemarketing": 1}, core.Telemarketing},
		{"scored call without call keywords", true, 0.9, 0, map[string]int{}, core.Suspicious},
		{"suspicious call", true, 0.5, 0, map[string]int{}, core.Suspicious},
		{"legitimate call", true, 0.3, 0, map[string]int{"robocall": 1}, core.Legitimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.isCall, tt.score, tt.phishingMatches, tt.callCounts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_PhishingPatternAccounting(t *testing.T) {
	engine := New()

	text := "Your account will be suspended due to unusual activity detected. " +
		"Click the link to verify your identity and update your password immediately."

	result := engine.Classify(&core.ClassificationInput{Text: text})

	assert.GreaterOrEqual(t, result.Matches.PhishingPatterns, 3)
	assert.Len(t, result.Matches.MatchedPhishingPatterns, result.Matches.PhishingPatterns)
}
