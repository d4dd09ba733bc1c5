package classifier

import (
	"testing"

	"github.com/mikey/comm-classifier/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestDetectHighRisk(t *testing.T) {
	engine := New()

	tests := []struct {
		name   string
		text   string
		reason string
	}{
		{"identity", "Please send us your SSN to continue", "Requests for personal identification"},
		{"financial", "Enter your credit card and CVV", "Requests for financial information"},
		{"money transfer", "Pay via Western Union or gift card", "Suspicious money transfer request"},
		{"extortion", "Your webcam was hacked and we recorded you", "Possible extortion attempt"},
		{"tech support", "Your computer is infected, call Microsoft Support", "Possible tech support scam"},
		{"authority", "The IRS has issued a warrant for your arrest", "Authority impersonation"},
		{"prize", "You are the beneficiary of an unclaimed inheritance", "Suspicious prize or inheritance claim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isHighRisk, reasons := engine.DetectHighRisk(tt.text)
			assert.True(t, isHighRisk)
			assert.Contains(t, reasons, tt.reason)
		})
	}
}

func TestDetectHighRisk_Clean(t *testing.T) {
	engine := New()

	isHighRisk, reasons := engine.DetectHighRisk("See you at the meeting tomorrow")
	assert.False(t, isHighRisk)
	assert.Empty(t, reasons)
}

func TestDetectHighRisk_MultipleReasons(t *testing.T) {
	engine := New()

	_, reasons := engine.DetectHighRisk("Wire transfer your inheritance after you confirm your ssn")
	assert.Len(t, reasons, 3)
}

func TestDetectHighRisk_IndependentOfChannelFlags(t *testing.T) {
	engine := New()

	text := "Provide your bank account number to claim your lottery prize"

	plain := engine.Classify(&core.ClassificationInput{Text: text})
	email := engine.Classify(&core.ClassificationInput{Text: text, IsEmail: true})

	assert.True(t, plain.IsHighRisk)
	assert.True(t, email.IsHighRisk)
	assert.Equal(t, plain.RiskReasons, email.RiskReasons)
}
