package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeFormatting(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0.0},
		{"plain sentence", "See you at the meeting tomorrow", 0.0},
		{"shouting", "HELLO THIS IS VERY IMPORTANT MESSAGE FOR YOU", 0.8},
		{"repeated word plus obfuscation trigger", "free free free free", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, analyzeFormatting(tt.text), 1e-9)
		})
	}
}

func TestAnalyzeFormatting_Additive(t *testing.T) {
	// Exclamation runs, a dollar amount, and heavy punctuation stack up and clamp
	score := analyzeFormatting("Win $100 now!!!")
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestAnalyzeFormatting_SpacedLetters(t *testing.T) {
	assert.InDelta(t, 0.5, analyzeFormatting("w i n a prize today"), 1e-9)
}

func TestAnalyzeFormatting_ShortTextSkipsCapsCheck(t *testing.T) {
	// 20 runes or fewer never trigger the caps ratio check
	assert.InDelta(t, 0.0, analyzeFormatting("OK SEE YOU SOON"), 1e-9)
}
