package classifier

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var (
	repeatedExclaimRe = regexp.MustCompile(`[!]{2,}`)
	repeatedQuestionRe = regexp.MustCompile(`[?]{2,}`)
	dollarAmountRe     = regexp.MustCompile(`\$\d+`)
	spacedLettersRe    = regexp.MustCompile(`\b\w \w \w\b`)
	obfuscatedWordRe   = regexp.MustCompile(`[fF][rR][eE][eE]|[cC][aA][sS][hH]|[mM][oO][nN][eE][yY]`)
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// analyzeFormatting scores formatting signals over the original, uncleaned
// text, so markup density itself cannot be hidden by HTML cleanup. All
// contributions are additive, then clamped to 1.
func analyzeFormatting(text string) float64 {
	var score float64
	runes := []rune(text)

	if len(runes) > 20 {
		upper := 0
		for _, r := range runes {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		ratio := float64(upper) / float64(len(runes))
		if ratio > 0.3 {
			score += math.Min(ratio*1.2, 0.8)
		}
	}

	punct := 0
	for _, r := range runes {
		if strings.ContainsRune(asciiPunctuation, r) {
			punct++
		}
	}
	punctRatio := float64(punct) / math.Max(float64(len(runes)), 1)
	if punctRatio > 0.1 {
		score += math.Min(punctRatio*4, 0.7)
	}

	if repeatedExclaimRe.MatchString(text) {
		score += 0.5
	}
	if repeatedQuestionRe.MatchString(text) {
		score += 0.4
	}

	// Repeated words, e.g. "free free free"
	counts := make(map[string]int)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		counts[w]++
	}
	repeated := 0
	for w, c := range counts {
		if c > 2 && len(w) > 3 {
			repeated++
		}
	}
	if repeated > 0 {
		score += math.Min(0.2*float64(repeated), 0.6)
	}

	if dollarAmountRe.MatchString(text) {
		score += 0.4
	}
	if spacedLettersRe.MatchString(text) {
		score += 0.5
	}
	if obfuscatedWordRe.MatchString(text) {
		score += 0.6
	}

	return math.Min(score, 1.0)
}
