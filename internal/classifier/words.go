package classifier

import (
	"math"
	"regexp"
)

var wordRe = regexp.MustCompile(`\w+`)

// wordScoreBoost biases the aggregate toward text-based detection.
const wordScoreBoost = 1.2

// scoreWords sums the risk weight of every recognized token and normalizes by
// the total word count. Unrecognized words contribute zero.
func scoreWords(normalized string) float64 {
	words := wordRe.FindAllString(normalized, -1)
	var sum float64
	for _, w := range words {
		sum += wordRiskWeights[w]
	}
	return sum / math.Max(float64(len(words)), 1) * wordScoreBoost
}
