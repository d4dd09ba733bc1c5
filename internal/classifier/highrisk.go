package classifier

import (
	"regexp"
	"strings"
)

// riskCheck is one high-risk content detector with its reported reason.
type riskCheck struct {
	re     *regexp.Regexp
	reason string
}

// riskChecks run over the lower-cased original text, orthogonal to the spam
// score: a match raises the high-risk flag but never changes the score.
var riskChecks = []riskCheck{
	{regexp.MustCompile(`(ssn|social security|tax id|passport|driver'?s license|id card)`),
		"Requests for personal identification"},
	{regexp.MustCompile(`(bank account|routing number|account number|credit card|cvv|expiration date|pin|security code)`),
		"Requests for financial information"},
	{regexp.MustCompile(`(send money|wire transfer|western union|moneygram|gift card|bitcoin|cryptocurrency)`),
		"Suspicious money transfer request"},
	{regexp.MustCompile(`(compromised|hacked|exposed|recorded|webcam|video of you|publish|share.*photos)`),
		"Possible extortion attempt"},
	{regexp.MustCompile(`(virus|malware|infected|tech support|remote access|security alert|microsoft support|apple support)`),
		"Possible tech support scam"},
	{regexp.MustCompile(`(irs|tax authority|fbi|police|government|official|agent|officer|warrant|arrest|legal action)`),
		"Authority impersonation"},
	{regexp.MustCompile(`(lottery|winner|prize|inheritance|unclaimed|beneficiary|deceased relative|claim your)`),
		"Suspicious prize or inheritance claim"},
}

// DetectHighRisk flags identity-theft, fraud, extortion, and impersonation
// attempts in raw text. The result depends only on the text, never on
// channel flags.
func (e *Engine) DetectHighRisk(text string) (bool, []string) {
	normalized := strings.ToLower(text)

	var reasons []string
	for _, check := range riskChecks {
		if check.re.MatchString(normalized) {
			reasons = append(reasons, check.reason)
		}
	}
	return len(reasons) > 0, reasons
}
