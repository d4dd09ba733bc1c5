package classifier

import (
	"math"
	"net/url"
	"regexp"
	"strings"
)

var (
	urlRe = regexp.MustCompile(`https?://\S+`)

	shortenerRe      = regexp.MustCompile(`(?i)bit\.ly|tinyurl\.com|goo\.gl|t\.co|is\.gd|cli\.gs|ow\.ly|tr\.im|tiny\.cc|url\.ie`)
	suspiciousTLDRe  = regexp.MustCompile(`\.(tk|ml|ga|cf|gq|xyz|top|win|bid|stream|club|pw|loan|webcam|science|review|date)$`)
	numericDomainRe  = regexp.MustCompile(`^[0-9.-]+$`)
	randomDomainRe   = regexp.MustCompile(`^[a-z0-9]{10,}\.`)
	brandDomainRe    = regexp.MustCompile(`(paypal|apple|microsoft|amazon|google|facebook|instagram|twitter|bank|ebay|chase|amex|visa|secure)\W`)
	suspiciousPathRe = regexp.MustCompile(`(login|verify|confirm|secure|account|banking|payment|credit|update|user|signin|authenticate)`)
	ipHostRe         = regexp.MustCompile(`^(\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})`)
	suspectQueryRe   = regexp.MustCompile(`(password|username|login|ssn|account|card|credit|routing|email|bank|auth|token)`)
)

// Per-URL suspicion contributions. Shorteners are terminal: once a URL is a
// known shortener no further checks run for it.
const (
	urlShortenerScore    = 0.8
	urlSuspiciousTLD     = 0.7
	urlNumericDomain     = 0.9
	urlBrandImpersonated = 1.0
	urlSuspiciousPath    = 0.5
	urlExcessSubdomains  = 0.6
	urlIPHost            = 0.9
	urlSuspiciousQuery   = 0.8
	urlParseFailure      = 0.4
)

// extractURLs pulls all http(s) URLs out of cleaned text.
func extractURLs(text string) []string {
	return urlRe.FindAllString(text, -1)
}

// analyzeURLs scores structural suspicion across all URLs. Contributions
// accumulate per URL without a per-URL cap; the final score is the average
// suspicion per URL examined, clamped to 1.
func analyzeURLs(urls []string) float64 {
	if len(urls) == 0 {
		return 0.0
	}

	var suspicion float64
	for _, raw := range urls {
		if shortenerRe.MatchString(raw) {
			suspicion += urlShortenerScore
			continue
		}

		parsed, err := url.Parse(raw)
		if err != nil {
			suspicion += urlParseFailure
			continue
		}
		domain := strings.ToLower(parsed.Host)
		path := strings.ToLower(parsed.Path)

		if suspiciousTLDRe.MatchString(domain) {
			suspicion += urlSuspiciousTLD
		}
		if numericDomainRe.MatchString(domain) || randomDomainRe.MatchString(domain) {
			suspicion += urlNumericDomain
		}
		if brandDomainRe.MatchString(domain) && !hasCanonicalTLD(domain) {
			suspicion += urlBrandImpersonated
		}
		if suspiciousPathRe.MatchString(path) {
			suspicion += urlSuspiciousPath
		}
		if strings.Count(domain, ".") > 3 {
			suspicion += urlExcessSubdomains
		}
		if ipHostRe.MatchString(domain) {
			suspicion += urlIPHost
		}
		if suspectQueryRe.MatchString(strings.ToLower(parsed.RawQuery)) {
			suspicion += urlSuspiciousQuery
		}
	}

	return math.Min(suspicion/float64(len(urls)), 1.0)
}

func hasCanonicalTLD(domain string) bool {
	return strings.HasSuffix(domain, ".com") ||
		strings.HasSuffix(domain, ".net") ||
		strings.HasSuffix(domain, ".org")
}
