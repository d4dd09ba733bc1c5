package classifier

import (
	"regexp"
)

// keywordTerm is one lexicon term with its precompiled whole-word matcher.
type keywordTerm struct {
	literal string
	re      *regexp.Regexp
}

// keywordCategory is a compiled lexicon category.
type keywordCategory struct {
	name  string
	terms []keywordTerm
}

// wholeWord compiles a case-insensitive whole-word matcher for a literal
// term. Multi-word terms match as contiguous phrases between boundaries.
func wholeWord(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

func compileLexicon(categories []lexiconCategory) []keywordCategory {
	compiled := make([]keywordCategory, 0, len(categories))
	for _, cat := range categories {
		terms := make([]keywordTerm, 0, len(cat.terms))
		for _, t := range cat.terms {
			terms = append(terms, keywordTerm{literal: t, re: wholeWord(t)})
		}
		compiled = append(compiled, keywordCategory{name: cat.name, terms: terms})
	}
	return compiled
}

// Compiled once at startup; read-only afterwards.
var (
	spamKeywords     = compileLexicon(spamLexicon)
	callKeywords     = compileLexicon(callLexicon)
	academicMatchers = func() []*regexp.Regexp {
		matchers := make([]*regexp.Regexp, 0, len(academicTerms))
		for _, t := range academicTerms {
			matchers = append(matchers, wholeWord(t))
		}
		return matchers
	}()
)

// matchKeywords runs every term of every category against the normalized
// text. Returned maps only carry categories with at least one hit.
func matchKeywords(categories []keywordCategory, text string) (map[string]int, map[string][]string) {
	counts := make(map[string]int)
	matched := make(map[string][]string)
	for _, cat := range categories {
		var hits []string
		for _, t := range cat.terms {
			if t.re.MatchString(text) {
				hits = append(hits, t.literal)
			}
		}
		if len(hits) > 0 {
			counts[cat.name] = len(hits)
			matched[cat.name] = hits
		}
	}
	return counts, matched
}

// countAcademicTerms counts how many distinct academic terms appear.
func countAcademicTerms(text string) int {
	count := 0
	for _, re := range academicMatchers {
		if re.MatchString(text) {
			count++
		}
	}
	return count
}
