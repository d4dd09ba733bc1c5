package classifier

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// htmlMarkerRe decides whether a text is treated as HTML at all. The
	// anchor marker requires href directly after the tag name; an anchor
	// with earlier attributes does not trigger cleanup, which keeps raw
	// markup visible to the anchor-impersonation checks.
	htmlMarkerRe = regexp.MustCompile(`(?i)<html|<body|<div|<span|<table|<a\s+href`)

	whitespaceRe = regexp.MustCompile(`\s+`)
	styleBlockRe = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	scriptRe     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	tagRe        = regexp.MustCompile(`<[^>]*>`)
)

// maybeCleanHTML rewrites text through the HTML cleaner when structural
// markers are present, and passes it through unchanged otherwise.
func maybeCleanHTML(text string) string {
	if !htmlMarkerRe.MatchString(text) {
		return text
	}
	return cleanHTML(text)
}

// cleanHTML extracts readable text from HTML content. Anchor text and hrefs
// are appended as plain "text (href)" pairs so link obfuscation stays visible
// to the keyword and pattern matchers after the markup is gone.
func cleanHTML(htmlText string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return stripTags(htmlText)
	}

	var linkTexts []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		linkTexts = append(linkTexts, fmt.Sprintf("%s (%s)", strings.TrimSpace(sel.Text()), href))
	})

	doc.Find("style,script").Remove()

	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(doc.Text(), " "))
	if len(linkTexts) > 0 {
		text += " " + strings.Join(linkTexts, " ")
	}
	return text
}

// stripTags is the regex fallback for markup the HTML parser rejects.
func stripTags(htmlText string) string {
	text := html.UnescapeString(htmlText)
	text = styleBlockRe.ReplaceAllString(text, " ")
	text = scriptRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
