package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaybeCleanHTML_PlainTextUntouched(t *testing.T) {
	text := "just a plain message with no markup < 5 > 3"
	assert.Equal(t, text, maybeCleanHTML(text))
}

func TestMaybeCleanHTML_AttributedAnchorUntouched(t *testing.T) {
	// An anchor with attributes before href is not an HTML marker, so the raw
	// markup stays visible to the anchor impersonation checks
	text := `Click <a class="btn" href="http://evil.tk">your PayPal account</a> to verify`
	assert.Equal(t, text, maybeCleanHTML(text))
}

func TestMaybeCleanHTML_CleansMarkup(t *testing.T) {
	html := `<html><body><p>Hello   world</p><a href="http://x.tk/login">Click</a></body></html>`
	cleaned := maybeCleanHTML(html)

	assert.Contains(t, cleaned, "Hello world")
	assert.Contains(t, cleaned, "Click (http://x.tk/login)")
	assert.NotContains(t, cleaned, "<p>")
}

func TestCleanHTML_DropsStyleAndScript(t *testing.T) {
	html := `<html><head><style>body{color:red}</style></head><body>` +
		`<script>alert(1)</script><div>visible text</div></body></html>`
	cleaned := cleanHTML(html)

	assert.Contains(t, cleaned, "visible text")
	assert.NotContains(t, cleaned, "color:red")
	assert.NotContains(t, cleaned, "alert(1)")
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Hi there", stripTags("<div>Hi <b>there</b></div>"))
	assert.Equal(t, "a & b", stripTags("a &amp; b"))
}
