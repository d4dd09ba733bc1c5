package classifier

import (
	"encoding/base64"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var (
	emailDomainRe    = regexp.MustCompile(`@([A-Za-z0-9.-]+\.[A-Za-z]{2,})`)
	receivedMarkerRe = regexp.MustCompile(`(?i)(suspicious|spam|blocked|blacklisted)`)
	eduFromRe        = regexp.MustCompile(`(?i)@.+\.edu\b`)
	bulkMailerRe     = regexp.MustCompile(`(?i)(bulk|mass|marketing|newsletter|campaign)`)
	multipartMixedRe = regexp.MustCompile(`(?i)multipart/mixed`)
	messageIDShapeRe = regexp.MustCompile(`<[^>]+@[^>]+>`)
)

// autoBulkHeaders indicate auto-generated or bulk submissions.
var autoBulkHeaders = []string{
	"x-auto-response-suppress", "auto-submitted", "x-cron-env", "x-amazon-mail-relay-type",
}

// bulkMailSoftware tokens appear in header values stamped by bulk senders.
var bulkMailSoftware = []string{
	"phpmailer", "phplist", "mailchimp", "constantcontact", "sender", "mailgun", "sendgrid",
}

// parseEmail parses a raw RFC 5322 message into lower-cased headers and the
// scoring text extracted from its body. Only text/plain and text/html parts
// of a multipart body contribute.
func parseEmail(raw string) (string, map[string][]string, error) {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return "", nil, err
	}

	headers := make(map[string][]string, len(msg.Header))
	for key, values := range msg.Header {
		headers[strings.ToLower(key)] = values
	}

	body, err := extractTextFromMessage(msg)
	if err != nil {
		return "", headers, err
	}
	return body, headers, nil
}

// extractTextFromMessage extracts the text content from an email message.
// Multipart bodies are walked recursively for text/plain and text/html parts.
func extractTextFromMessage(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	cte := msg.Header.Get("Content-Transfer-Encoding")

	if !strings.Contains(strings.ToLower(contentType), "multipart/") {
		return decodePart(msg.Body, contentType, cte)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		// Unparseable Content-Type, treat the body as one part
		return decodePart(msg.Body, contentType, cte)
	}

	boundary, ok := params["boundary"]
	if !ok {
		return decodePart(msg.Body, contentType, cte)
	}

	var parts []string
	collectTextParts(multipart.NewReader(msg.Body, boundary), &parts)
	return strings.Join(parts, "\n"), nil
}

// collectTextParts appends decoded text parts, recursing into nested
// multipart containers. Parts that fail to decode are skipped.
func collectTextParts(mr *multipart.Reader, parts *[]string) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return
		}

		partType := part.Header.Get("Content-Type")
		lower := strings.ToLower(partType)
		switch {
		case strings.Contains(lower, "text/plain"), strings.Contains(lower, "text/html"):
			text, err := decodePart(part, partType, part.Header.Get("Content-Transfer-Encoding"))
			if err == nil && text != "" {
				*parts = append(*parts, text)
			}
		case strings.Contains(lower, "multipart/"):
			if _, params, err := mime.ParseMediaType(partType); err == nil {
				if boundary, ok := params["boundary"]; ok {
					collectTextParts(multipart.NewReader(part, boundary), parts)
				}
			}
		}
	}
}

// decodePart reads one body part, applying the transfer encoding and, when a
// charset parameter names a known encoding, converting to UTF-8.
func decodePart(r io.Reader, contentType, cte string) (string, error) {
	var reader io.Reader = r
	switch strings.ToLower(strings.TrimSpace(cte)) {
	case "base64":
		reader = base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		reader = quotedprintable.NewReader(r)
	}

	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if name, ok := params["charset"]; ok {
			if enc, err := htmlindex.Get(name); err == nil {
				reader = transform.NewReader(reader, enc.NewDecoder())
			}
		}
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// analyzeEmailHeaders scores header-level spam and phishing signals. The
// academic .edu discount can drive the raw sum negative; the final clamp
// floors the result at 0.
func analyzeEmailHeaders(headers map[string][]string, isAcademic bool) float64 {
	score := 0.0

	first := func(key string) (string, bool) {
		values := headers[key]
		if len(values) == 0 {
			return "", false
		}
		return values[0], true
	}

	// From vs. Reply-To domain mismatch
	if from, ok := first("from"); ok {
		if replyTo, ok := first("reply-to"); ok {
			fromDomain := emailDomainRe.FindStringSubmatch(from)
			replyDomain := emailDomainRe.FindStringSubmatch(replyTo)
			if fromDomain != nil && replyDomain != nil && fromDomain[1] != replyDomain[1] {
				score += 0.7
			}
		}
	}

	for _, received := range headers["received"] {
		if receivedMarkerRe.MatchString(received) {
			score += 0.6
			break
		}
	}

	if isAcademic {
		if from, ok := first("from"); ok && eduFromRe.MatchString(from) {
			score -= 0.3
		}
	}

	if mailer, ok := first("x-mailer"); ok && bulkMailerRe.MatchString(mailer) {
		score += 0.5
	}

	// multipart/mixed could carry attachments
	if contentType, ok := first("content-type"); ok && multipartMixedRe.MatchString(contentType) {
		score += 0.2
	}

	if messageID, ok := first("message-id"); !ok {
		score += 0.3
	} else if !messageIDShapeRe.MatchString(messageID) {
		score += 0.4
	}

	for _, indicator := range autoBulkHeaders {
		if _, ok := headers[indicator]; ok {
			score += 0.3
			break
		}
	}

bulkScan:
	for _, values := range headers {
		for _, value := range values {
			lower := strings.ToLower(value)
			for _, software := range bulkMailSoftware {
				if strings.Contains(lower, software) {
					score += 0.4
					break bulkScan
				}
			}
		}
	}

	return math.Min(math.Max(score, 0), 1.0)
}
