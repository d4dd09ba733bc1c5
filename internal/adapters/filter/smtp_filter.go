package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/comm-classifier/internal/core"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// SMTPFilter implements a Postfix-style SMTP content filter. Incoming messages
// are classified and stamped with verdict headers, then relayed upstream.
type SMTPFilter struct {
	service       *core.ClassifierService
	logger        *zap.Logger
	listenAddr    string
	server        *smtp.Server
	blockSpam     bool
	classHeader   string
	scoreHeader   string
	riskHeader    string
	relayAddr     string
	relayPort     int
	relayEnabled  bool
	subjectPrefix string
	modifySubject bool
	academicMode  bool
}

// NewSMTPFilter creates a new SMTP content filter
func NewSMTPFilter(
	service *core.ClassifierService,
	logger *zap.Logger,
	listenAddr string,
	blockSpam bool,
	classHeader string,
	scoreHeader string,
	riskHeader string,
	relayAddr string,
	relayPort int,
	relayEnabled bool,
	subjectPrefix string,
	modifySubject bool,
	academicMode bool,
) *SMTPFilter {
	// If subject prefix is not set but modify subject is enabled, use default prefix
	if subjectPrefix == "" && modifySubject {
		subjectPrefix = "[**SPAM**] "
	}

	return &SMTPFilter{
		service:       service,
		logger:        logger,
		listenAddr:    listenAddr,
		blockSpam:     blockSpam,
		classHeader:   classHeader,
		scoreHeader:   scoreHeader,
		riskHeader:    riskHeader,
		relayAddr:     relayAddr,
		relayPort:     relayPort,
		relayEnabled:  relayEnabled,
		subjectPrefix: subjectPrefix,
		modifySubject: modifySubject,
		academicMode:  academicMode,
	}
}

// Start starts the SMTP filter service
func (f *SMTPFilter) Start() error {
	f.server = smtp.NewServer(&smtpBackend{filter: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = "localhost"
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP filter starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP filter service
func (f *SMTPFilter) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// relay sends the processed message to the upstream server using go-smtp
func (f *SMTPFilter) relay(sender string, recipients []string, emailData []byte) error {
	relayAddr := fmt.Sprintf("%s:%d", f.relayAddr, f.relayPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", relayAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			// Continue with other recipients even if one fails
		} else {
			recipientOK = true
		}
	}

	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}

	_, err = wc.Write(emailData)
	if err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}

	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		f.logger.Warn("QUIT command failed", zap.Error(err))
		// Not returning an error here as the message has already been sent
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	filter *SMTPFilter
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		filter:     b.filter,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	filter     *SMTPFilter
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for the filter)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data handles the message data
func (s *smtpSession) Data(r io.Reader) error {
	// Read the complete raw message data
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.filter.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	// Keep a copy of the raw data for later reconstruction
	rawDataCopy := make([]byte, len(rawData))
	copy(rawDataCopy, rawData)

	// Parse the headers for stamping and subject rewriting. The engine does
	// its own RFC 5322 parse from the raw text.
	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.filter.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	// Extract sender domain for logging
	senderDomain := "unknown"
	if parts := strings.Split(s.sender, "@"); len(parts) == 2 {
		senderDomain = parts[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	input := &core.ClassificationInput{
		Text:       string(rawData),
		IsEmail:    true,
		IsAcademic: s.filter.academicMode,
	}

	result, analysisErr := s.filter.service.Classify(ctx, input)
	if analysisErr != nil {
		s.filter.logger.Error("Failed to classify email",
			zap.Error(analysisErr),
			zap.String("sender", s.sender),
			zap.String("sender_domain", senderDomain))

		// Fall back to a pass-through verdict so mail flow never stalls
		result = &core.ClassificationResult{
			Classification: core.Legitimate,
			Score:          0.0,
			AnalyzedAt:     time.Now(),
		}
	}

	isSpam := result.IsSpam()

	// Only reject if it's unwanted AND there was no error in analysis
	if isSpam && s.filter.blockSpam && analysisErr == nil {
		s.filter.logger.Info("Rejecting message",
			zap.String("from", s.sender),
			zap.String("sender_domain", senderDomain),
			zap.String("classification", string(result.Classification)),
			zap.Float64("score", result.Score))
		return fmt.Errorf("550 Rejected as %s (score: %.2f)", result.Classification, result.Score)
	}

	// Prepare the modified message with verdict headers
	var modifiedEmail bytes.Buffer

	fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", s.filter.classHeader, result.Classification)
	fmt.Fprintf(&modifiedEmail, "%s: %.4f\r\n", s.filter.scoreHeader, result.Score)
	fmt.Fprintf(&modifiedEmail, "%s: %t\r\n", s.filter.riskHeader, result.IsHighRisk)
	if result.IsHighRisk && len(result.RiskReasons) > 0 {
		fmt.Fprintf(&modifiedEmail, "%s-Reasons: %s\r\n", s.filter.riskHeader, strings.Join(result.RiskReasons, "; "))
	}

	if analysisErr != nil {
		fmt.Fprintf(&modifiedEmail, "X-Comm-Analysis-Error: %s\r\n", analysisErr.Error())
	}

	// Modify the subject if the verdict is unwanted and rewriting is enabled
	if isSpam && s.filter.modifySubject && s.filter.subjectPrefix != "" {
		originalSubject := msg.Header.Get("Subject")

		decodedSubject, err := decodeEncodedHeader(originalSubject)
		if err != nil {
			decodedSubject = originalSubject
		}

		if !strings.HasPrefix(decodedSubject, s.filter.subjectPrefix) {
			newSubject := s.filter.subjectPrefix + decodedSubject

			fmt.Fprintf(&modifiedEmail, "Subject: %s\r\n", newSubject)

			// Skip the original subject when writing other headers
			for key, values := range msg.Header {
				if !strings.EqualFold(key, "Subject") {
					for _, value := range values {
						fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", key, value)
					}
				}
			}
		} else {
			// Subject already has the prefix, write all headers as is
			for key, values := range msg.Header {
				for _, value := range values {
					fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", key, value)
				}
			}
		}
	} else {
		// No subject modification needed, write all headers as is
		for key, values := range msg.Header {
			for _, value := range values {
				fmt.Fprintf(&modifiedEmail, "%s: %s\r\n", key, value)
			}
		}
	}

	// End of headers
	fmt.Fprintf(&modifiedEmail, "\r\n")

	// Find where the original body starts in the raw data
	bodyStartIndex := bytes.Index(rawDataCopy, []byte("\r\n\r\n"))
	if bodyStartIndex == -1 {
		bodyStartIndex = bytes.Index(rawDataCopy, []byte("\n\n"))
		if bodyStartIndex == -1 {
			// Fallback: if we can't find the body separator, just use the parsed body
			bodyBytes, err := io.ReadAll(msg.Body)
			if err != nil {
				s.filter.logger.Error("Failed to read message body", zap.Error(err))
				return err
			}
			modifiedEmail.Write(bodyBytes)
		} else {
			// Write the original body (preserving all MIME parts and attachments)
			modifiedEmail.Write(rawDataCopy[bodyStartIndex+2:])
		}
	} else {
		// Write the original body (preserving all MIME parts and attachments)
		modifiedEmail.Write(rawDataCopy[bodyStartIndex+4:])
	}

	if s.filter.relayEnabled {
		if err := s.filter.relay(s.sender, s.recipients, modifiedEmail.Bytes()); err != nil {
			s.filter.logger.Error("Failed to relay message upstream",
				zap.Error(err),
				zap.String("sender", s.sender))
			return err
		}
	} else {
		s.filter.logger.Warn("Upstream relay disabled, this is likely a misconfiguration")
	}

	s.filter.logger.Info("Processed email",
		zap.String("from", s.sender),
		zap.String("sender_domain", senderDomain),
		zap.String("classification", string(result.Classification)),
		zap.Float64("score", result.Score),
		zap.Bool("is_high_risk", result.IsHighRisk),
		zap.Bool("cached", result.Cached))

	return nil
}

// Logout handles SMTP logout (not needed for the filter)
func (s *smtpSession) Logout() error {
	return nil
}

// decodeEncodedHeader decodes RFC 2047 encoded-words in a header value
func decodeEncodedHeader(value string) (string, error) {
	dec := mime.WordDecoder{
		CharsetReader: func(charset string, input io.Reader) (io.Reader, error) {
			enc, err := htmlindex.Get(charset)
			if err != nil {
				return nil, err
			}
			return enc.NewDecoder().Reader(input), nil
		},
	}
	return dec.DecodeHeader(value)
}
