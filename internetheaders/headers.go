// Package internetheaders synthesizes an RFC-5322 header block for
// persistence as a single PR_TRANSPORT_MESSAGE_HEADERS property value —
// the one sliver of header-string synthesis spec.md's Non-goals still
// allow ("RFC-5322 header string synthesis beyond what is persisted as
// one property value").
//
// Grounded on pymsgkit/properties.go's generate_internet_headers and
// generate_message_id (original_source); shaped in Go the way
// other_examples' wesm-msgvault internal/testutil/email builder.go
// assembles a MIME header block with a fluent-ish helper.
package internetheaders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recipient is the minimal (email, name) pair the header block needs for
// its To/Cc lines.
type Recipient struct {
	Email string
	Name  string
}

// Options configures Generate.
type Options struct {
	Subject      string
	SenderEmail  string
	SenderName   string
	To           []Recipient
	Cc           []Recipient
	MessageID    string // if empty, one is generated from SenderEmail's domain
	Date         time.Time
}

// GenerateMessageID builds a "<unique@domain>" RFC 5322 Message-ID,
// grounded on pymsgkit's generate_message_id.
func GenerateMessageID(domain string) string {
	if domain == "" {
		domain = "outlook-msg-writer.local"
	}
	return fmt.Sprintf("<%d.%s@%s>", time.Now().UnixMicro(), strings.ReplaceAll(uuid.NewString(), "-", "")[:16], domain)
}

// Generate builds the RFC-5322 header block, CRLF-joined, terminated with
// a trailing CRLF.
func Generate(opts Options) string {
	messageID := opts.MessageID
	if messageID == "" {
		domain := "outlook-msg-writer.local"
		if parts := strings.SplitN(opts.SenderEmail, "@", 2); len(parts) == 2 {
			domain = parts[1]
		}
		messageID = GenerateMessageID(domain)
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var b strings.Builder
	writeHeader(&b, "Date", date.UTC().Format("Mon, 02 Jan 2006 15:04:05 -0700"))
	if opts.SenderName != "" {
		writeHeader(&b, "From", fmt.Sprintf("%q <%s>", opts.SenderName, opts.SenderEmail))
	} else {
		writeHeader(&b, "From", opts.SenderEmail)
	}
	if line := addressList(opts.To); line != "" {
		writeHeader(&b, "To", line)
	}
	if line := addressList(opts.Cc); line != "" {
		writeHeader(&b, "Cc", line)
	}
	writeHeader(&b, "Subject", opts.Subject)
	writeHeader(&b, "Message-ID", messageID)
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "quoted-printable")
	writeHeader(&b, "X-Mailer", "outlook-msg-writer")
	return b.String()
}

func writeHeader(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

func addressList(recipients []Recipient) string {
	parts := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if r.Name != "" {
			parts = append(parts, fmt.Sprintf("%q <%s>", r.Name, r.Email))
		} else {
			parts = append(parts, r.Email)
		}
	}
	return strings.Join(parts, ", ")
}
