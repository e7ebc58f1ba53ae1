package internetheaders

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateMessageIDShape(t *testing.T) {
	id := GenerateMessageID("example.com")
	assert.True(t, strings.HasPrefix(id, "<"))
	assert.True(t, strings.HasSuffix(id, "@example.com>"))
}

func TestGenerateMessageIDDefaultsDomain(t *testing.T) {
	id := GenerateMessageID("")
	assert.True(t, strings.HasSuffix(id, "@outlook-msg-writer.local>"))
}

func TestGenerateBasicHeaders(t *testing.T) {
	out := Generate(Options{
		Subject:     "Hello",
		SenderEmail: "a@x.com",
		SenderName:  "A",
		To:          []Recipient{{Email: "b@x.com", Name: "B"}},
		Date:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	assert.True(t, strings.HasPrefix(out, "Date: Fri, 01 Mar 2024 12:00:00 +0000\r\n"))
	assert.Contains(t, out, `From: "A" <a@x.com>`+"\r\n")
	assert.Contains(t, out, `To: "B" <b@x.com>`+"\r\n")
	assert.Contains(t, out, "Subject: Hello\r\n")
	assert.Contains(t, out, "MIME-Version: 1.0\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n"))
}

func TestGenerateOmitsEmptyRecipientLines(t *testing.T) {
	out := Generate(Options{
		Subject:     "s",
		SenderEmail: "a@x.com",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NotContains(t, out, "To: ")
	assert.NotContains(t, out, "Cc: ")
}

func TestGenerateFromWithoutName(t *testing.T) {
	out := Generate(Options{
		Subject:     "s",
		SenderEmail: "a@x.com",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, out, "From: a@x.com\r\n")
}

func TestGenerateUsesProvidedMessageID(t *testing.T) {
	out := Generate(Options{
		Subject:     "s",
		SenderEmail: "a@x.com",
		MessageID:   "<fixed@example.com>",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, out, "Message-ID: <fixed@example.com>\r\n")
}

func TestAddressListMultiple(t *testing.T) {
	out := Generate(Options{
		Subject:     "s",
		SenderEmail: "a@x.com",
		To: []Recipient{
			{Email: "b@x.com", Name: "B"},
			{Email: "c@x.com"},
		},
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Contains(t, out, `To: "B" <b@x.com>, c@x.com`+"\r\n")
}
