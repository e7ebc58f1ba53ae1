package msgmodel

import (
	"path/filepath"
	"strings"

	"github.com/yuphing-ong/outlook-msg-writer/mapi"
)

// Attachment is one entry of the message's attachment table. Identity is
// positional — the attachment's index in Message.Attachments becomes its
// __attach_version1.0_#NNNNNNNN storage index and PR_ATTACH_NUM.
type Attachment struct {
	Filename  string `validate:"required"`
	Data      []byte
	ContentID string
	MimeType  string
	Inline    bool
	Method    mapi.AttachMethod
}

// Extension returns the filename's extension including its leading dot,
// or "" if it has none (spec §4.5 step 4: PR_ATTACH_EXTENSION is only
// set when the filename has one).
func (a Attachment) Extension() string {
	ext := filepath.Ext(a.Filename)
	if ext == "" {
		return ""
	}
	return ext
}

// mimeTypeOrDefault returns a.MimeType, defaulting to
// "application/octet-stream" when unset, matching pymsgkit/writer.go's
// add_attachment default.
func (a Attachment) mimeTypeOrDefault() string {
	if strings.TrimSpace(a.MimeType) == "" {
		return "application/octet-stream"
	}
	return a.MimeType
}
