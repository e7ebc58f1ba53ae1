package msgmodel

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yuphing-ong/outlook-msg-writer/mapi"
	"github.com/yuphing-ong/outlook-msg-writer/msgerr"
)

// MAPI message-flag bits used by the save-time PR_MESSAGE_FLAGS
// derivation (spec §4.3/§8 invariant 7).
const (
	MsgFlagRead      = 0x00000001
	MsgFlagHasAttach = 0x00000010
)

var validate = validator.New()

// Message is the in-memory message model: a tag-keyed property map, an
// ordered recipient list, and an ordered attachment list. It is
// constructed with defaults pre-populated, mutated by setters, and
// consumed once by the MSG layout orchestrator's Save.
type Message struct {
	properties map[mapi.Tag]mapi.Property
	Recipients []Recipient
	Attachments []Attachment

	conversationIndex []byte

	clock Clock
	rng   RNG
}

// Option configures a Message at construction time.
type Option func(*Message)

// WithClock overrides the ambient clock, for deterministic tests.
func WithClock(c Clock) Option { return func(m *Message) { m.clock = c } }

// WithRNG overrides the ambient randomness source, for deterministic tests.
func WithRNG(r RNG) Option { return func(m *Message) { m.rng = r } }

// New constructs a Message with the defaults of spec §4.3 pre-populated.
func New(opts ...Option) *Message {
	m := &Message{
		properties: map[mapi.Tag]mapi.Property{},
		clock:      SystemClock,
		rng:        CryptoRNG,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.setDefaults()
	return m
}

func (m *Message) setDefaults() {
	now := m.clock.Now()

	m.SetProperty(mapi.PR_MESSAGE_CLASS, mapi.NewUnicode("IPM.Note"))
	m.SetProperty(mapi.PR_MESSAGE_FLAGS, mapi.NewLong(0))

	m.SetProperty(mapi.PR_CLIENT_SUBMIT_TIME, mapi.NewSysTime(now))
	m.SetProperty(mapi.PR_MESSAGE_DELIVERY_TIME, mapi.NewSysTime(now))
	m.SetProperty(mapi.PR_CREATION_TIME, mapi.NewSysTime(now))
	m.SetProperty(mapi.PR_LAST_MODIFICATION_TIME, mapi.NewSysTime(now))

	m.SetProperty(mapi.PR_IMPORTANCE, mapi.NewLong(1))
	m.SetProperty(mapi.PR_PRIORITY, mapi.NewLong(0))
	m.SetProperty(mapi.PR_SENSITIVITY, mapi.NewLong(0))

	m.SetProperty(mapi.PR_HASATTACH, mapi.NewBoolean(false))
	m.SetProperty(mapi.PR_MESSAGE_CODEPAGE, mapi.NewLong(65001))
	m.SetProperty(mapi.PR_INTERNET_CPID, mapi.NewLong(65001))
	m.SetProperty(mapi.PR_MESSAGE_LOCALE_ID, mapi.NewLong(0x0409))
	m.SetProperty(mapi.PR_MSG_STATUS, mapi.NewLong(0))
	m.SetProperty(mapi.PR_READ_RECEIPT_REQUESTED, mapi.NewBoolean(false))
	m.SetProperty(mapi.PR_ORIGINATOR_DELIVERY_REPORT_REQUESTED, mapi.NewBoolean(false))

	// De facto required for Outlook to treat the file as a normal
	// top-level message rather than a restricted one (spec §9 Open
	// Question); original_source never sets it.
	m.SetProperty(mapi.PR_STORE_SUPPORT_MASK, mapi.NewLong(0x00040B70))
}

// SetProperty is the low-level escape hatch: set any raw MAPI property,
// not just the ones with named setters. A later write with a different
// type for the same tag overwrites, per the Message's tag-unique map
// semantics (spec §3). Grounded on pymsgkit/writer.go's set_property,
// which pymsgkit/examples/ediscovery_reconstruction.py uses to override
// PR_CLIENT_SUBMIT_TIME to an archived timestamp.
func (m *Message) SetProperty(tag mapi.Tag, v mapi.Value) {
	m.properties[tag] = mapi.NewProperty(tag, v)
}

// Properties returns the message's properties as a slice sorted by tag
// ascending, the order spec §4.5 requires for the
// __properties_version1.0 stream.
func (m *Message) Properties() []mapi.Property {
	out := make([]mapi.Property, 0, len(m.properties))
	for _, p := range m.properties {
		out = append(out, p)
	}
	SortPropertiesByTag(out)
	return out
}

// SortPropertiesByTag sorts props by tag ascending in place, the order
// required for every __properties_version1.0 stream (spec §4.5).
func SortPropertiesByTag(props []mapi.Property) {
	sort.Slice(props, func(i, j int) bool { return props[i].Tag < props[j].Tag })
}

// conversationPrefixes are the reply/forward prefixes stripped at most
// once from a subject to derive its conversation topic (spec §4.3).
var conversationPrefixes = []string{"RE:", "FW:"}

// SetSubject sets PR_SUBJECT and derives PR_CONVERSATION_TOPIC by
// stripping at most one leading case-insensitive RE:/FW: prefix (with
// optional surrounding whitespace). This generalizes — and replaces —
// pymsgkit/writer.go's set_subject, which chain-strips every prefix in
// its literal list against the progressively-shortened string; spec §4.3
// calls for a single strip, so that behavior is not carried over.
func (m *Message) SetSubject(subject string) {
	m.SetProperty(mapi.PR_SUBJECT, mapi.NewUnicode(subject))
	m.SetProperty(mapi.PR_CONVERSATION_TOPIC, mapi.NewUnicode(conversationTopic(subject)))
}

func conversationTopic(subject string) string {
	trimmed := strings.TrimLeft(subject, " \t")
	upper := strings.ToUpper(trimmed)
	for _, prefix := range conversationPrefixes {
		if strings.HasPrefix(upper, prefix) {
			rest := trimmed[len(prefix):]
			return strings.TrimLeft(rest, " \t")
		}
	}
	return subject
}

// SetBody sets PR_BODY (always, as PT_UNICODE). When isHTML is true it
// additionally sets PR_HTML as PT_BINARY UTF-8 bytes, matching
// pymsgkit/writer.go's set_body (original_source).
func (m *Message) SetBody(body string, isHTML bool) {
	if isHTML {
		m.SetProperty(mapi.PR_HTML, mapi.NewBinary([]byte(body)))
	}
	m.SetProperty(mapi.PR_BODY, mapi.NewUnicode(body))
}

// SetSender sets the PR_SENDER_* family and the matching
// PR_SENT_REPRESENTING_* family to identical values. Allowing any sender
// address — not merely an authenticated mailbox — is a deliberate design
// point the core imposes no policy on (spec §4.3), used by
// pymsgkit/examples/ediscovery_reconstruction.py to reconstruct archived
// mail under an arbitrary historical sender.
func (m *Message) SetSender(email, name, addrType string) error {
	if strings.TrimSpace(email) == "" {
		return &msgerr.ValidationError{Field: "sender email", Reason: "must not be empty"}
	}
	if addrType == "" {
		addrType = "SMTP"
	}
	display := name
	if display == "" {
		display = email
	}

	searchKey := SearchKey(addrType, email)
	entryID := EntryID(email, display, addrType)

	m.SetProperty(mapi.PR_SENDER_NAME, mapi.NewUnicode(display))
	m.SetProperty(mapi.PR_SENDER_EMAIL_ADDRESS, mapi.NewUnicode(email))
	m.SetProperty(mapi.PR_SENDER_ADDRTYPE, mapi.NewUnicode(addrType))
	m.SetProperty(mapi.PR_SENDER_SEARCH_KEY, mapi.NewBinary(searchKey))
	m.SetProperty(mapi.PR_SENDER_ENTRYID, mapi.NewBinary(entryID))

	m.SetProperty(mapi.PR_SENT_REPRESENTING_NAME, mapi.NewUnicode(display))
	m.SetProperty(mapi.PR_SENT_REPRESENTING_EMAIL_ADDRESS, mapi.NewUnicode(email))
	m.SetProperty(mapi.PR_SENT_REPRESENTING_ADDRTYPE, mapi.NewUnicode(addrType))
	m.SetProperty(mapi.PR_SENT_REPRESENTING_SEARCH_KEY, mapi.NewBinary(searchKey))
	m.SetProperty(mapi.PR_SENT_REPRESENTING_ENTRYID, mapi.NewBinary(entryID))
	return nil
}

// AddRecipient appends a recipient to the recipient table. Identity is
// positional: its index becomes its __recip_version1.0_#NNNNNNNN
// storage index. Validated with go-playground/validator, surfacing a bad
// address as a msgerr.ValidationError — pymsgkit/writer.go's
// add_recipient performs no such check (original_source).
func (m *Message) AddRecipient(r Recipient) error {
	if r.AddrType == "" {
		r.AddrType = "SMTP"
	}
	if r.DisplayName == "" {
		r.DisplayName = r.Email
	}
	if !r.Type.Valid() {
		return &msgerr.ValidationError{Field: "recipient type", Reason: "must be one of TO(1), CC(2), BCC(3)"}
	}
	if err := validate.Struct(r); err != nil {
		return &msgerr.ValidationError{Field: "recipient", Reason: err.Error()}
	}
	m.Recipients = append(m.Recipients, r)
	return nil
}

// AddAttachment appends an attachment to the attachment table. Identity
// is positional: its index becomes its __attach_version1.0_#NNNNNNNN
// storage index, PR_ATTACH_NUM, and PR_ATTACH_SIZE is derived from
// len(a.Data).
func (m *Message) AddAttachment(a Attachment) error {
	if strings.TrimSpace(a.Filename) == "" {
		return &msgerr.ValidationError{Field: "attachment filename", Reason: "must not be empty"}
	}
	if a.Method == 0 {
		a.Method = mapi.AttachByValue
	}
	a.MimeType = a.mimeTypeOrDefault()
	m.Attachments = append(m.Attachments, a)
	return nil
}

// SetConversationIndex sets PR_CONVERSATION_INDEX. With parent == nil a
// fresh root index is synthesized (spec §4.3); otherwise a reply index is
// derived by appending 5 bytes to parent.
func (m *Message) SetConversationIndex(parent []byte) {
	var idx []byte
	if parent == nil {
		idx = NewConversationIndexRoot(m.clock, m.rng)
	} else {
		idx = NewConversationIndexReply(parent, m.rng)
	}
	m.conversationIndex = idx
	m.SetProperty(mapi.PR_CONVERSATION_INDEX, mapi.NewBinary(idx))
}

// ConversationIndex returns the raw PR_CONVERSATION_INDEX bytes set by the
// most recent SetConversationIndex call, or nil if none was set — the
// value a caller threads into a reply's SetConversationIndex(parent) to
// extend the same conversation (spec §4.3).
func (m *Message) ConversationIndex() []byte { return m.conversationIndex }

// ApplySaveDerivations recomputes the properties that depend on the
// final recipient/attachment lists: PR_HASATTACH, PR_MESSAGE_FLAGS, and
// PR_DISPLAY_TO/CC/BCC (spec §4.3 "Derivations during save"). The MSG
// layout orchestrator calls this once, immediately before walking the
// model into the CFB builder.
func (m *Message) ApplySaveDerivations() {
	hasAttach := len(m.Attachments) > 0
	m.SetProperty(mapi.PR_HASATTACH, mapi.NewBoolean(hasAttach))

	flags := int32(MsgFlagRead)
	if hasAttach {
		flags |= MsgFlagHasAttach
	}
	m.SetProperty(mapi.PR_MESSAGE_FLAGS, mapi.NewLong(flags))

	var to, cc, bcc []string
	for _, r := range m.Recipients {
		switch r.Type {
		case mapi.RecipientTo:
			to = append(to, r.DisplayName)
		case mapi.RecipientCc:
			cc = append(cc, r.DisplayName)
		case mapi.RecipientBcc:
			bcc = append(bcc, r.DisplayName)
		}
	}
	if len(to) > 0 {
		m.SetProperty(mapi.PR_DISPLAY_TO, mapi.NewUnicode(strings.Join(to, "; ")))
	}
	if len(cc) > 0 {
		m.SetProperty(mapi.PR_DISPLAY_CC, mapi.NewUnicode(strings.Join(cc, "; ")))
	}
	if len(bcc) > 0 {
		m.SetProperty(mapi.PR_DISPLAY_BCC, mapi.NewUnicode(strings.Join(bcc, "; ")))
	}
}

// RecipientProperties returns the required per-recipient property set
// for recipient r at table index idx (spec §4.5 step 3).
func RecipientProperties(idx int, r Recipient) []mapi.Property {
	searchKey := SearchKey(r.AddrType, r.Email)
	entryID := EntryID(r.Email, r.DisplayName, r.AddrType)
	return []mapi.Property{
		mapi.NewProperty(mapi.PR_RECIPIENT_TYPE, mapi.NewLong(int32(r.Type))),
		mapi.NewProperty(mapi.PR_DISPLAY_NAME, mapi.NewUnicode(r.DisplayName)),
		mapi.NewProperty(mapi.PR_EMAIL_ADDRESS, mapi.NewUnicode(r.Email)),
		mapi.NewProperty(mapi.PR_ADDRTYPE, mapi.NewUnicode(r.AddrType)),
		mapi.NewProperty(mapi.PR_SMTP_ADDRESS, mapi.NewUnicode(r.Email)),
		mapi.NewProperty(mapi.PR_SEARCH_KEY, mapi.NewBinary(searchKey)),
		mapi.NewProperty(mapi.PR_ENTRYID, mapi.NewBinary(entryID)),
	}
}

// AttachmentProperties returns the required per-attachment property set
// for attachment a at table index idx (spec §4.5 step 4).
func AttachmentProperties(idx int, a Attachment) []mapi.Property {
	props := []mapi.Property{
		mapi.NewProperty(mapi.PR_ATTACH_METHOD, mapi.NewLong(int32(a.Method))),
		mapi.NewProperty(mapi.PR_ATTACH_SIZE, mapi.NewLong(int32(len(a.Data)))),
		mapi.NewProperty(mapi.PR_ATTACH_LONG_FILENAME, mapi.NewUnicode(a.Filename)),
		mapi.NewProperty(mapi.PR_ATTACH_FILENAME, mapi.NewUnicode(a.Filename)),
		mapi.NewProperty(mapi.PR_ATTACH_MIME_TAG, mapi.NewUnicode(a.mimeTypeOrDefault())),
		mapi.NewProperty(mapi.PR_ATTACH_DATA_BIN, mapi.NewBinary(a.Data)),
		mapi.NewProperty(mapi.PR_ATTACH_NUM, mapi.NewLong(int32(idx))),
	}
	if ext := a.Extension(); ext != "" {
		props = append(props, mapi.NewProperty(mapi.PR_ATTACH_EXTENSION, mapi.NewUnicode(ext)))
	}
	if a.ContentID != "" {
		props = append(props, mapi.NewProperty(mapi.PR_ATTACH_CONTENT_ID, mapi.NewUnicode(a.ContentID)))
	}
	if a.Inline {
		props = append(props, mapi.NewProperty(mapi.PR_RENDERING_POSITION, mapi.NewLong(-1)))
		props = append(props, mapi.NewProperty(mapi.PR_ATTACHMENT_HIDDEN, mapi.NewBoolean(true)))
	}
	return props
}
