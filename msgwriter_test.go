package msgwriter

import (
	"bytes"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/richardlehane/mscfb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuphing-ong/outlook-msg-writer/mapi"
	"github.com/yuphing-ong/outlook-msg-writer/msgmodel"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

type seededRNG struct{}

func (seededRNG) GUID() [16]byte           { return [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16} }
func (seededRNG) RandomBytes(n int) []byte { return make([]byte, n) }

func testClock() msgmodel.Option {
	return msgmodel.WithClock(fixedClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)})
}

// S1: subject="Hello", body="Hi", sender a@x.com/"A", one TO b@x.com/"B".
func TestScenario1Basic(t *testing.T) {
	m := msgmodel.New(testClock(), msgmodel.WithRNG(seededRNG{}))
	m.SetSubject("Hello")
	m.SetBody("Hi", false)
	require.NoError(t, m.SetSender("a@x.com", "A", "SMTP"))
	require.NoError(t, m.AddRecipient(msgmodel.Recipient{Email: "b@x.com", DisplayName: "B", Type: mapi.RecipientTo, AddrType: "SMTP"}))

	var out bytes.Buffer
	require.NoError(t, Save(m, &out))

	assert.True(t, out.Len() >= 512*4) // header + at least 3 sectors

	r, err := mscfb.New(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	foundRecipient := false
	for entry, err := r.Next(); err == nil; entry, err = r.Next() {
		if len(entry.Path) > 0 && entry.Path[len(entry.Path)-1] == "__recip_version1.0_#00000000" {
			foundRecipient = true
		}
	}
	assert.True(t, foundRecipient)
}

// S2: subject="RE: Project" recovers PR_CONVERSATION_TOPIC="Project".
func TestScenario2ConversationTopic(t *testing.T) {
	m := msgmodel.New(testClock(), msgmodel.WithRNG(seededRNG{}))
	m.SetSubject("RE: Project")

	props := propsByTag(m)
	topic := props[mapi.PR_CONVERSATION_TOPIC]
	encoded, err := topic.Value.Encode(mapi.PR_CONVERSATION_TOPIC)
	require.NoError(t, err)
	assert.Equal(t, "Project", decodeUnicode(encoded))
}

// S3: attachment "t.txt" with bytes "abc", mime="text/plain".
func TestScenario3Attachment(t *testing.T) {
	m := msgmodel.New(testClock(), msgmodel.WithRNG(seededRNG{}))
	m.SetSubject("s")
	m.SetBody("b", false)
	require.NoError(t, m.AddAttachment(msgmodel.Attachment{Filename: "t.txt", Data: []byte("abc"), MimeType: "text/plain"}))
	m.ApplySaveDerivations()

	props := propsByTag(m)
	hasAttach := props[mapi.PR_HASATTACH]
	encoded, err := hasAttach.Value.Encode(mapi.PR_HASATTACH)
	require.NoError(t, err)
	assert.Equal(t, byte(1), encoded[0])

	attachProps := msgmodel.AttachmentProperties(0, m.Attachments[0])
	byTag := map[mapi.Tag]mapi.Property{}
	for _, p := range attachProps {
		byTag[p.Tag] = p
	}
	sizeEncoded, err := byTag[mapi.PR_ATTACH_SIZE].Value.Encode(mapi.PR_ATTACH_SIZE)
	require.NoError(t, err)
	assert.Equal(t, byte(3), sizeEncoded[0])

	extEncoded, err := byTag[mapi.PR_ATTACH_EXTENSION].Value.Encode(mapi.PR_ATTACH_EXTENSION)
	require.NoError(t, err)
	assert.Equal(t, ".txt", decodeUnicode(extEncoded))
}

// S4: inline attachment with content-id "logo".
func TestScenario4InlineAttachment(t *testing.T) {
	m := msgmodel.New(testClock(), msgmodel.WithRNG(seededRNG{}))
	require.NoError(t, m.AddAttachment(msgmodel.Attachment{Filename: "logo.png", Data: []byte{1, 2}, ContentID: "logo", Inline: true}))

	attachProps := msgmodel.AttachmentProperties(0, m.Attachments[0])
	byTag := map[mapi.Tag]mapi.Property{}
	for _, p := range attachProps {
		byTag[p.Tag] = p
	}
	hidden, err := byTag[mapi.PR_ATTACHMENT_HIDDEN].Value.Encode(mapi.PR_ATTACHMENT_HIDDEN)
	require.NoError(t, err)
	assert.Equal(t, byte(1), hidden[0])

	pos, err := byTag[mapi.PR_RENDERING_POSITION].Value.Encode(mapi.PR_RENDERING_POSITION)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), int32(pos[0])|int32(pos[1])<<8|int32(pos[2])<<16|int32(pos[3])<<24)

	cid, err := byTag[mapi.PR_ATTACH_CONTENT_ID].Value.Encode(mapi.PR_ATTACH_CONTENT_ID)
	require.NoError(t, err)
	assert.Equal(t, "logo", decodeUnicode(cid))
}

// S5: four recipients across TO/TO/CC/BCC.
func TestScenario5MultipleRecipients(t *testing.T) {
	m := msgmodel.New(testClock(), msgmodel.WithRNG(seededRNG{}))
	require.NoError(t, m.AddRecipient(msgmodel.Recipient{Email: "t1@x.com", DisplayName: "T1", Type: mapi.RecipientTo, AddrType: "SMTP"}))
	require.NoError(t, m.AddRecipient(msgmodel.Recipient{Email: "t2@x.com", DisplayName: "T2", Type: mapi.RecipientTo, AddrType: "SMTP"}))
	require.NoError(t, m.AddRecipient(msgmodel.Recipient{Email: "c1@x.com", DisplayName: "C1", Type: mapi.RecipientCc, AddrType: "SMTP"}))
	require.NoError(t, m.AddRecipient(msgmodel.Recipient{Email: "b1@x.com", DisplayName: "B1", Type: mapi.RecipientBcc, AddrType: "SMTP"}))
	m.ApplySaveDerivations()

	props := propsByTag(m)
	to, err := props[mapi.PR_DISPLAY_TO].Value.Encode(mapi.PR_DISPLAY_TO)
	require.NoError(t, err)
	assert.Equal(t, "T1; T2", decodeUnicode(to))

	var out bytes.Buffer
	require.NoError(t, Save(m, &out))
	r, err := mscfb.New(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	count := 0
	for entry, err := r.Next(); err == nil; entry, err = r.Next() {
		if hasRecipPrefix(entry.Name) {
			count++
		}
	}
	assert.Equal(t, 4, count)
}

func hasRecipPrefix(name string) bool {
	return len(name) >= len("__recip_version1.0_#") && name[:len("__recip_version1.0_#")] == "__recip_version1.0_#"
}

// S6: one 4096-byte stream (regular sectors), one 4095-byte stream (mini-sectors).
// This test saves both and checks only that the image stays sector-aligned;
// the two streams' starting sectors are not inspected here.
func TestScenario6MiniStreamCutoff(t *testing.T) {
	m := msgmodel.New(testClock(), msgmodel.WithRNG(seededRNG{}))
	m.SetProperty(mapi.Tag(0x5001), mapi.NewBinary(bytes.Repeat([]byte{0xAA}, 4096)))
	m.SetProperty(mapi.Tag(0x5002), mapi.NewBinary(bytes.Repeat([]byte{0xBB}, 4095)))

	var out bytes.Buffer
	require.NoError(t, Save(m, &out))
	assert.True(t, out.Len()%512 == 0)
}

func propsByTag(m *msgmodel.Message) map[mapi.Tag]mapi.Property {
	out := map[mapi.Tag]mapi.Property{}
	for _, p := range m.Properties() {
		out[p.Tag] = p
	}
	return out
}

func decodeUnicode(encoded []byte) string {
	if len(encoded) < 2 {
		return ""
	}
	units := make([]uint16, (len(encoded)-2)/2)
	for i := range units {
		units[i] = uint16(encoded[i*2]) | uint16(encoded[i*2+1])<<8
	}
	return string(utf16.Decode(units))
}
