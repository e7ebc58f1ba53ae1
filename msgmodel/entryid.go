package msgmodel

import (
	"encoding/binary"
	"strings"

	"github.com/yuphing-ong/outlook-msg-writer/mapi"
)

// SearchKey builds "ADDRTYPE:EMAIL" uppercased, NUL-terminated ASCII
// bytes for PR_SEARCH_KEY/PR_SENDER_SEARCH_KEY/PR_SENT_REPRESENTING_SEARCH_KEY.
// Grounded on pymsgkit/properties.go's create_search_key (original_source).
func SearchKey(addrType, email string) []byte {
	s := strings.ToUpper(addrType + ":" + email)
	return append([]byte(s), 0x00)
}

// EntryID builds the simplified one-off EntryID described in spec §4.3:
// a zero provider UID and version, followed by NUL-terminated ASCII
// addr-type, email, and display-name fields. Grounded on
// pymsgkit/properties.go's create_entryid (original_source); this is
// explicitly a simplified EntryID, not a full MS-OXCDATA-conformant one.
func EntryID(email, displayName, addrType string) []byte {
	var buf []byte
	flags := make([]byte, 4) // zero
	buf = append(buf, flags...)
	buf = append(buf, make([]byte, 16)...) // provider UID, zero
	version := make([]byte, 4)             // zero
	buf = append(buf, version...)
	buf = append(buf, []byte(addrType)...)
	buf = append(buf, 0x00)
	buf = append(buf, []byte(email)...)
	buf = append(buf, 0x00)
	buf = append(buf, []byte(displayName)...)
	buf = append(buf, 0x00)
	return buf
}

// NewConversationIndexRoot builds the 22-byte root form of a conversation
// index: 0x01 + the first 5 bytes of the current FILETIME + a 16-byte
// cryptographically random GUID (spec §4.3). "First 5 bytes" means the
// least-significant 5 bytes of the little-endian tick count, matching
// original_source's filetime_bytes[0:5] over a '<Q' (little-endian) pack.
func NewConversationIndexRoot(clock Clock, rng RNG) []byte {
	ticks := mapi.FiletimeTicks(clock.Now())
	ft := make([]byte, 8)
	binary.LittleEndian.PutUint64(ft, ticks)
	guid := rng.GUID()

	idx := make([]byte, 0, 22)
	idx = append(idx, 0x01)
	idx = append(idx, ft[:5]...)
	idx = append(idx, guid[:]...)
	return idx
}

// NewConversationIndexReply appends a 5-byte child block to a parent
// conversation index. Per spec §9's Open Question, conformant clients
// derive these 5 bytes from the elapsed time since the parent message;
// this implementation preserves the source's simplified behavior of
// drawing them from the RNG when no parent timestamp is recoverable, and
// flags the non-conformance here rather than silently fixing it.
func NewConversationIndexReply(parent []byte, rng RNG) []byte {
	idx := make([]byte, len(parent))
	copy(idx, parent)
	idx = append(idx, rng.RandomBytes(5)...)
	return idx
}
