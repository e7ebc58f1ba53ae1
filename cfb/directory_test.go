package cfb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryEntrySerializesTo128Bytes(t *testing.T) {
	e := newDirectoryEntry("Root Entry", EntryRoot)
	bs, err := e.Bytes()
	require.NoError(t, err)
	assert.Len(t, bs, 128)
}

func TestDirectoryEntryNameTruncatedAt31Units(t *testing.T) {
	long := strings.Repeat("a", 50)
	e := newDirectoryEntry(long, EntryStream)
	assert.Len(t, []rune(e.Name), 31)
}

func TestDirectoryEntryNameLengthField(t *testing.T) {
	e := newDirectoryEntry("Root Entry", EntryRoot)
	bs, err := e.Bytes()
	require.NoError(t, err)
	nameLen := uint16(bs[64]) | uint16(bs[65])<<8
	// "Root Entry" is 10 chars; +1 for NUL terminator, *2 for UTF-16 bytes.
	assert.Equal(t, uint16(22), nameLen)
}

func TestDirectoryEntryTypeAndColor(t *testing.T) {
	e := newDirectoryEntry("x", EntryStream)
	bs, err := e.Bytes()
	require.NoError(t, err)
	assert.Equal(t, byte(EntryStream), bs[66])
	assert.Equal(t, byte(ColorBlack), bs[67])
}
