package mapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamName(t *testing.T) {
	p := NewProperty(PR_SUBJECT, NewUnicode("hi"))
	assert.Equal(t, "__substg1.0_0037001F", p.StreamName())
}

func TestIsFixedClassification(t *testing.T) {
	assert.True(t, NewProperty(PR_IMPORTANCE, NewLong(1)).IsFixed())
	assert.False(t, NewProperty(PR_SUBJECT, NewUnicode("x")).IsFixed())
}

func TestFixedEntryLength(t *testing.T) {
	p := NewProperty(PR_IMPORTANCE, NewLong(1))
	entry, err := p.FixedEntry()
	require.NoError(t, err)
	assert.Len(t, entry, 16)
}

func TestFixedEntryVariableStoresLength(t *testing.T) {
	p := NewProperty(PR_SUBJECT, NewUnicode("Hi"))
	entry, err := p.FixedEntry()
	require.NoError(t, err)
	require.Len(t, entry, 16)
	// "Hi" + NUL terminator encodes to 6 bytes.
	assert.Equal(t, byte(6), entry[8])
	for _, b := range entry[9:16] {
		assert.Equal(t, byte(0), b)
	}
}
