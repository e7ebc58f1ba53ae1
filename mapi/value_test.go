package mapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFixedTypes(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want []byte
	}{
		{"short", NewShort(-1), []byte{0xFF, 0xFF}},
		{"long", NewLong(1), []byte{0x01, 0x00, 0x00, 0x00}},
		{"longlong", NewLongLong(1), []byte{0x01, 0, 0, 0, 0, 0, 0, 0}},
		{"boolean true", NewBoolean(true), []byte{0x01, 0x00}},
		{"boolean false", NewBoolean(false), []byte{0x00, 0x00}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.v.Encode(0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeSysTime(t *testing.T) {
	v := NewSysTime(time.Date(1601, 1, 1, 0, 0, 1, 0, time.UTC))
	got, err := v.Encode(PR_CREATION_TIME)
	require.NoError(t, err)
	require.Len(t, got, 8)
	// one second after the epoch is 10,000,000 ticks.
	assert.Equal(t, uint64(10_000_000), leU64(got))
}

func TestEncodeSysTimePreEpochRejected(t *testing.T) {
	v := NewSysTime(time.Date(1600, 12, 31, 0, 0, 0, 0, time.UTC))
	_, err := v.Encode(PR_CREATION_TIME)
	assert.Error(t, err)
}

func TestEncodeUnicodeEmptyString(t *testing.T) {
	got, err := NewUnicode("").Encode(PR_SUBJECT)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, got)
}

func TestEncodeUnicodeNulTerminated(t *testing.T) {
	got, err := NewUnicode("Hi").Encode(PR_SUBJECT)
	require.NoError(t, err)
	// "H" = 0x0048, "i" = 0x0069, then a 2-byte NUL terminator.
	assert.Equal(t, []byte{0x48, 0x00, 0x69, 0x00, 0x00, 0x00}, got)
}

func TestEncodeString8RejectsUnencodable(t *testing.T) {
	_, err := NewString8("héllo 日本語").Encode(PR_SENDER_NAME)
	assert.Error(t, err)
}

func TestEncodeString8NulTerminated(t *testing.T) {
	got, err := NewString8("Hi").Encode(PR_SENDER_NAME)
	require.NoError(t, err)
	assert.Equal(t, []byte{'H', 'i', 0x00}, got)
}

func TestEncodeBinaryPassthrough(t *testing.T) {
	got, err := NewBinary([]byte{1, 2, 3}).Encode(PR_ATTACH_DATA_BIN)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func leU64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
