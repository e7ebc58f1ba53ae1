package mapi

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/yuphing-ong/outlook-msg-writer/msgerr"
	"golang.org/x/text/encoding/charmap"
)

// filetimeEpoch is 1601-01-01T00:00:00Z, the origin of the Windows FILETIME
// tick count.
var filetimeEpoch = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

// Value is a tagged union of the value shapes a property can hold, mirroring
// the type enumeration in §3 of the spec. Each constructor takes the Go
// type that matches its PropertyType, so a mismatched (type, value) pair
// cannot be built; the constructors themselves never fail. Checks on the
// value's content (cp1252 representability for STRING8, the 1601 lower
// bound for SYSTIME) run in Encode.
type Value struct {
	typ      PropertyType
	i16      int16
	i32      int32
	i64      int64
	f32      float32
	f64      float64
	b        bool
	t        time.Time
	s        string
	bin      []byte
}

func (v Value) Type() PropertyType { return v.typ }

func NewShort(n int16) Value           { return Value{typ: PT_SHORT, i16: n} }
func NewLong(n int32) Value            { return Value{typ: PT_LONG, i32: n} }
func NewLongLong(n int64) Value        { return Value{typ: PT_LONGLONG, i64: n} }
func NewErrorCode(n uint32) Value      { return Value{typ: PT_ERROR, i64: int64(n)} }
func NewFloat(f float32) Value         { return Value{typ: PT_FLOAT, f32: f} }
func NewDouble(f float64) Value        { return Value{typ: PT_DOUBLE, f64: f} }
func NewBoolean(b bool) Value          { return Value{typ: PT_BOOLEAN, b: b} }
func NewUnicode(s string) Value        { return Value{typ: PT_UNICODE, s: s} }
func NewString8(s string) Value        { return Value{typ: PT_STRING8, s: s} }
func NewBinary(b []byte) Value         { return Value{typ: PT_BINARY, bin: b} }

// NewSysTime constructs a SYSTIME value. t is converted to UTC at encode
// time; pre-epoch (pre-1601) timestamps are rejected with a
// ValidationError when encoded.
func NewSysTime(t time.Time) Value { return Value{typ: PT_SYSTIME, t: t} }

// Encode renders the value to its canonical little-endian byte sequence
// per §4.1. tag is only used to annotate errors.
func (v Value) Encode(tag Tag) ([]byte, error) {
	switch v.typ {
	case PT_SHORT:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(v.i16))
		return buf, nil
	case PT_LONG:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v.i32))
		return buf, nil
	case PT_LONGLONG:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(v.i64))
		return buf, nil
	case PT_ERROR:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v.i64))
		return buf, nil
	case PT_FLOAT:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(v.f32))
		return buf, nil
	case PT_DOUBLE:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, math.Float64bits(v.f64))
		return buf, nil
	case PT_BOOLEAN:
		buf := make([]byte, 2)
		if v.b {
			binary.LittleEndian.PutUint16(buf, 1)
		}
		return buf, nil
	case PT_SYSTIME:
		return encodeFiletime(tag, v.t)
	case PT_UNICODE:
		return encodeUTF16NulTerminated(v.s), nil
	case PT_STRING8:
		return encodeCP1252NulTerminated(tag, v.s)
	case PT_BINARY:
		return v.bin, nil
	default:
		return nil, &msgerr.EncodingError{Tag: uint16(tag), Type: uint16(v.typ), Reason: "unsupported property type"}
	}
}

func encodeFiletime(tag Tag, t time.Time) ([]byte, error) {
	utc := t.UTC()
	if utc.Before(filetimeEpoch) {
		return nil, &msgerr.ValidationError{Field: fmt.Sprintf("tag 0x%04X timestamp", tag), Reason: "timestamp precedes the FILETIME epoch (1601-01-01T00:00:00Z)"}
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, FiletimeTicks(utc))
	return buf, nil
}

// FiletimeTicks returns the raw 100-ns tick count for t, used by
// conversation-index synthesis which needs the leading bytes of the
// encoding without going through a full Property.
func FiletimeTicks(t time.Time) uint64 {
	// Whole seconds are counted separately: a time.Duration cannot span
	// the more than 292 years between 1601 and today.
	utc := t.UTC()
	secs := utc.Unix() - filetimeEpoch.Unix()
	return uint64(secs)*10_000_000 + uint64(utc.Nanosecond()/100) // 100ns per tick
}

func encodeUTF16NulTerminated(s string) []byte {
	units := utf16Encode(s)
	buf := make([]byte, len(units)*2+2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	return buf
}

func encodeCP1252NulTerminated(tag Tag, s string) ([]byte, error) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, &msgerr.EncodingError{Tag: uint16(tag), Type: uint16(PT_STRING8), Reason: fmt.Sprintf("string is not representable in cp1252: %v", err)}
	}
	return append(encoded, 0x00), nil
}
