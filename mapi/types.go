// Package mapi implements the MAPI property value codec and property
// record layout used by the MSG writer: typed values, fixed-vs-variable
// classification, stream naming, and the PidTag* registry.
//
// Grounded on pymsgkit/types.go and pymsgkit/properties.py (original_source),
// generalized from Python's dynamically-typed Property into a Go tagged
// union (Value).
package mapi

// PropertyType is the MAPI property type enumeration (PT_*).
type PropertyType uint16

const (
	PT_UNSPECIFIED PropertyType = 0x0000
	PT_NULL        PropertyType = 0x0001
	PT_SHORT       PropertyType = 0x0002
	PT_LONG        PropertyType = 0x0003
	PT_FLOAT       PropertyType = 0x0004
	PT_DOUBLE      PropertyType = 0x0005
	PT_CURRENCY    PropertyType = 0x0006
	PT_APPTIME     PropertyType = 0x0007
	PT_ERROR       PropertyType = 0x000A
	PT_BOOLEAN     PropertyType = 0x000B
	PT_OBJECT      PropertyType = 0x000D
	PT_LONGLONG    PropertyType = 0x0014
	PT_STRING8     PropertyType = 0x001E
	PT_UNICODE     PropertyType = 0x001F
	PT_SYSTIME     PropertyType = 0x0040
	PT_CLSID       PropertyType = 0x0048
	PT_BINARY      PropertyType = 0x0102

	// Multi-value variants, recognized but unused by the core encoder.
	PT_MV_SHORT   PropertyType = 0x1002
	PT_MV_LONG    PropertyType = 0x1003
	PT_MV_UNICODE PropertyType = 0x101F
)

// IsFixed reports whether values of this type are stored inline in the
// 8-byte value slot of a fixed-entry record (§3/§4.2 of the spec).
func (t PropertyType) IsFixed() bool {
	switch t {
	case PT_SHORT, PT_LONG, PT_FLOAT, PT_DOUBLE, PT_BOOLEAN, PT_LONGLONG, PT_SYSTIME, PT_ERROR:
		return true
	default:
		return false
	}
}

// RecipientType enumerates the recipient table's PR_RECIPIENT_TYPE values.
type RecipientType int32

const (
	RecipientTo  RecipientType = 1
	RecipientCc  RecipientType = 2
	RecipientBcc RecipientType = 3
)

// Valid reports whether t is one of the three recognized recipient types.
func (t RecipientType) Valid() bool {
	return t == RecipientTo || t == RecipientCc || t == RecipientBcc
}

// AttachMethod enumerates PR_ATTACH_METHOD values. The core only ever
// produces ByValue, but the full enumeration is recognized.
type AttachMethod int32

const (
	AttachNone         AttachMethod = 0x0000
	AttachByValue      AttachMethod = 0x0001
	AttachByReference  AttachMethod = 0x0002
	AttachByRefResolve AttachMethod = 0x0003
	AttachByRefOnly    AttachMethod = 0x0004
	AttachEmbeddedMsg  AttachMethod = 0x0005
	AttachOLE          AttachMethod = 0x0006
)
