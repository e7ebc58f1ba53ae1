package mapi

import (
	"encoding/binary"
	"fmt"
)

// Property pairs a tag with a typed value. (tag, type) identifies a
// storable property; the map key used by callers is the tag alone (a
// later write with a different type overwrites, per the spec's Message
// semantics).
//
// Grounded on pymsgkit/properties.go's Property class (original_source),
// generalized to the Value tagged union instead of Python's
// dynamically-typed value field.
type Property struct {
	Tag   Tag
	Value Value
}

func NewProperty(tag Tag, v Value) Property {
	return Property{Tag: tag, Value: v}
}

// StreamName returns "__substg1.0_TTTTKKKK" where TTTT is the tag and KKKK
// is the type, both uppercase hex, zero-padded to 4 digits.
func (p Property) StreamName() string {
	return fmt.Sprintf("__substg1.0_%04X%04X", uint16(p.Tag), uint16(p.Value.Type()))
}

// IsFixed reports whether this property's value is fixed-length.
func (p Property) IsFixed() bool { return p.Value.Type().IsFixed() }

// FixedEntry returns the 16-byte fixed-entry record for the
// __properties_version1.0 stream: (type<<16)|tag (4 bytes), flags=0
// (4 bytes), then an 8-byte value slot. For fixed types the slot holds
// the zero-padded encoded value; for variable types it holds the encoded
// payload's byte length as an unsigned 64-bit integer.
func (p Property) FixedEntry() ([]byte, error) {
	encoded, err := p.Value.Encode(p.Tag)
	if err != nil {
		return nil, err
	}

	entry := make([]byte, 16)
	combined := (uint32(p.Value.Type()) << 16) | uint32(uint16(p.Tag))
	binary.LittleEndian.PutUint32(entry[0:4], combined)
	// entry[4:8] flags left zero.

	if p.IsFixed() {
		copy(entry[8:16], encoded) // encoded is always <= 8 bytes for fixed types
	} else {
		binary.LittleEndian.PutUint64(entry[8:16], uint64(len(encoded)))
	}
	return entry, nil
}

// VariableStream returns the variable-length property's stream name and
// its encoded payload. It must only be called for non-fixed properties.
func (p Property) VariableStream() (name string, data []byte, err error) {
	encoded, err := p.Value.Encode(p.Tag)
	if err != nil {
		return "", nil, err
	}
	return p.StreamName(), encoded, nil
}
