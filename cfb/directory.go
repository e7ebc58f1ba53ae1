// Package cfb implements a from-scratch Compound File Binary (MS-CFB)
// writer: sector allocation, FAT and mini-FAT chains, the directory tree,
// and header construction.
//
// Grounded on pymsgkit/cfb.go's CFBWriter/DirectoryEntry (original_source)
// for the overall shape, and on other_examples' richardlehane/mscfb
// directory.go (read-side field names) and TalentFormula/msdoc ole2-writer.go
// (a Go CFB writer) for idiomatic Go structure. Two bugs present in the
// Python original are deliberately not reproduced here: its DirectoryEntry
// byte layout silently overflows past 128 bytes, and its FAT-sector count
// is computed with a single non-iterative division instead of the fixed
// point spec.md requires (see Builder.WriteTo).
package cfb

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/yuphing-ong/outlook-msg-writer/msgerr"
)

// Sector-chain sentinels (MS-CFB §2.1).
const (
	FreeSect   uint32 = 0xFFFFFFFF
	EndOfChain uint32 = 0xFFFFFFFE
	FatSect    uint32 = 0xFFFFFFFD
	DifSect    uint32 = 0xFFFFFFFC
	MaxRegSect uint32 = 0xFFFFFFFA

	// NoStream marks an absent sibling/child link in a directory entry.
	NoStream uint32 = 0xFFFFFFFF
)

// EntryType is the directory entry's object type byte.
type EntryType uint8

const (
	EntryEmpty   EntryType = 0
	EntryStorage EntryType = 1
	EntryStream  EntryType = 2
	EntryRoot    EntryType = 5
)

// Color is the red-black tree color byte. The builder colors every entry
// Black and lays siblings out as a degenerate right-leaning chain (see
// Builder.addChild) rather than building a conformant red-black tree;
// Outlook and common readers accept this (spec §4.4, Design Notes).
type Color uint8

const (
	ColorRed   Color = 0
	ColorBlack Color = 1
)

const directoryEntrySize = 128
const maxNameUnits = 31 // UTF-16 code units, excluding the NUL terminator

// DirectoryEntry is the 128-byte on-disk record for one storage or stream.
type DirectoryEntry struct {
	Name           string
	Type           EntryType
	Color          Color
	LeftSibling    uint32
	RightSibling   uint32
	Child          uint32
	CLSID          [16]byte
	StateBits      uint32
	CreationTime   uint64
	ModifiedTime   uint64
	StartingSector uint32
	StreamSize     uint64
}

func newDirectoryEntry(name string, typ EntryType) *DirectoryEntry {
	return &DirectoryEntry{
		Name:         truncateName(name),
		Type:         typ,
		Color:        ColorBlack,
		LeftSibling:  NoStream,
		RightSibling: NoStream,
		Child:        NoStream,
	}
}

// truncateName clips name to the 31-UTF-16-code-unit limit the directory
// entry's 64-byte name field can hold alongside its NUL terminator.
func truncateName(name string) string {
	units := utf16.Encode([]rune(name))
	if len(units) <= maxNameUnits {
		return name
	}
	return string(utf16.Decode(units[:maxNameUnits]))
}

// Bytes serializes the entry to exactly 128 bytes per the field layout in
// spec §3/§6.
func (e *DirectoryEntry) Bytes() ([]byte, error) {
	nameUnits := utf16.Encode([]rune(e.Name))
	if len(nameUnits) > maxNameUnits {
		return nil, &msgerr.InternalInvariantViolation{Invariant: "directory entry name exceeds 31 UTF-16 code units after truncation"}
	}

	buf := make([]byte, directoryEntrySize)

	for i, u := range nameUnits {
		binary.LittleEndian.PutUint16(buf[i*2:], u)
	}
	nameLen := uint16(0)
	if len(nameUnits) > 0 {
		nameLen = uint16((len(nameUnits) + 1) * 2) // include NUL terminator
	}
	binary.LittleEndian.PutUint16(buf[64:66], nameLen)

	buf[66] = byte(e.Type)
	buf[67] = byte(e.Color)
	binary.LittleEndian.PutUint32(buf[68:72], e.LeftSibling)
	binary.LittleEndian.PutUint32(buf[72:76], e.RightSibling)
	binary.LittleEndian.PutUint32(buf[76:80], e.Child)
	copy(buf[80:96], e.CLSID[:])
	binary.LittleEndian.PutUint32(buf[96:100], e.StateBits)
	binary.LittleEndian.PutUint64(buf[100:108], e.CreationTime)
	binary.LittleEndian.PutUint64(buf[108:116], e.ModifiedTime)
	binary.LittleEndian.PutUint32(buf[116:120], e.StartingSector)
	binary.LittleEndian.PutUint64(buf[120:128], e.StreamSize)

	if len(buf) != directoryEntrySize {
		return nil, &msgerr.InternalInvariantViolation{Invariant: "directory entry did not serialize to 128 bytes"}
	}
	return buf, nil
}
