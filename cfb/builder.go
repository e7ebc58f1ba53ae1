package cfb

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/yuphing-ong/outlook-msg-writer/msgerr"
)

const (
	sectorSize        = 512
	miniSectorSize    = 64
	miniStreamCutoff  = 4096
	fatEntriesPerSect = sectorSize / 4 // 128
	maxInlineFATCount = 109            // inline DIFAT capacity; no DIFAT chain is implemented
)

// RootDID is the directory ID of the always-present root storage entry.
const RootDID uint32 = 0

// Builder accumulates a tree of named storages and streams and, on
// WriteTo, allocates sectors, builds the FAT/MiniFAT/directory tree, and
// emits the complete CFB byte image.
//
// A Builder is single-use and single-threaded: AddStorage/AddStream
// populate it, then exactly one WriteTo call finalizes and serializes it
// (spec §4.4/§5).
type Builder struct {
	entries     []*DirectoryEntry
	streamData  map[uint32][]byte
	streamOrder []uint32
	childNames  map[uint32]map[string]bool
}

// NewBuilder returns a Builder with only the root storage entry (DID 0)
// present.
func NewBuilder() *Builder {
	b := &Builder{
		entries:    []*DirectoryEntry{newDirectoryEntry("Root Entry", EntryRoot)},
		streamData: map[uint32][]byte{},
		childNames: map[uint32]map[string]bool{},
	}
	return b
}

func (b *Builder) validParent(parent uint32) bool {
	return int(parent) < len(b.entries) && b.entries[parent].Type != EntryStream
}

// addChild links a newly created entry into parent's child chain as a
// degenerate right-leaning chain of black nodes: the first child becomes
// parent.Child, and subsequent children are appended via right_sibling.
// This is the documented simplification of spec §4.4 ("Red-black tree vs
// degenerate chain") — Outlook and common readers accept it, though a
// strictly conformant implementation would maintain a real red-black
// tree ordered by the UTF-16 length-then-ordinal comparator.
func (b *Builder) addChild(parent, did uint32) {
	p := b.entries[parent]
	if p.Child == NoStream {
		p.Child = did
		return
	}
	sib := p.Child
	for b.entries[sib].RightSibling != NoStream {
		sib = b.entries[sib].RightSibling
	}
	b.entries[sib].RightSibling = did
}

func (b *Builder) checkName(parent uint32, name string) error {
	if !b.validParent(parent) {
		return &msgerr.ValidationError{Field: "parent", Reason: "parent DID does not refer to a storage"}
	}
	truncated := truncateName(name)
	key := strings.ToUpper(truncated)
	seen := b.childNames[parent]
	if seen == nil {
		seen = map[string]bool{}
		b.childNames[parent] = seen
	}
	if seen[key] {
		return &msgerr.ValidationError{Field: "name", Reason: "duplicate storage/stream name '" + truncated + "' under the same parent"}
	}
	seen[key] = true
	return nil
}

// AddStorage creates a new storage (sub-directory) under parent and
// returns its DID.
func (b *Builder) AddStorage(name string, parent uint32) (uint32, error) {
	if err := b.checkName(parent, name); err != nil {
		return 0, err
	}
	entry := newDirectoryEntry(name, EntryStorage)
	did := uint32(len(b.entries))
	b.entries = append(b.entries, entry)
	b.addChild(parent, did)
	return did, nil
}

// AddStream creates a new stream under parent holding data and returns
// its DID.
func (b *Builder) AddStream(name string, data []byte, parent uint32) (uint32, error) {
	if err := b.checkName(parent, name); err != nil {
		return 0, err
	}
	entry := newDirectoryEntry(name, EntryStream)
	did := uint32(len(b.entries))
	b.entries = append(b.entries, entry)
	b.streamData[did] = data
	b.streamOrder = append(b.streamOrder, did)
	b.addChild(parent, did)
	return did, nil
}

// allocateRegular appends one FAT entry per 512-byte sector of data
// (zero-padding the final sector if needed), records each sector's
// payload in sectors, and returns the chain of assigned sector IDs.
func allocateRegular(fat *[]uint32, data []byte, sectors map[uint32][]byte) []uint32 {
	count := (len(data) + sectorSize - 1) / sectorSize
	chain := make([]uint32, count)
	for i := 0; i < count; i++ {
		id := uint32(len(*fat))
		chain[i] = id

		start := i * sectorSize
		end := start + sectorSize
		chunk := make([]byte, sectorSize)
		if end > len(data) {
			copy(chunk, data[start:])
		} else {
			copy(chunk, data[start:end])
		}
		sectors[id] = chunk

		if i < count-1 {
			*fat = append(*fat, id+1)
		} else {
			*fat = append(*fat, EndOfChain)
		}
	}
	return chain
}

// reserveRegular appends count sequential FAT entries with no backing
// payload yet, and returns the chain of assigned sector IDs. Used for the
// directory, whose serialized length is fixed by its entry count alone,
// so its sector IDs can be reserved before the entries' field values
// (starting sectors) are known, and its bytes filled in afterward.
func reserveRegular(fat *[]uint32, count int) []uint32 {
	chain := make([]uint32, count)
	for i := 0; i < count; i++ {
		id := uint32(len(*fat))
		chain[i] = id
		if i < count-1 {
			*fat = append(*fat, id+1)
		} else {
			*fat = append(*fat, EndOfChain)
		}
	}
	return chain
}

// allocateMini appends one MiniFAT entry per 64-byte mini-sector of data,
// growing miniStream with zero-padded 64-byte chunks, and returns the
// chain of assigned mini-sector IDs.
func allocateMini(miniFAT *[]uint32, miniStream *[]byte, data []byte) []uint32 {
	count := (len(data) + miniSectorSize - 1) / miniSectorSize
	chain := make([]uint32, count)
	for i := 0; i < count; i++ {
		id := uint32(len(*miniFAT))
		chain[i] = id

		start := i * miniSectorSize
		end := start + miniSectorSize
		chunk := make([]byte, miniSectorSize)
		if end > len(data) {
			copy(chunk, data[start:])
		} else {
			copy(chunk, data[start:end])
		}
		*miniStream = append(*miniStream, chunk...)

		if i < count-1 {
			*miniFAT = append(*miniFAT, id+1)
		} else {
			*miniFAT = append(*miniFAT, EndOfChain)
		}
	}
	return chain
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// WriteTo runs the finalization algorithm of spec §4.4 and writes the
// complete CFB image to w: partition streams into mini/regular, allocate
// mini-sectors then regular sectors (mini-stream container, directory,
// MiniFAT image, regular streams in insertion order), compute the FAT
// sector count by fixed-point iteration, pad the FAT, write the header,
// then emit every sector in ascending sector-ID order.
func (b *Builder) WriteTo(w io.Writer) error {
	var fat []uint32
	var miniFAT []uint32
	var miniStream []byte
	sectors := map[uint32][]byte{}

	// Step 1+2: classify streams, allocate mini-sectors for small ones.
	var regularStreamDIDs []uint32
	for _, did := range b.streamOrder {
		entry := b.entries[did]
		data := b.streamData[did]
		entry.StreamSize = uint64(len(data))
		if len(data) == 0 {
			entry.StartingSector = EndOfChain
			continue
		}
		if len(data) < miniStreamCutoff {
			chain := allocateMini(&miniFAT, &miniStream, data)
			entry.StartingSector = chain[0]
		} else {
			regularStreamDIDs = append(regularStreamDIDs, did)
		}
	}

	// Step 3a: mini-stream container, owned by the root entry.
	root := b.entries[RootDID]
	if len(miniStream) > 0 {
		chain := allocateRegular(&fat, miniStream, sectors)
		root.StartingSector = chain[0]
		root.StreamSize = uint64(len(miniStream))
	} else {
		root.StartingSector = EndOfChain
		root.StreamSize = 0
	}

	// Step 3b: reserve the directory's sector IDs now, to preserve the
	// spec §4.4 step-3 sector-ID order (directory before regular
	// streams). Its serialized length is fixed by the entry count alone
	// (every entry is exactly 128 bytes, padded to a sector boundary),
	// so the reservation doesn't need each entry's field values yet —
	// those (in particular every regular stream's StartingSector) are
	// only known once step 3d below runs. The bytes are filled in after.
	dirSectorCount := ceilDiv(len(b.entries)*directoryEntrySize, sectorSize)
	dirChain := reserveRegular(&fat, dirSectorCount)

	// Step 3c: MiniFAT image, padded with FREESECT sentinels.
	miniFATStart := EndOfChain
	numMiniFATSectors := 0
	if len(miniFAT) > 0 {
		miniFATData := serializeMiniFAT(miniFAT)
		chain := allocateRegular(&fat, miniFATData, sectors)
		miniFATStart = chain[0]
		numMiniFATSectors = len(chain)
	}

	// Step 3d: regular streams, in insertion order. This must run before
	// the directory is serialized below — it is what assigns every
	// regular stream's StartingSector.
	for _, did := range regularStreamDIDs {
		chain := allocateRegular(&fat, b.streamData[did], sectors)
		b.entries[did].StartingSector = chain[0]
	}

	// Now that every entry's StartingSector is final, serialize the
	// directory and drop its bytes into the sectors reserved in step 3b.
	dirData, err := b.serializeDirectory()
	if err != nil {
		return err
	}
	if len(dirData) != len(dirChain)*sectorSize {
		return &msgerr.InternalInvariantViolation{Invariant: "serialized directory length does not match its reserved sector count"}
	}
	for i, id := range dirChain {
		start := i * sectorSize
		sectors[id] = dirData[start : start+sectorSize]
	}

	// Step 4: FAT sector count by fixed-point iteration — the FAT must
	// describe its own sectors, so the count depends on itself.
	n := len(fat)
	fatCount := 0
	for {
		next := ceilDiv(n+fatCount, fatEntriesPerSect)
		if next == fatCount {
			break
		}
		fatCount = next
	}
	if fatCount > maxInlineFATCount {
		return &msgerr.FileTooLargeError{FATSectors: fatCount}
	}

	fatSectorIDs := make([]uint32, fatCount)
	for i := 0; i < fatCount; i++ {
		id := uint32(len(fat))
		fatSectorIDs[i] = id
		fat = append(fat, FatSect)
	}
	totalSectors := len(fat)

	// Step 5: pad the FAT's serialized content (not the real sector
	// count) to a whole number of FAT sectors with FREESECT.
	fatContent := make([]uint32, fatCount*fatEntriesPerSect)
	copy(fatContent, fat)
	for i := len(fat); i < len(fatContent); i++ {
		fatContent[i] = FreeSect
	}
	for i, id := range fatSectorIDs {
		start := i * fatEntriesPerSect
		buf := make([]byte, sectorSize)
		for j := 0; j < fatEntriesPerSect; j++ {
			binary.LittleEndian.PutUint32(buf[j*4:], fatContent[start+j])
		}
		sectors[id] = buf
	}

	// Step 6: header, then sectors in ascending order.
	header := buildHeader(dirChain[0], fatSectorIDs, miniFATStart, numMiniFATSectors)
	if _, err := w.Write(header); err != nil {
		return &msgerr.IoError{Op: "write header", Err: err}
	}

	for id := 0; id < totalSectors; id++ {
		payload, ok := sectors[uint32(id)]
		if !ok {
			return &msgerr.InternalInvariantViolation{Invariant: "missing payload for allocated sector"}
		}
		if len(payload) != sectorSize {
			return &msgerr.InternalInvariantViolation{Invariant: "sector payload is not exactly 512 bytes"}
		}
		if _, err := w.Write(payload); err != nil {
			return &msgerr.IoError{Op: "write sector", Err: err}
		}
	}
	return nil
}

func (b *Builder) serializeDirectory() ([]byte, error) {
	var out []byte
	for _, e := range b.entries {
		bs, err := e.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	pad := (sectorSize - (len(out) % sectorSize)) % sectorSize
	if pad > 0 {
		out = append(out, bytesRepeat(0xFF, pad)...)
	}
	return out, nil
}

func serializeMiniFAT(miniFAT []uint32) []byte {
	out := make([]byte, len(miniFAT)*4)
	for i, v := range miniFAT {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	pad := (sectorSize - (len(out) % sectorSize)) % sectorSize
	for i := 0; i < pad/4; i++ {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, FreeSect)
		out = append(out, buf...)
	}
	return out
}

func bytesRepeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
