package cfb

import "encoding/binary"

// headerSignature is the fixed CFB magic number (MS-CFB §2.2).
var headerSignature = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

const (
	minorVersion     = 0x003E
	majorVersion     = 0x0003 // version 3: 512-byte sectors
	byteOrderMark    = 0xFFFE
	sectorShift      = 0x0009 // 2^9 = 512
	miniSectorShift  = 0x0006 // 2^6 = 64
	difatArrayCount  = 109
)

// buildHeader lays out the 512-byte CFB header exactly per spec §6's
// offset table.
func buildHeader(dirStartSector uint32, fatSectors []uint32, miniFATStart uint32, numMiniFATSectors int) []byte {
	buf := make([]byte, sectorSize)

	copy(buf[0:8], headerSignature[:])
	// buf[8:24] CLSID stays zero.
	binary.LittleEndian.PutUint16(buf[24:26], minorVersion)
	binary.LittleEndian.PutUint16(buf[26:28], majorVersion)
	binary.LittleEndian.PutUint16(buf[28:30], byteOrderMark)
	binary.LittleEndian.PutUint16(buf[30:32], sectorShift)
	binary.LittleEndian.PutUint16(buf[32:34], miniSectorShift)
	// buf[34:40] reserved stays zero.
	binary.LittleEndian.PutUint32(buf[40:44], 0) // # directory sectors, 0 for v3
	binary.LittleEndian.PutUint32(buf[44:48], uint32(len(fatSectors)))
	binary.LittleEndian.PutUint32(buf[48:52], dirStartSector)
	binary.LittleEndian.PutUint32(buf[52:56], 0) // transaction signature
	binary.LittleEndian.PutUint32(buf[56:60], miniStreamCutoff)
	binary.LittleEndian.PutUint32(buf[60:64], miniFATStart)
	binary.LittleEndian.PutUint32(buf[64:68], uint32(numMiniFATSectors))
	binary.LittleEndian.PutUint32(buf[68:72], EndOfChain) // no DIFAT chain
	binary.LittleEndian.PutUint32(buf[72:76], 0)          // # DIFAT sectors

	for i := 0; i < difatArrayCount; i++ {
		off := 76 + i*4
		if i < len(fatSectors) {
			binary.LittleEndian.PutUint32(buf[off:off+4], fatSectors[i])
		} else {
			binary.LittleEndian.PutUint32(buf[off:off+4], FreeSect)
		}
	}

	return buf
}
