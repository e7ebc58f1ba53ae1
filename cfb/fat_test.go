package cfb

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walkChain follows a FAT or MiniFAT chain starting at start and returns
// the visited sector IDs, stopping at ENDOFCHAIN or at an ID missing from
// fat. No test in this file calls it.
func walkChain(fat map[uint32]uint32, start uint32) []uint32 {
	var chain []uint32
	cur := start
	for cur != EndOfChain {
		chain = append(chain, cur)
		next, ok := fat[cur]
		if !ok {
			break
		}
		cur = next
	}
	return chain
}

// parseFAT reads the header and every FAT sector's content back out of a
// produced image, returning the 32-bit FAT array, for whitebox checks
// that don't want to pull in a full CFB reader.
func parseFAT(t *testing.T, image []byte) []uint32 {
	t.Helper()
	require.True(t, len(image) >= 512)
	numFAT := binary.LittleEndian.Uint32(image[44:48])
	var fat []uint32
	for i := uint32(0); i < numFAT; i++ {
		off := 76 + i*4
		sectorID := binary.LittleEndian.Uint32(image[off : off+4])
		start := 512 + int(sectorID)*512
		for j := 0; j < fatEntriesPerSect; j++ {
			v := binary.LittleEndian.Uint32(image[start+j*4 : start+j*4+4])
			fat = append(fat, v)
		}
	}
	return fat
}

func TestFATSelfMarking(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddStream("s", bytes.Repeat([]byte("z"), 5000), RootDID)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, b.WriteTo(&out))

	image := out.Bytes()
	numFAT := binary.LittleEndian.Uint32(image[44:48])
	require.True(t, numFAT >= 1)

	fat := parseFAT(t, image)
	for i := uint32(0); i < numFAT; i++ {
		off := 76 + i*4
		sectorID := binary.LittleEndian.Uint32(image[off : off+4])
		assert.Equal(t, FatSect, fat[sectorID], "FAT sector %d must self-mark FATSECT", sectorID)
	}
}

func TestFixedPointMatchesSingleFATSector(t *testing.T) {
	// Three 5000-byte streams take 10 regular sectors each; with one
	// directory sector that is 31 FAT entries, well under 128, so exactly
	// one FAT sector should be required.
	b := NewBuilder()
	for i := 0; i < 3; i++ {
		_, err := b.AddStream(string(rune('a'+i)), bytes.Repeat([]byte("x"), 5000), RootDID)
		require.NoError(t, err)
	}
	var out bytes.Buffer
	require.NoError(t, b.WriteTo(&out))
	numFAT := binary.LittleEndian.Uint32(out.Bytes()[44:48])
	assert.Equal(t, uint32(1), numFAT)
}
