package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyRepeated(t *testing.T) {
	dst, consumed, err := copyRepeated(nil, []byte{0xAA, 0xBB}, 3, 2)
	require.NoError(t, err)
	require.Equal(t, 2, consumed)
	require.Equal(t, []byte{0xAA, 0xBB, 0xAA, 0xBB, 0xAA, 0xBB}, dst)
}

func TestCopyRepeatedErrors(t *testing.T) {
	_, _, err := copyRepeated(nil, nil, 3, 2)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, _, err = copyRepeated(nil, []byte{0xAA}, 3, 2)
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestCopyDiscrete(t *testing.T) {
	dst, consumed, err := copyDiscrete(nil, []byte{0x01, 0x02, 0x03, 0x04}, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 4, consumed)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, dst)
}

func TestCopyDiscreteErrors(t *testing.T) {
	_, _, err := copyDiscrete(nil, nil, 1, 1)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, _, err = copyDiscrete(nil, []byte{0x01, 0x02, 0x03}, 2, 2)
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecompressPackBits(t *testing.T) {
	// Tag 2: literal run of 3 bytes "ABC". Tag -1: repeat 0x00 twice.
	src := []byte{0x02, 0x41, 0x42, 0x43, 0xFF, 0x00}

	dst, err := DecompressPackBits(src, 1, 5, true)
	require.NoError(t, err)
	require.Equal(t, []byte("ABC\x00\x00"), dst)
}

func TestDecompressPackBitsRepeatLength(t *testing.T) {
	// A repeat tag of -n yields n+1 copies: -2 gives three.
	dst, err := DecompressPackBits([]byte{0xFE, 0x00}, 1, 3, true)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00, 0x00}, dst)
}

func TestDecompressPackBitsSizeMismatch(t *testing.T) {
	src := []byte{0x02, 0x41, 0x42, 0x43, 0xFF, 0x00}

	_, err := DecompressPackBits(src, 1, 6, true)
	require.ErrorIs(t, err, ErrSizeMismatch)

	// Without size checking the same stream decodes fine.
	dst, err := DecompressPackBits(src, 1, 6, false)
	require.NoError(t, err)
	require.Len(t, dst, 5)
}

func TestDecompressPackBitsTrailingTag(t *testing.T) {
	// A tag byte with no room for the run that must follow.
	_, err := DecompressPackBits([]byte{0x02, 0x41, 0x42, 0x43, 0xFE}, 1, 0, false)
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecompressPackBitsWordRuns(t *testing.T) {
	// 16-bit pixels: one repeated word, one literal word.
	src := []byte{0xFF, 0x12, 0x34, 0x00, 0x56, 0x78}

	dst, err := DecompressPackBits(src, 2, 6, true)
	require.NoError(t, err)
	require.Equal(t, []byte{0x12, 0x34, 0x12, 0x34, 0x56, 0x78}, dst)
}

func TestDecompressPackBitsMaxRepeat(t *testing.T) {
	// Tag -128 is the longest repeat run: 129 copies.
	dst, err := DecompressPackBits([]byte{0x80, 0x7F}, 1, 129, true)
	require.NoError(t, err)
	require.Len(t, dst, 129)
	require.Equal(t, byte(0x7F), dst[0])
	require.Equal(t, byte(0x7F), dst[128])
}

func TestDecompressPackBitsTarga(t *testing.T) {
	// High bit set: repeat run of 3. High bit clear: literal run of 2.
	src := []byte{0x82, 0xCC, 0x01, 0x11, 0x22}

	dst, err := DecompressPackBitsTarga(src, 1, 5)
	require.NoError(t, err)
	require.Equal(t, []byte{0xCC, 0xCC, 0xCC, 0x11, 0x22}, dst)
}

func TestDecompressPackBitsTargaEarlyStop(t *testing.T) {
	// Output reaches maxSize before the input ends; the remainder of
	// the stream is left unread rather than failing a size check.
	src := []byte{0x83, 0xCC, 0x00, 0x11}

	dst, err := DecompressPackBitsTarga(src, 1, 4)
	require.NoError(t, err)
	require.Equal(t, []byte{0xCC, 0xCC, 0xCC, 0xCC}, dst)
}

func TestDecompressPackBitsTargaTruncated(t *testing.T) {
	_, err := DecompressPackBitsTarga([]byte{0x82}, 1, 10)
	require.ErrorIs(t, err, ErrTruncatedInput)
}
