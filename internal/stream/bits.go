package stream

// BitReader extracts arbitrary-width unsigned bit fields from a byte
// sequence, most-significant-bit first, buffering across byte boundaries.
// It is used to unpack indexed pixels at depths below 8.
type BitReader struct {
	data []byte
	pos  int

	acc  uint32 // pending bits, right-aligned
	bits int    // number of valid bits in acc
}

// NewBitReader returns a bit reader positioned at the start of data.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// Bits returns the number of buffered bits not yet extracted.
func (b *BitReader) Bits() int {
	return b.bits
}

// Extract returns an unsigned integer built from the next count bits.
// It fails with ErrShortRead if the source runs out before count bits
// are available. count must be in 1..24; callers never exceed a pixel
// depth of 8 plus buffered slack.
func (b *BitReader) Extract(count int) (uint32, error) {
	for b.bits < count {
		if b.pos >= len(b.data) {
			return 0, ErrShortRead
		}
		b.acc = b.acc<<8 | uint32(b.data[b.pos])
		b.pos++
		b.bits += 8
	}
	b.bits -= count
	v := b.acc >> uint(b.bits)
	b.acc &= (1 << uint(b.bits)) - 1
	return v, nil
}

// Skip advances the byte position without touching the bit accumulator.
// It is used to step over header padding before bit extraction starts.
func (b *BitReader) Skip(count int) error {
	if count < 0 || b.pos+count > len(b.data) {
		return ErrShortRead
	}
	b.pos += count
	return nil
}
