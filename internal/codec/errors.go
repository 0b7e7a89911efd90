package codec

import "errors"

// Codec errors are fatal to the decode of the one image that raised
// them; a corrupted run-length stream cannot be resynchronized.
var (
	ErrUnsupportedDepth  = errors.New("codec: unsupported pixel depth")
	ErrUnknownOpcode     = errors.New("codec: unknown run-length opcode")
	ErrInvalidCoordinate = errors.New("codec: write cursor outside image bounds")
	ErrBufferOverrun     = errors.New("codec: write exceeds pixel buffer")
	ErrTruncatedInput    = errors.New("codec: input truncated")
	ErrEmptyInput        = errors.New("codec: empty input")
	ErrSizeMismatch      = errors.New("codec: decompressed size mismatch")
	ErrUnknownCodec      = errors.New("codec: unknown codec tag")
)
