// Package stream implements sequential big-endian readers over raster
// payload bytes: a byte-granularity reader with position tracking and a
// bit-granularity reader for sub-byte pixel depths.
package stream

import (
	"encoding/binary"
	"errors"
)

// ErrShortRead is returned when a read asks for more bytes than remain.
var ErrShortRead = errors.New("stream: input truncated")

// Reader reads big-endian integers and slices from an in-memory payload,
// tracking its position. Every read fails with ErrShortRead when the
// payload is exhausted; no partial values are returned.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a reader positioned at the start of data. The reader
// does not copy data; the caller must not mutate it during decoding.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Pos returns the current byte offset from the start of the payload.
func (r *Reader) Pos() int {
	return r.pos
}

// ReadUint8 reads one unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrShortRead
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

// ReadUint16 reads a big-endian unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, ErrShortRead
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadInt16 reads a big-endian signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrShortRead
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadFixed reads a big-endian 16.16 fixed-point value as its raw bits.
func (r *Reader) ReadFixed() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadSlice returns the next n bytes and advances past them. The slice
// aliases the underlying payload.
func (r *Reader) ReadSlice(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrShortRead
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// Skip advances the position by n bytes without reading them.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Remaining() < n {
		return ErrShortRead
	}
	r.pos += n
	return nil
}
