package codec

import (
	"errors"
	"fmt"

	"github.com/archivekit/pictraster/internal/stream"
)

// Animation header flag: the frame encodes only a subset of rows,
// starting at an explicit row index.
const animPartialRows = 0x0008

// animState is the mutable decode state threaded through the opcode
// loop: the (x, y) write cursor in pixel columns/rows, the target
// buffer, and the per-depth opcode stride.
type animState struct {
	pm     *PixMap
	pix    []byte
	x, y   int
	stride int
}

// DecodeAnimation decodes an Animation delta/key frame into pm. The
// pixel buffer is allocated with one extra row of slack to tolerate
// trailing overshoot from the last write, and installed in pm only on
// success; a failed decode leaves pm empty.
func DecodeAnimation(r *stream.Reader, pm *PixMap) error {
	// Legacy frame-size field, not used by this decoder.
	if _, err := r.ReadUint32(); err != nil {
		return fmt.Errorf("%w: frame size", ErrTruncatedInput)
	}

	flags, err := r.ReadUint16()
	if err != nil {
		return fmt.Errorf("%w: header flags", ErrTruncatedInput)
	}

	startRow := 0
	if flags&animPartialRows != 0 {
		row, err := r.ReadUint16()
		if err != nil {
			return fmt.Errorf("%w: start row", ErrTruncatedInput)
		}
		if err := r.Skip(6); err != nil {
			return fmt.Errorf("%w: reserved header bytes", ErrTruncatedInput)
		}
		startRow = int(row)
	}

	layout, ok := depthLayouts[pm.Depth()]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, pm.Depth())
	}

	st := &animState{
		pm:     pm,
		pix:    make([]byte, pm.RowBytes()*(pm.Height()+1)),
		y:      startRow,
		stride: layout.runStride,
	}

	data, err := r.ReadSlice(r.Remaining())
	if err != nil {
		return err
	}

	for i := 0; ; {
		if i >= len(data) {
			return fmt.Errorf("%w: row skip byte", ErrTruncatedInput)
		}
		skip := data[i]
		i++
		if skip == 0 {
			break
		}
		st.x += int(skip) - 1

		consumed, done, err := decodeAnimationOps(st, data[i:])
		if err != nil {
			return err
		}
		i += consumed
		if done {
			break
		}
	}

	return pm.setPix(st.pix)
}

// decodeAnimationOps parses one run of opcodes from data. It returns
// the number of bytes consumed and whether decoding of the whole frame
// should stop. A truncated run is reported as done, not as an error:
// short trailing frames are valid in this format.
func decodeAnimationOps(st *animState, data []byte) (int, bool, error) {
	var (
		pattern []byte
		n       int
		err     error
	)

	i := 0
	for i < len(data) {
		code := int8(data[i])
		i++

		switch {
		case code == 0:
			return i, false, nil

		case code == -1:
			st.x = 0
			st.y++
			return i, false, nil

		case code > 0:
			if len(data)-i < st.stride+1 {
				return i, true, nil
			}
			pattern, n, err = copyDiscrete(nil, data[i:], int(code), st.stride)

		case code < -1:
			if len(data)-i < st.stride+1 {
				return i, true, nil
			}
			pattern, n, err = copyRepeated(nil, data[i:], -int(code), st.stride)

		default:
			return i, false, fmt.Errorf("%w: %#02x", ErrUnknownOpcode, byte(code))
		}

		if err != nil {
			if errors.Is(err, ErrTruncatedInput) || errors.Is(err, ErrEmptyInput) {
				return i, true, nil
			}
			return i, false, err
		}
		i += n

		if err := writeStride(st, pattern); err != nil {
			return i, false, err
		}
		st.x += len(pattern) * 8 / st.pm.Depth()
	}

	// Input exhausted without a terminator.
	return i, true, nil
}

// writeStride stores one decoded pattern at the current cursor. For
// 32-bit pixels the alpha byte of each pixel is forced to opaque: the
// source format stores nothing usable there. This is the single
// deliberate deviation from verbatim copy.
func writeStride(st *animState, pattern []byte) error {
	if st.x >= st.pm.Width() {
		return fmt.Errorf("%w: x=%d width=%d", ErrInvalidCoordinate, st.x, st.pm.Width())
	}

	offset := st.y*st.pm.RowBytes() + st.x*st.pm.Depth()/8
	for i, b := range pattern {
		if offset+i >= len(st.pix) {
			return fmt.Errorf("%w: offset %d, buffer %d bytes", ErrBufferOverrun, offset+i, len(st.pix))
		}
		if st.pm.Depth() == 32 && i%4 == 0 {
			st.pix[offset+i] = 0xFF
			continue
		}
		st.pix[offset+i] = b
	}
	return nil
}
