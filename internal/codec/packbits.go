package codec

import "fmt"

// copyRepeated reads one pattern of byteNum bytes from the front of src
// and appends it length times to dst. It returns the grown destination
// and the number of source bytes consumed.
func copyRepeated(dst []byte, src []byte, length, byteNum int) ([]byte, int, error) {
	if len(src) == 0 {
		return dst, 0, fmt.Errorf("%w: repeat run", ErrEmptyInput)
	}
	if len(src) < byteNum {
		return dst, 0, fmt.Errorf("%w: repeat run needs %d bytes, have %d", ErrTruncatedInput, byteNum, len(src))
	}

	pattern := src[:byteNum]
	for i := 0; i < length; i++ {
		dst = append(dst, pattern...)
	}
	return dst, byteNum, nil
}

// copyDiscrete appends length consecutive patterns of byteNum bytes
// verbatim from src to dst. It returns the grown destination and the
// number of source bytes consumed.
func copyDiscrete(dst []byte, src []byte, length, byteNum int) ([]byte, int, error) {
	if len(src) == 0 {
		return dst, 0, fmt.Errorf("%w: literal run", ErrEmptyInput)
	}

	n := length * byteNum
	if len(src) < n {
		return dst, 0, fmt.Errorf("%w: literal run needs %d bytes, have %d", ErrTruncatedInput, n, len(src))
	}

	return append(dst, src[:n]...), n, nil
}

// DecompressPackBits decodes a generic PackBits stream. Each iteration
// consumes a signed tag byte: negative tags repeat the following
// byteNum-byte pattern (-tag)+1 times, non-negative tags copy tag+1
// literal patterns. The loop runs until the input is exhausted. When
// checkSize is set the decoded length must equal unpackedSize exactly.
func DecompressPackBits(src []byte, byteNum, unpackedSize int, checkSize bool) ([]byte, error) {
	var (
		dst = make([]byte, 0, unpackedSize)
		err error
		n   int
	)

	for i := 0; i < len(src); {
		tag := int8(src[i])
		i++
		if i >= len(src) {
			return nil, fmt.Errorf("%w: run starts at end of input", ErrTruncatedInput)
		}

		if tag < 0 {
			dst, n, err = copyRepeated(dst, src[i:], -int(tag)+1, byteNum)
		} else {
			dst, n, err = copyDiscrete(dst, src[i:], int(tag)+1, byteNum)
		}
		if err != nil {
			return nil, err
		}
		i += n
	}

	if checkSize && len(dst) != unpackedSize {
		return nil, fmt.Errorf("%w: got %d bytes, declared %d", ErrSizeMismatch, len(dst), unpackedSize)
	}
	return dst, nil
}

// DecompressPackBitsTarga decodes the Targa flavor of PackBits: the high
// bit of the tag selects repeat (set) vs. literal (clear), the low 7
// bits are the run length minus one, and decoding stops once maxSize
// output bytes have been produced without requiring the input to be
// fully consumed. Distinct from the generic codec by file-format
// convention; do not merge them.
func DecompressPackBitsTarga(src []byte, byteNum, maxSize int) ([]byte, error) {
	var (
		dst = make([]byte, 0, maxSize)
		err error
		n   int
	)

	for i := 0; i < len(src) && len(dst) < maxSize; {
		tag := src[i]
		i++
		if i >= len(src) {
			return nil, fmt.Errorf("%w: run starts at end of input", ErrTruncatedInput)
		}

		length := int(tag&0x7F) + 1
		if tag&0x80 != 0 {
			dst, n, err = copyRepeated(dst, src[i:], length, byteNum)
		} else {
			dst, n, err = copyDiscrete(dst, src[i:], length, byteNum)
		}
		if err != nil {
			return nil, err
		}
		i += n
	}

	return dst, nil
}
