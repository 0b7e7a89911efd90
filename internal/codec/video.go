package codec

import (
	"fmt"

	"github.com/archivekit/pictraster/internal/geom"
)

// FormatDescriptor identifies a coded video payload to an external
// decode session: the 4-character codec tag and the frame dimensions.
type FormatDescriptor struct {
	Tag    string
	Width  int
	Height int
}

// CodedSample wraps one frame's raw payload with its format descriptor.
type CodedSample struct {
	Format FormatDescriptor
	Data   []byte
}

// VideoDecoder is the platform video codec service used for
// motion-video payloads this package does not decode itself. It returns
// an interleaved 24-bit-per-pixel buffer and its row stride. A failure
// propagates as the image's decode failure; there is no retry here.
type VideoDecoder interface {
	DecodeSample(sample CodedSample) (pix []byte, rowStride int, err error)
}

// decodeVideo hands the payload to the external session and repacks the
// returned buffer into a 24-bit pixmap, dropping any per-row padding the
// session's stride carries.
func decodeVideo(dec VideoDecoder, tag string, payload []byte, dim geom.Delta) (*PixMap, error) {
	pm, err := NewPixMap(geom.RectFromDelta(geom.Point{}, dim), 24, nil)
	if err != nil {
		return nil, err
	}

	sample := CodedSample{
		Format: FormatDescriptor{Tag: tag, Width: pm.Width(), Height: pm.Height()},
		Data:   payload,
	}

	src, rowStride, err := dec.DecodeSample(sample)
	if err != nil {
		return nil, fmt.Errorf("video session %q: %w", tag, err)
	}
	if rowStride < pm.RowBytes() || len(src) < rowStride*pm.Height() {
		return nil, fmt.Errorf("%w: video session returned %d bytes, stride %d", ErrSizeMismatch, len(src), rowStride)
	}

	pix := make([]byte, pm.RowBytes()*pm.Height())
	for y := 0; y < pm.Height(); y++ {
		copy(pix[y*pm.RowBytes():(y+1)*pm.RowBytes()], src[y*rowStride:])
	}

	if err := pm.setPix(pix); err != nil {
		return nil, err
	}
	return pm, nil
}
