package codec

import (
	"fmt"

	"github.com/archivekit/pictraster/internal/geom"
	"github.com/archivekit/pictraster/internal/stream"
)

// Codec tags as they appear in the surrounding document. Unlisted tags
// are treated as motion video and delegated to an external session.
const (
	TagAnimation = "rle "
	TagPackBits  = "pack"
	TagTarga     = "tga "
)

// Options carries the metadata the document parser declares for one
// raster payload.
type Options struct {
	Tag   string
	Dim   geom.Delta
	Depth int
	CLUT  *ColorTable

	// Video is the external decode session for motion-video tags.
	// Leaving it nil makes such payloads fail with ErrUnknownCodec.
	Video VideoDecoder
}

// Decode decompresses one raster payload into a freshly constructed
// pixmap, selecting the codec by tag. On error no pixmap is returned;
// a partially filled buffer is never exposed.
func Decode(payload []byte, opts Options) (*PixMap, error) {
	bounds := geom.RectFromDelta(geom.Point{}, opts.Dim)

	switch opts.Tag {
	case TagAnimation:
		pm, err := NewPixMap(bounds, opts.Depth, opts.CLUT)
		if err != nil {
			return nil, err
		}
		if err := DecodeAnimation(stream.NewReader(payload), pm); err != nil {
			return nil, err
		}
		return pm, nil

	case TagPackBits:
		return decodePackBitsImage(payload, opts, false)

	case TagTarga:
		return decodePackBitsImage(payload, opts, true)

	default:
		if opts.Video == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, opts.Tag)
		}
		return decodeVideo(opts.Video, opts.Tag, payload, opts.Dim)
	}
}

// decodePackBitsImage runs one of the PackBits flavors over a whole
// image. The generic flavor demands the payload decompress to exactly
// rowBytes per row; the Targa flavor stops at that size and zero-fills
// whatever a short input leaves unwritten.
func decodePackBitsImage(payload []byte, opts Options, targa bool) (*PixMap, error) {
	pm, err := NewPixMap(geom.RectFromDelta(geom.Point{}, opts.Dim), opts.Depth, opts.CLUT)
	if err != nil {
		return nil, err
	}

	byteNum := 1
	if opts.Depth == 16 {
		byteNum = 2
	}
	size := pm.RowBytes() * pm.Height()

	var pix []byte
	if targa {
		pix, err = DecompressPackBitsTarga(payload, byteNum, size)
		if err == nil && len(pix) < size {
			pix = append(pix, make([]byte, size-len(pix))...)
		}
	} else {
		pix, err = DecompressPackBits(payload, byteNum, size, true)
	}
	if err != nil {
		return nil, err
	}

	if err := pm.setPix(pix); err != nil {
		return nil, err
	}
	return pm, nil
}
