package codec

import (
	"fmt"
	"image"

	"github.com/archivekit/pictraster/internal/stream"
)

// ToRGBA converts a decoded pixmap to interleaved 8-bit RGBA for
// display. Indexed depths go through the color table, direct depths are
// expanded in place. The pixmap itself is not modified.
func ToRGBA(pm *PixMap) ([]byte, error) {
	if pm.Pix() == nil {
		return nil, fmt.Errorf("codec: pixmap has no pixel buffer")
	}

	switch pm.Depth() {
	case 1, 2, 4, 8:
		return indexedToRGBA(pm)
	case 16:
		return rgb555ToRGBA(pm)
	case 24:
		return rgb24ToRGBA(pm)
	case 32:
		return argb32ToRGBA(pm)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, pm.Depth())
	}
}

// indexedToRGBA unpacks sub-byte pixel indexes row by row and resolves
// them through the color table.
func indexedToRGBA(pm *PixMap) ([]byte, error) {
	width, height, depth := pm.Width(), pm.Height(), pm.Depth()
	pix := pm.Pix()
	dst := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		row := pix[y*pm.RowBytes() : (y+1)*pm.RowBytes()]
		bits := stream.NewBitReader(row)

		for x := 0; x < width; x++ {
			index, err := bits.Extract(depth)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", y, err)
			}
			color, err := pm.CLUT().Lookup(int(index))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", y, err)
			}

			di := (y*width + x) * 4
			dst[di] = byte(color.R >> 8)
			dst[di+1] = byte(color.G >> 8)
			dst[di+2] = byte(color.B >> 8)
			dst[di+3] = 0xFF
		}
	}
	return dst, nil
}

// rgb555ToRGBA expands big-endian x1r5g5b5 pixels to 8-bit components.
func rgb555ToRGBA(pm *PixMap) ([]byte, error) {
	width, height := pm.Width(), pm.Height()
	pix := pm.Pix()
	dst := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		row := pix[y*pm.RowBytes():]
		for x := 0; x < width; x++ {
			pel := uint16(row[x*2])<<8 | uint16(row[x*2+1])

			r := (pel >> 10) & 0x1F
			g := (pel >> 5) & 0x1F
			b := pel & 0x1F

			di := (y*width + x) * 4
			dst[di] = byte((r << 3) | (r >> 2))
			dst[di+1] = byte((g << 3) | (g >> 2))
			dst[di+2] = byte((b << 3) | (b >> 2))
			dst[di+3] = 0xFF
		}
	}
	return dst, nil
}

func rgb24ToRGBA(pm *PixMap) ([]byte, error) {
	width, height := pm.Width(), pm.Height()
	pix := pm.Pix()
	dst := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		row := pix[y*pm.RowBytes():]
		for x := 0; x < width; x++ {
			di := (y*width + x) * 4
			dst[di] = row[x*3]
			dst[di+1] = row[x*3+1]
			dst[di+2] = row[x*3+2]
			dst[di+3] = 0xFF
		}
	}
	return dst, nil
}

func argb32ToRGBA(pm *PixMap) ([]byte, error) {
	width, height := pm.Width(), pm.Height()
	pix := pm.Pix()
	dst := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		row := pix[y*pm.RowBytes():]
		for x := 0; x < width; x++ {
			di := (y*width + x) * 4
			dst[di] = row[x*4+1]
			dst[di+1] = row[x*4+2]
			dst[di+2] = row[x*4+3]
			dst[di+3] = row[x*4] // forced opaque during decode
		}
	}
	return dst, nil
}

// ToImage wraps the RGBA conversion in a stdlib image for encoders.
func ToImage(pm *PixMap) (*image.RGBA, error) {
	rgba, err := ToRGBA(pm)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, pm.Width(), pm.Height()))
	copy(img.Pix, rgba)
	return img, nil
}
