// Package codec implements the run-length pixel codecs used by QuickDraw
// PICT raster payloads: the PackBits byte/word decompressors, the
// Animation delta-frame decoder, and the shared pixmap metadata model
// they populate for the presentation layer.
package codec

import (
	"fmt"

	"github.com/archivekit/pictraster/internal/geom"
)

// RGB is a color table entry with 16-bit components as stored in PICT
// color tables.
type RGB struct {
	R, G, B uint16
}

// ColorTable is the palette for indexed depths (8 bits per pixel and
// below).
type ColorTable struct {
	ID     int
	Colors []RGB
}

// Lookup resolves a pixel index to its palette color.
func (ct *ColorTable) Lookup(index int) (RGB, error) {
	if ct == nil || index < 0 || index >= len(ct.Colors) {
		return RGB{}, fmt.Errorf("codec: palette index %d out of range", index)
	}
	return ct.Colors[index], nil
}

// depthLayout maps a pixel depth to its component layout and the byte
// stride one Animation opcode operates on.
type depthLayout struct {
	cmpCount  int
	cmpSize   int
	runStride int
}

// Animation run strides follow the historical opcode table. The 1-bit
// entry is known to produce wrong output for some frames; no reference
// captures exist to validate an alternative, so the table stands as
// documented.
var depthLayouts = map[int]depthLayout{
	1:  {cmpCount: 1, cmpSize: 1, runStride: 2},
	2:  {cmpCount: 1, cmpSize: 1, runStride: 4},
	4:  {cmpCount: 1, cmpSize: 1, runStride: 4},
	8:  {cmpCount: 1, cmpSize: 1, runStride: 4},
	16: {cmpCount: 3, cmpSize: 2, runStride: 2},
	24: {cmpCount: 3, cmpSize: 1, runStride: 3},
	32: {cmpCount: 4, cmpSize: 1, runStride: 4},
}

// PixMap is the metadata contract every raster codec populates and the
// presentation layer consumes. Dimensions, depth and color table are
// fixed at construction; the pixel buffer is filled exactly once by a
// decode operation and read-only afterwards.
type PixMap struct {
	bounds   geom.Rect
	depth    int
	rowBytes int
	layout   depthLayout
	clut     *ColorTable

	pix []byte
}

// NewPixMap validates the declared metadata and returns an empty pixmap.
// A color table is required for indexed depths (8 and below) and
// rejected for direct-color depths.
func NewPixMap(bounds geom.Rect, depth int, clut *ColorTable) (*PixMap, error) {
	dim := bounds.Dimensions()
	width, height := dim.DH.Round(), dim.DV.Round()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("codec: invalid dimensions %dx%d", width, height)
	}

	layout, ok := depthLayouts[depth]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}

	if depth <= 8 && clut == nil {
		return nil, fmt.Errorf("codec: depth %d requires a color table", depth)
	}
	if depth > 8 && clut != nil {
		return nil, fmt.Errorf("codec: depth %d takes no color table", depth)
	}

	return &PixMap{
		bounds:   bounds,
		depth:    depth,
		rowBytes: (width*depth + 7) / 8,
		layout:   layout,
		clut:     clut,
	}, nil
}

// Bounds returns the image bounding rectangle.
func (pm *PixMap) Bounds() geom.Rect { return pm.bounds }

// Dimensions returns the image extent.
func (pm *PixMap) Dimensions() geom.Delta { return pm.bounds.Dimensions() }

// Width returns the image width in pixels.
func (pm *PixMap) Width() int { return pm.bounds.Width() }

// Height returns the image height in pixels.
func (pm *PixMap) Height() int { return pm.bounds.Height() }

// Depth returns the bits per pixel.
func (pm *PixMap) Depth() int { return pm.depth }

// RowBytes returns the bytes per scan row.
func (pm *PixMap) RowBytes() int { return pm.rowBytes }

// CmpCount returns the number of color components per pixel.
func (pm *PixMap) CmpCount() int { return pm.layout.cmpCount }

// CmpSize returns the bytes per color component after unpacking.
func (pm *PixMap) CmpSize() int { return pm.layout.cmpSize }

// CLUT returns the color table, nil for direct-color depths.
func (pm *PixMap) CLUT() *ColorTable { return pm.clut }

// Pix returns the decoded pixel buffer, nil before a successful decode.
func (pm *PixMap) Pix() []byte { return pm.pix }

// setPix installs the decoded buffer. The buffer must hold at least one
// full row per image row; a second install is a programming error.
func (pm *PixMap) setPix(pix []byte) error {
	if pm.pix != nil {
		return fmt.Errorf("codec: pixel buffer already set")
	}
	if len(pix) < pm.rowBytes*pm.Height() {
		return fmt.Errorf("%w: buffer %d bytes, need %d", ErrSizeMismatch, len(pix), pm.rowBytes*pm.Height())
	}
	pm.pix = pix
	return nil
}
