// Package geom provides the fixed-point coordinate types used by the
// QuickDraw raster decoders: 16.16 fixed-point numbers, points, deltas
// and rectangles.
package geom

// fracBits is the number of binary digits after the fixed point.
const fracBits = 16

const (
	fxOne  Fixed = 1 << fracBits
	fxHalf Fixed = 1 << (fracBits - 1)
)

// Fixed is a signed 16.16 fixed-point number. All PICT coordinates and
// resolutions are carried in this representation; arithmetic keeps the
// fractional part intact until an explicit Round call.
type Fixed int32

// FixedFromInt returns the fixed-point value for a whole number.
func FixedFromInt(v int16) Fixed {
	return Fixed(int32(v) << fracBits)
}

// FixedFromRaw reinterprets a raw 32-bit value from the wire as 16.16.
func FixedFromRaw(v int32) Fixed {
	return Fixed(v)
}

// Add returns f + g.
func (f Fixed) Add(g Fixed) Fixed { return f + g }

// Sub returns f - g.
func (f Fixed) Sub(g Fixed) Fixed { return f - g }

// Neg returns -f.
func (f Fixed) Neg() Fixed { return -f }

// Round returns the nearest integer, rounding half away from zero.
func (f Fixed) Round() int {
	if f < 0 {
		return -int((-f + fxHalf) >> fracBits)
	}
	return int((f + fxHalf) >> fracBits)
}

// Float64 returns the continuous value.
func (f Fixed) Float64() float64 {
	return float64(f) / float64(fxOne)
}
