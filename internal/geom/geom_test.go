package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedRound(t *testing.T) {
	tests := []struct {
		name string
		in   Fixed
		want int
	}{
		{"whole", FixedFromInt(5), 5},
		{"half rounds up", FixedFromInt(2) + fxHalf, 3},
		{"just below half", FixedFromInt(2) + fxHalf - 1, 2},
		{"negative whole", FixedFromInt(-3), -3},
		{"negative half rounds away", FixedFromInt(-2) - fxHalf, -3},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.in.Round())
		})
	}
}

func TestFixedArithmeticKeepsFraction(t *testing.T) {
	a := FixedFromRaw(0x0001_8000) // 1.5
	b := FixedFromRaw(0x0000_4000) // 0.25

	require.InDelta(t, 1.75, a.Add(b).Float64(), 1e-9)
	require.InDelta(t, 1.25, a.Sub(b).Float64(), 1e-9)
	require.InDelta(t, -1.5, a.Neg().Float64(), 1e-9)
}

func TestPointDeltaAlgebra(t *testing.T) {
	p := Point{V: FixedFromInt(10), H: FixedFromInt(20)}
	q := Point{V: FixedFromInt(4), H: FixedFromInt(5)}
	d := p.Sub(q)

	require.Equal(t, Delta{DV: FixedFromInt(6), DH: FixedFromInt(15)}, d)
	require.Equal(t, p, q.Add(d))

	// Delta group laws: zero identity and negation.
	require.Equal(t, d, d.Add(ZeroDelta))
	require.Equal(t, ZeroDelta, d.Add(d.Neg()))
}

func TestRectDimensions(t *testing.T) {
	topLeft := Point{V: FixedFromInt(2), H: FixedFromInt(3)}
	dim := Delta{DV: FixedFromInt(7), DH: FixedFromInt(9)}

	r := RectFromDelta(topLeft, dim)
	require.Equal(t, dim, r.Dimensions())
	require.Equal(t, 9, r.Width())
	require.Equal(t, 7, r.Height())
	require.False(t, r.Empty())

	same := RectFromCorners(topLeft, topLeft.Add(dim))
	require.Equal(t, r, same)

	require.True(t, RectFromCorners(topLeft, topLeft).Empty())
}
