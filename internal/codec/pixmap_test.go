package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/archivekit/pictraster/internal/geom"
)

func TestNewPixMapRowBytes(t *testing.T) {
	tests := []struct {
		depth    int
		rowBytes int
	}{
		{1, 2},
		{2, 3},
		{4, 5},
		{8, 10},
		{16, 20},
		{24, 30},
		{32, 40},
	}

	for _, tt := range tests {
		var clut *ColorTable
		if tt.depth <= 8 {
			clut = testCLUT(1 << tt.depth)
		}

		pm, err := NewPixMap(testBounds(10, 3), tt.depth, clut)
		require.NoError(t, err, "depth %d", tt.depth)
		require.Equal(t, tt.rowBytes, pm.RowBytes(), "depth %d", tt.depth)
		require.Equal(t, 10, pm.Width())
		require.Equal(t, 3, pm.Height())
	}
}

func TestNewPixMapComponentLayout(t *testing.T) {
	pm, err := NewPixMap(testBounds(4, 4), 8, testCLUT(256))
	require.NoError(t, err)
	require.Equal(t, 1, pm.CmpCount())
	require.Equal(t, 1, pm.CmpSize())

	pm, err = NewPixMap(testBounds(4, 4), 16, nil)
	require.NoError(t, err)
	require.Equal(t, 3, pm.CmpCount())
	require.Equal(t, 2, pm.CmpSize())

	pm, err = NewPixMap(testBounds(4, 4), 32, nil)
	require.NoError(t, err)
	require.Equal(t, 4, pm.CmpCount())
	require.Equal(t, 1, pm.CmpSize())
}

func TestNewPixMapBounds(t *testing.T) {
	// Extents come from the boundary rectangle, wherever it sits.
	bounds := geom.RectFromCorners(
		geom.Point{V: geom.FixedFromInt(10), H: geom.FixedFromInt(20)},
		geom.Point{V: geom.FixedFromInt(13), H: geom.FixedFromInt(26)},
	)

	pm, err := NewPixMap(bounds, 24, nil)
	require.NoError(t, err)
	require.Equal(t, bounds, pm.Bounds())
	require.Equal(t, 6, pm.Width())
	require.Equal(t, 3, pm.Height())
	require.Equal(t, bounds.Dimensions(), pm.Dimensions())
}

func TestNewPixMapValidation(t *testing.T) {
	_, err := NewPixMap(testBounds(0, 4), 8, testCLUT(256))
	require.Error(t, err)

	_, err = NewPixMap(testBounds(4, -1), 8, testCLUT(256))
	require.Error(t, err)

	_, err = NewPixMap(testBounds(4, 4), 7, nil)
	require.ErrorIs(t, err, ErrUnsupportedDepth)

	// Indexed depths need a palette, direct depths reject one.
	_, err = NewPixMap(testBounds(4, 4), 8, nil)
	require.Error(t, err)

	_, err = NewPixMap(testBounds(4, 4), 24, testCLUT(256))
	require.Error(t, err)
}

func TestPixMapBufferInstalledOnce(t *testing.T) {
	pm, err := NewPixMap(testBounds(4, 2), 24, nil)
	require.NoError(t, err)
	require.Nil(t, pm.Pix())

	require.Error(t, pm.setPix(make([]byte, 3))) // shorter than one image

	buf := make([]byte, pm.RowBytes()*pm.Height())
	require.NoError(t, pm.setPix(buf))
	require.Error(t, pm.setPix(buf))
}

func TestColorTableLookup(t *testing.T) {
	ct := &ColorTable{Colors: []RGB{{R: 0xFFFF}, {G: 0xFFFF}}}

	c, err := ct.Lookup(1)
	require.NoError(t, err)
	require.Equal(t, RGB{G: 0xFFFF}, c)

	_, err = ct.Lookup(2)
	require.Error(t, err)
	_, err = ct.Lookup(-1)
	require.Error(t, err)

	var nilTable *ColorTable
	_, err = nilTable.Lookup(0)
	require.Error(t, err)
}
