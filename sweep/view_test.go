package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wxview/go-wsr88d/colormap"
	"github.com/wxview/go-wsr88d/level2"
)

func TestProductViewComputeSweep(t *testing.T) {
	radials := []*level2.Radial{momentRadial(0, level2.BlockRef, refMoment([]uint8{10, 20}))}
	view := NewProductView(level2.ProductReflectivity)

	sweeps := 0
	view.OnSweepComputed = func() { sweeps++ }

	view.ComputeSweep(radials, testCoords)
	assert.Equal(t, 1, sweeps)
	assert.NotEmpty(t, view.Geometry().Vertices)
	assert.Equal(t, radials[0].Header.Date(), view.SweepTime())
	assert.Equal(t, level2.ProductReflectivity, view.Product())
}

func TestProductViewUnknownProduct(t *testing.T) {
	radials := []*level2.Radial{momentRadial(0, level2.BlockRef, refMoment([]uint8{10}))}
	view := NewProductView(level2.Product("bogus"))

	called := false
	view.OnSweepComputed = func() { called = true }

	view.ComputeSweep(radials, testCoords)
	assert.False(t, called)
	assert.Empty(t, view.Geometry().Vertices)
}

func TestProductViewColorTableLifecycle(t *testing.T) {
	radials := []*level2.Radial{momentRadial(0, level2.BlockRef, refMoment([]uint8{10, 20}))}
	view := NewProductView(level2.ProductReflectivity)

	rebuilds := 0
	view.OnColorTableUpdated = func() { rebuilds++ }

	// no sweep and no table yet: nothing to build
	view.UpdateColorTable()
	assert.Equal(t, 0, rebuilds)
	assert.Empty(t, view.ColorLUT())

	view.ComputeSweep(radials, testCoords)
	assert.Equal(t, 0, rebuilds, "no color table loaded yet")

	view.LoadColorTable(colormap.DefaultTable(level2.ProductReflectivity))
	assert.Equal(t, 1, rebuilds)
	require.NotEmpty(t, view.ColorLUT())
	assert.Len(t, view.ColorLUT(), 254)

	// same table, same scale/offset: memoized, callback stays quiet
	view.UpdateColorTable()
	assert.Equal(t, 1, rebuilds)

	view.ComputeSweep(radials, testCoords)
	assert.Equal(t, 1, rebuilds)

	// a sweep with a different scale forces a rebuild
	changed := refMoment([]uint8{10, 20})
	changed.Scale = 4
	view.ComputeSweep([]*level2.Radial{momentRadial(0, level2.BlockRef, changed)}, testCoords)
	assert.Equal(t, 2, rebuilds)
}
