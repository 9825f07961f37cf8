package sweep

import (
	"image/color"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wxview/go-wsr88d/colormap"
	"github.com/wxview/go-wsr88d/level2"
)

// ProductView owns the tessellated geometry and color LUT for one product,
// recomputing them as new sweeps and color tables arrive. Consumers read the
// last committed result; a recompute swaps in its buffers only once fully
// finished, so readers never observe a partial sweep.
//
// OnSweepComputed and OnColorTableUpdated, when set, are invoked after the
// corresponding result is committed. Delivery is synchronous on the calling
// goroutine; hosts wanting channel or event-loop delivery wrap them.
type ProductView struct {
	product   level2.Product
	blockType level2.BlockType
	valid     bool

	mtx     sync.RWMutex
	geom    Geometry
	moment0 *level2.MomentDataBlock

	colorTable colormap.ColorTable
	lutBuilder colormap.Builder

	OnSweepComputed     func()
	OnColorTableUpdated func()
}

// NewProductView binds a view to a product. An unknown product is recoverable:
// the view warns once and every later ComputeSweep is a no-op.
func NewProductView(product level2.Product) *ProductView {
	v := &ProductView{product: product}
	v.blockType, v.valid = product.BlockType()
	if !v.valid {
		logrus.Warnf("unknown product: %q", product)
	}
	return v
}

// Product this view renders.
func (v *ProductView) Product() level2.Product {
	return v.product
}

// Geometry returns the last committed sweep geometry.
func (v *ProductView) Geometry() Geometry {
	v.mtx.RLock()
	defer v.mtx.RUnlock()
	return v.geom
}

// SweepTime of the last committed sweep.
func (v *ProductView) SweepTime() time.Time {
	v.mtx.RLock()
	defer v.mtx.RUnlock()
	return v.geom.SweepTime
}

// ColorLUT returns the current color lookup table, which may be empty if no
// color table has been loaded or no sweep computed yet.
func (v *ProductView) ColorLUT() []color.RGBA {
	return v.lutBuilder.LUT()
}

// ComputeSweep tessellates the radials and commits the result, then refreshes
// the color LUT against the sweep's scale/offset.
func (v *ProductView) ComputeSweep(radials []*level2.Radial, coords *CoordinateTable) {
	if !v.valid {
		return
	}

	logrus.Debugf("computing %s sweep (%d radials)", v.product, len(radials))
	start := time.Now()

	geom := Tessellate(radials, v.product, coords)

	var moment0 *level2.MomentDataBlock
	if len(radials) > 0 {
		moment0 = radials[0].Moment(v.blockType)
	}

	v.mtx.Lock()
	v.geom = geom
	v.moment0 = moment0
	v.mtx.Unlock()

	logrus.Debugf("vertices calculated in %s", time.Since(start))

	if v.OnSweepComputed != nil {
		v.OnSweepComputed()
	}

	v.UpdateColorTable()
}

// LoadColorTable replaces the view's color table and refreshes the LUT.
func (v *ProductView) LoadColorTable(table colormap.ColorTable) {
	v.mtx.Lock()
	v.colorTable = table
	v.mtx.Unlock()
	v.UpdateColorTable()
}

// UpdateColorTable rebuilds the LUT when the color table or the sweep's
// scale/offset changed. Rebuilds are skipped when nothing changed; the
// callback only fires for an actual rebuild.
func (v *ProductView) UpdateColorTable() {
	v.mtx.RLock()
	table := v.colorTable
	moment0 := v.moment0
	v.mtx.RUnlock()

	if moment0 == nil || table == nil || !table.Valid() {
		// nothing to update
		return
	}

	before := v.lutBuilder.LUT()
	after := v.lutBuilder.Build(table, moment0.Scale, moment0.Offset, v.product)

	if v.OnColorTableUpdated != nil && !sameLUT(before, after) {
		v.OnColorTableUpdated()
	}
}

func sameLUT(a, b []color.RGBA) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}
