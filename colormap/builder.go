package colormap

import (
	"image/color"
	"runtime"
	"sync"

	"github.com/wxview/go-wsr88d/level2"
)

// LUTRange returns the raw integer sample bounds [min, max] for a product's
// LUT. Bounds are fixed per product family; raw values 0 and 1 are the below
// threshold and range folded sentinels and never colored.
func LUTRange(product level2.Product) (uint16, uint16) {
	switch product {
	case level2.ProductDifferentialReflectivity:
		return 2, 1058
	case level2.ProductDifferentialPhase:
		return 2, 1023
	case level2.ProductClutterFilterPowerRemoved:
		return 8, 81
	default:
		// reflectivity, velocity, spectrum width, correlation coefficient
		return 2, 255
	}
}

// Builder bakes a ColorTable into a discrete LUT indexed by raw sample value,
// memoized on the (table, scale, offset) triple. The previous LUT stays
// readable until a rebuild fully completes.
type Builder struct {
	mtx sync.RWMutex
	lut []color.RGBA

	savedTable  ColorTable
	savedScale  float32
	savedOffset float32
}

// LUT returns the last built lookup table; index 0 corresponds to the
// product's range minimum.
func (b *Builder) LUT() []color.RGBA {
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	return b.lut
}

// Build computes the LUT for the table and the moment's scale/offset. The
// rebuild is skipped when nothing changed since the last call. Each entry i
// maps the raw sample value rangeMin+i through f = (raw - offset) / scale
// into the table.
func (b *Builder) Build(table ColorTable, scale, offset float32, product level2.Product) []color.RGBA {
	if table == nil || !table.Valid() {
		return b.LUT()
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.savedTable == table && b.savedScale == scale && b.savedOffset == offset {
		return b.lut
	}

	rangeMin, rangeMax := LUTRange(product)
	lut := make([]color.RGBA, int(rangeMax)-int(rangeMin)+1)

	// every entry is independent; fan out over disjoint chunks
	workers := runtime.NumCPU()
	if workers > len(lut) {
		workers = len(lut)
	}
	chunk := (len(lut) + workers - 1) / workers

	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(lut) {
			end = len(lut)
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				raw := float32(int(rangeMin) + i)
				lut[i] = table.Color((raw - offset) / scale)
			}
		}(start, end)
	}
	wg.Wait()

	b.lut = lut
	b.savedTable = table
	b.savedScale = scale
	b.savedOffset = offset

	return b.lut
}
