// Package colormap maps raw moment sample words to colors. A ColorTable is a
// continuous ramp over physical values; Builder bakes it into a discrete
// lookup table over the raw integer sample range of a product, applying the
// moment's scale/offset transform.
package colormap

import (
	"image/color"
	"sort"
)

// ColorTable is a continuous color ramp over physical moment values.
type ColorTable interface {
	// Color returns the ramp color for a physical (scaled) value.
	Color(value float32) color.RGBA
	// Valid reports whether the table can produce colors.
	Valid() bool
}

// Stop anchors a color at a physical value.
type Stop struct {
	Value float32
	Color color.RGBA
}

// Table is a piecewise-linear ColorTable over a set of stops.
type Table struct {
	stops []Stop
}

// NewTable builds a Table from stops, sorting them by value.
func NewTable(stops []Stop) *Table {
	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
	return &Table{stops: sorted}
}

func (t *Table) Valid() bool {
	return t != nil && len(t.stops) > 0
}

// Color interpolates linearly between the two stops bracketing value.
// Values outside the ramp clamp to the end stops.
func (t *Table) Color(value float32) color.RGBA {
	if !t.Valid() {
		return color.RGBA{}
	}

	if value <= t.stops[0].Value {
		return t.stops[0].Color
	}
	last := len(t.stops) - 1
	if value >= t.stops[last].Value {
		return t.stops[last].Color
	}

	i := sort.Search(len(t.stops), func(i int) bool { return t.stops[i].Value > value })
	lo, hi := t.stops[i-1], t.stops[i]

	f := (value - lo.Value) / (hi.Value - lo.Value)
	return color.RGBA{
		R: lerp(lo.Color.R, hi.Color.R, f),
		G: lerp(lo.Color.G, hi.Color.G, f),
		B: lerp(lo.Color.B, hi.Color.B, f),
		A: lerp(lo.Color.A, hi.Color.A, f),
	}
}

func lerp(a, b uint8, f float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*f)
}
