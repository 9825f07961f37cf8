package colormap

import (
	"image/color"

	"github.com/wxview/go-wsr88d/level2"
)

// DefaultTable returns a built-in ramp for a product, for callers without an
// externally supplied palette.
func DefaultTable(product level2.Product) *Table {
	switch product {
	case level2.ProductVelocity:
		return NewTable([]Stop{
			{-100, color.RGBA{0, 224, 255, 255}},
			{-10, color.RGBA{0, 128, 0, 255}},
			{0, color.RGBA{96, 96, 96, 255}},
			{10, color.RGBA{128, 0, 0, 255}},
			{100, color.RGBA{255, 160, 0, 255}},
		})
	case level2.ProductCorrelationCoefficient:
		return NewTable([]Stop{
			{0.2, color.RGBA{0, 0, 0, 255}},
			{0.8, color.RGBA{64, 64, 224, 255}},
			{1.0, color.RGBA{255, 64, 64, 255}},
			{1.05, color.RGBA{255, 255, 255, 255}},
		})
	default:
		// the classic reflectivity ramp
		return NewTable([]Stop{
			{5, color.RGBA{0, 0, 0, 0}},
			{25, color.RGBA{60, 220, 20, 255}},
			{30, color.RGBA{220, 220, 0, 255}},
			{35, color.RGBA{255, 255, 0, 255}},
			{40, color.RGBA{255, 150, 0, 255}},
			{45, color.RGBA{255, 75, 0, 255}},
			{50, color.RGBA{255, 0, 50, 255}},
			{55, color.RGBA{175, 0, 75, 255}},
			{60, color.RGBA{200, 15, 175, 255}},
			{65, color.RGBA{255, 0, 255, 255}},
			{70, color.RGBA{125, 0, 255, 255}},
			{75, color.RGBA{255, 255, 255, 255}},
		})
	}
}
