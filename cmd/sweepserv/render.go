package main

import (
	"bytes"
	"image"
	stddraw "image/draw"
	"image/png"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
	xdraw "golang.org/x/image/draw"

	"github.com/wxview/go-wsr88d/colormap"
	"github.com/wxview/go-wsr88d/sweep"
)

const renderRadiusKm = 460.0

// renderPNG draws a flat, unprojected preview of a computed sweep. The
// triangles render at double resolution and get downsampled, which hides the
// seams between adjacent bins.
func renderPNG(view *sweep.ProductView, size int) ([]byte, error) {
	geom := view.Geometry()
	lut := view.ColorLUT()
	rangeMin, _ := colormap.LUTRange(view.Product())

	renderSize := size * 2
	canvas := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	stddraw.Draw(canvas, canvas.Bounds(), image.Transparent, image.Point{}, stddraw.Src)
	gc := draw2dimg.NewGraphicContext(canvas)

	xc := float64(renderSize) / 2
	yc := float64(renderSize) / 2
	pxPerKm := float64(renderSize) / 2 / renderRadiusKm

	siteLat := float64(geom.Latitude)
	siteLon := float64(geom.Longitude)
	kmPerDegLat := 111.2
	kmPerDegLon := kmPerDegLat * math.Cos(siteLat*math.Pi/180)

	toPx := func(lat, lon float32) (float64, float64) {
		x := (float64(lon) - siteLon) * kmPerDegLon * pxPerKm
		y := (float64(lat) - siteLat) * kmPerDegLat * pxPerKm
		return xc + x, yc - y
	}

	sampleAt := func(vertex int) uint16 {
		if len(geom.Samples8) > 0 {
			return uint16(geom.Samples8[vertex])
		}
		return geom.Samples16[vertex]
	}

	// six floats per triangle; the parallel sample buffer is per-vertex
	for t := 0; t+6 <= len(geom.Vertices); t += 6 {
		raw := sampleAt(t / 2)
		idx := int(raw) - int(rangeMin)
		if idx < 0 || idx >= len(lut) {
			continue
		}
		col := lut[idx]
		if col.A == 0 {
			continue
		}

		x1, y1 := toPx(geom.Vertices[t], geom.Vertices[t+1])
		x2, y2 := toPx(geom.Vertices[t+2], geom.Vertices[t+3])
		x3, y3 := toPx(geom.Vertices[t+4], geom.Vertices[t+5])

		gc.SetFillColor(col)
		gc.MoveTo(x1, y1)
		gc.LineTo(x2, y2)
		gc.LineTo(x3, y3)
		gc.Close()
		gc.Fill()
	}

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), canvas, canvas.Bounds(), xdraw.Over, nil)

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
