package sweep

import "math"

// RadialSize keys a coordinate table by its angular resolution.
type RadialSize int

const (
	RadialSize0_5Degree RadialSize = iota
	RadialSize1Degree
)

// Degrees per radial index for this size.
func (rs RadialSize) Degrees() float64 {
	if rs == RadialSize0_5Degree {
		return 0.5
	}
	return 1.0
}

// RadialSizeFor picks the table resolution matching a sweep's radial count.
func RadialSizeFor(radials int) RadialSize {
	if radials == MaxRadials {
		return RadialSize0_5Degree
	}
	return RadialSize1Degree
}

// CoordinateTable is a precomputed, read-only lookup from (radial index, gate
// index) to a (latitude, longitude) pair. It always spans MaxRadials x
// MaxDataMomentGates entries; radial indices wrap modulo MaxRadials.
//
// Entry k along a radial is the gate boundary at range (k+1) x 250m, so the
// innermost boundary pairs with the radar site itself.
type CoordinateTable struct {
	Size   RadialSize
	Coords []float32 // flat (lat, lon) pairs
}

const (
	earthRadiusM = 6378137.0
	gateSizeM    = 250.0
)

// NewCoordinateTable computes the lookup table for a radar site. The
// spherical destination formula is plenty here; gate boundary error versus a
// proper geodesic is far below the beam width.
func NewCoordinateTable(latitude, longitude float64, size RadialSize) *CoordinateTable {
	ct := &CoordinateTable{
		Size:   size,
		Coords: make([]float32, MaxRadials*MaxDataMomentGates*valuesPerVertex),
	}

	lat1 := latitude * math.Pi / 180
	lon1 := longitude * math.Pi / 180
	sinLat1 := math.Sin(lat1)
	cosLat1 := math.Cos(lat1)

	for radial := 0; radial < MaxRadials; radial++ {
		azimuth := math.Mod(float64(radial)*size.Degrees(), 360) * math.Pi / 180
		sinAz := math.Sin(azimuth)
		cosAz := math.Cos(azimuth)

		for gate := 0; gate < MaxDataMomentGates; gate++ {
			delta := float64(gate+1) * gateSizeM / earthRadiusM
			sinDelta := math.Sin(delta)
			cosDelta := math.Cos(delta)

			lat2 := math.Asin(sinLat1*cosDelta + cosLat1*sinDelta*cosAz)
			lon2 := lon1 + math.Atan2(sinAz*sinDelta*cosLat1, cosDelta-sinLat1*math.Sin(lat2))

			offset := (radial*MaxDataMomentGates + gate) * valuesPerVertex
			ct.Coords[offset] = float32(lat2 * 180 / math.Pi)
			ct.Coords[offset+1] = float32(lon2 * 180 / math.Pi)
		}
	}

	return ct
}
