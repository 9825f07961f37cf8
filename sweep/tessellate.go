package sweep

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wxview/go-wsr88d/level2"
)

// Geometry is one tessellated sweep: a flat triangle list and a parallel
// buffer of the raw sample words backing each vertex. Exactly one of Samples8
// and Samples16 is populated, matching the sweep's data word size.
type Geometry struct {
	// Vertices holds (lat, lon) pairs, three vertices per triangle.
	Vertices []float32

	Samples8  []uint8
	Samples16 []uint16

	// Latitude and Longitude locate the radar site, shared by the sweep.
	Latitude  float32
	Longitude float32

	SweepTime time.Time
}

// Tessellate converts one sweep's radials into triangle geometry for the
// given product.
//
// Each retained bin becomes either a two-triangle quad spanning the bin's
// arc, or, for the innermost ring touching the radar, a single triangle
// fanned from the site coordinates. Bins whose raw sample falls below the
// SNR display threshold are dropped entirely. Radials whose word size
// disagrees with the first radial contribute nothing.
//
// An empty radial sequence, an unknown product, a missing moment block, or a
// word size other than 8 or 16 bits yields empty geometry rather than an
// error.
func Tessellate(radials []*level2.Radial, product level2.Product, coords *CoordinateTable) Geometry {
	geom := Geometry{}

	if len(radials) == 0 {
		return geom
	}

	blockType, ok := product.BlockType()
	if !ok {
		logrus.Warnf("unknown product: %q", product)
		return geom
	}

	moment0 := radials[0].Moment(blockType)
	if moment0 == nil {
		logrus.Warnf("no moment data for %s", product)
		return geom
	}

	// a 12 bit moment survives decoding with no sample data attached
	wordSize := moment0.DataWordSize
	if wordSize != 8 && wordSize != 16 {
		logrus.Warnf("unsupported data word size %d", wordSize)
		return geom
	}

	geom.Latitude = radials[0].Volume.Lat
	geom.Longitude = radials[0].Volume.Long
	geom.SweepTime = radials[0].Header.Date()

	// worst case allocation up front, truncated to what gets written
	gates := int(moment0.NumberDataMomentGates)
	vertices := make([]float32, len(radials)*gates*verticesPerBin*valuesPerVertex)
	vIndex := 0

	var samples8 []uint8
	var samples16 []uint16
	if wordSize == 8 {
		samples8 = make([]uint8, len(radials)*gates*verticesPerBin)
	} else {
		samples16 = make([]uint16, len(radials)*gates*verticesPerBin)
	}
	mIndex := 0

	// threshold below which a bin is not displayed, in raw sample units
	scale := moment0.Scale
	offset := moment0.Offset
	snrThreshold := int(math.Round(float64(moment0.SNRThreshold)*float64(scale)/10 + float64(offset)))

	// Azimuth resolution spacing:
	//   1 = 0.5 degrees
	//   2 = 1.0 degrees
	spacing := radials[0].Header.AzimuthResolutionSpacingCode
	if spacing < 1 {
		spacing = 1
	} else if spacing > 2 {
		spacing = 2
	}
	radialMultiplier := 2.0 / float64(spacing)

	// align the first radial with the coordinate table's angular indexing
	startAngle := float64(radials[0].Header.AzimuthAngle)
	startRadial := int(math.Round(startAngle * radialMultiplier))

	for radial, radialData := range radials {
		momentData := radialData.Moment(blockType)

		if momentData == nil {
			logrus.Warnf("radial %d has no %s moment data", radial, blockType)
			continue
		}
		if momentData.DataWordSize != wordSize {
			logrus.Warnf("radial %d has different word size", radial)
			continue
		}

		// compute gate interval
		dataMomentRange := int(momentData.DataMomentRange)
		dataMomentInterval := int(momentData.DataMomentRangeSampleInterval)
		dataMomentIntervalH := dataMomentInterval / 2

		// number of base 250m gates collapsed into one rendered bin
		gateSize := dataMomentInterval / 250
		if gateSize < 1 {
			gateSize = 1
		}

		// gate range [startGate, endGate); a first gate closer to the radar
		// than half an interval clamps onto the innermost ring
		startGate := (dataMomentRange - dataMomentIntervalH) / 250
		if startGate < 0 {
			startGate = 0
		}
		numberOfDataMomentGates := int(momentData.NumberDataMomentGates)
		if numberOfDataMomentGates > gates {
			numberOfDataMomentGates = gates
		}
		endGate := startGate + numberOfDataMomentGates*gateSize
		if endGate > MaxDataMomentGates {
			endGate = MaxDataMomentGates
		}

		for gate, i := startGate, 0; gate+gateSize <= endGate; gate, i = gate+gateSize, i+1 {
			if int(momentData.Sample(i)) < snrThreshold {
				continue
			}

			vertexCount := verticesPerBin
			if gate == 0 {
				vertexCount = 3
			}

			// replicate the raw sample once per emitted vertex
			if wordSize == 8 {
				for m := 0; m < vertexCount; m++ {
					samples8[mIndex] = momentData.Data8[i]
					mIndex++
				}
			} else {
				for m := 0; m < vertexCount; m++ {
					samples16[mIndex] = momentData.Data16[i]
					mIndex++
				}
			}

			c := coords.Coords

			if gate > 0 {
				// two triangles sharing the inner-far/outer-near diagonal
				baseCoord := gate - 1

				offset1 := ((startRadial+radial)%MaxRadials*MaxDataMomentGates + baseCoord) * valuesPerVertex
				offset2 := offset1 + gateSize*valuesPerVertex
				offset3 := ((startRadial+radial+1)%MaxRadials*MaxDataMomentGates + baseCoord) * valuesPerVertex
				offset4 := offset3 + gateSize*valuesPerVertex

				vertices[vIndex] = c[offset1]
				vertices[vIndex+1] = c[offset1+1]

				vertices[vIndex+2] = c[offset2]
				vertices[vIndex+3] = c[offset2+1]

				vertices[vIndex+4] = c[offset3]
				vertices[vIndex+5] = c[offset3+1]

				vertices[vIndex+6] = c[offset3]
				vertices[vIndex+7] = c[offset3+1]

				vertices[vIndex+8] = c[offset4]
				vertices[vIndex+9] = c[offset4+1]

				vertices[vIndex+10] = c[offset2]
				vertices[vIndex+11] = c[offset2+1]

				vIndex += verticesPerBin * valuesPerVertex
			} else {
				// innermost ring: triangle fan from the radar site
				baseCoord := gate

				offset1 := ((startRadial+radial)%MaxRadials*MaxDataMomentGates + baseCoord) * valuesPerVertex
				offset2 := ((startRadial+radial+1)%MaxRadials*MaxDataMomentGates + baseCoord) * valuesPerVertex

				vertices[vIndex] = geom.Latitude
				vertices[vIndex+1] = geom.Longitude

				vertices[vIndex+2] = c[offset1]
				vertices[vIndex+3] = c[offset1+1]

				vertices[vIndex+4] = c[offset2]
				vertices[vIndex+5] = c[offset2+1]

				vIndex += 3 * valuesPerVertex
			}
		}
	}

	geom.Vertices = vertices[:vIndex]
	if wordSize == 8 {
		geom.Samples8 = samples8[:mIndex]
	} else {
		geom.Samples16 = samples16[:mIndex]
	}

	return geom
}
