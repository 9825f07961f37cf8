package rpg

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// be builds a big-endian fixture from a mix of ints and byte slices.
func be(fields ...interface{}) []byte {
	buf := &bytes.Buffer{}
	for _, f := range fields {
		switch v := f.(type) {
		case []byte:
			buf.Write(v)
		case string:
			buf.WriteString(v)
		default:
			if err := binary.Write(buf, binary.BigEndian, f); err != nil {
				panic(err)
			}
		}
	}
	return buf.Bytes()
}

func TestDecodePacketUnknownCodeLeavesCursor(t *testing.T) {
	data := be(uint16(0x1234), uint16(0xFFFF))
	r := bytes.NewReader(data)

	p, err := DecodePacket(r)
	require.NoError(t, err)
	assert.Nil(t, p)

	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(0), pos, "cursor must stay at the code field")
}

func TestDecodePacketEndOfStream(t *testing.T) {
	p, err := DecodePacket(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Nil(t, p)

	// a truncated code is end-of-data too
	p, err = DecodePacket(bytes.NewReader([]byte{0x00}))
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestDecodePacketDispatch(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want interface{}
	}{
		{"text code 1", be(uint16(1), uint16(6), int16(10), int16(20), "AB"), &TextAndSpecialSymbolPacket{}},
		{"special symbol code 2", be(uint16(2), uint16(5), int16(1), int16(2), "!"), &TextAndSpecialSymbolPacket{}},
		{"text code 8", be(uint16(8), uint16(8), uint16(3), int16(10), int16(20), "AB"), &TextAndSpecialSymbolPacket{}},
		{"storm id code 15", be(uint16(15), uint16(6), int16(10), int16(20), "M4"), &TextAndSpecialSymbolPacket{}},
		{"linked vector code 6", be(uint16(6), uint16(8), int16(0), int16(0), int16(5), int16(5)), &LinkedVectorPacket{}},
		{"linked vector code 9", be(uint16(9), uint16(10), uint16(2), int16(0), int16(0), int16(5), int16(5)), &LinkedVectorPacket{}},
		{"unlinked vector code 7", be(uint16(7), uint16(8), int16(0), int16(0), int16(5), int16(5)), &UnlinkedVectorPacket{}},
		{"unlinked vector code 10", be(uint16(10), uint16(10), uint16(2), int16(0), int16(0), int16(5), int16(5)), &UnlinkedVectorPacket{}},
		{"digital radial code 16", be(uint16(16), int16(0), int16(2), int16(0), int16(0), int16(0), int16(1),
			uint16(2), int16(0), int16(10), []byte{5, 6}), &RadialDataPacket{}},
		{"radial rle code 0xAF1F", be(uint16(0xAF1F), int16(0), int16(3), int16(0), int16(0), int16(0), int16(1),
			uint16(1), int16(0), int16(10), []byte{0x23, 0x10}), &RadialDataPacket{}},
		{"digital precip code 17", be(uint16(17), uint16(0), uint16(0), uint16(4), uint16(1),
			uint16(4), []byte{2, 5, 2, 0}), &DigitalPrecipitationDataArrayPacket{}},
		{"precip rate code 18", be(uint16(18), uint16(0), uint16(0), uint16(3), uint16(1),
			uint16(2), []byte{0x23, 0x11}), &PrecipitationRateDataArrayPacket{}},
		{"set color level", be(uint16(0x0802), uint16(0x0002), uint16(7)), &SetColorLevelPacket{}},
		{"linked contour", be(uint16(0x0E03), uint16(0x8000), int16(1), int16(2), uint16(8),
			int16(3), int16(4), int16(5), int16(6)), &LinkedContourVectorPacket{}},
		{"unlinked contour", be(uint16(0x3501), uint16(8), int16(1), int16(2), int16(3), int16(4)), &UnlinkedContourVectorPacket{}},
		{"raster 0xBA07", be(uint16(0xBA07), uint16(0x8000), uint16(0x00C0), int16(0), int16(0),
			int16(1), int16(0), int16(1), int16(0), uint16(1), uint16(2), uint16(1), []byte{0x12}), &RasterDataPacket{}},
		{"raster 0xBA0F", be(uint16(0xBA0F), uint16(0x8000), uint16(0x00C0), int16(0), int16(0),
			int16(1), int16(0), int16(1), int16(0), uint16(1), uint16(2), uint16(1), []byte{0x12}), &RasterDataPacket{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := bytes.NewReader(tc.data)
			p, err := DecodePacket(r)
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.IsType(t, tc.want, p)

			// the decoder must consume exactly its packet
			pos, _ := r.Seek(0, io.SeekCurrent)
			assert.Equal(t, int64(len(tc.data)), pos, "packet not fully consumed")
		})
	}
}

func TestTextPacketFields(t *testing.T) {
	r := bytes.NewReader(be(uint16(8), uint16(8), uint16(3), int16(10), int16(-20), "AB"))
	p, err := DecodePacket(r)
	require.NoError(t, err)

	text := p.(*TextAndSpecialSymbolPacket)
	assert.Equal(t, uint16(8), text.Code())
	assert.Equal(t, uint16(3), text.Value)
	assert.Equal(t, int16(10), text.I)
	assert.Equal(t, int16(-20), text.J)
	assert.Equal(t, "AB", text.Text)
}

func TestLinkedVectorFields(t *testing.T) {
	r := bytes.NewReader(be(uint16(9), uint16(14), uint16(2), int16(0), int16(1), int16(5), int16(6), int16(7), int16(8)))
	p, err := DecodePacket(r)
	require.NoError(t, err)

	v := p.(*LinkedVectorPacket)
	assert.Equal(t, uint16(2), v.Value)
	assert.Equal(t, Point{0, 1}, v.Start)
	assert.Equal(t, []Point{{5, 6}, {7, 8}}, v.Points)
}

func TestRadialDataRLEExpansion(t *testing.T) {
	// one radial, one RLE halfword: 0x23 = run 2 level 3, 0x10 = run 1 level 0
	r := bytes.NewReader(be(uint16(0xAF1F), int16(0), int16(3), int16(128), int16(128), int16(999), int16(1),
		uint16(1), int16(125), int16(5), []byte{0x23, 0x10}))
	p, err := DecodePacket(r)
	require.NoError(t, err)

	radial := p.(*RadialDataPacket)
	assert.Equal(t, int16(3), radial.BinCount)
	require.Len(t, radial.Radials, 1)
	assert.Equal(t, int16(125), radial.Radials[0].StartAngle)
	assert.Equal(t, []uint8{3, 3, 0}, radial.Radials[0].Levels)
}

func TestDigitalRadialRawLevels(t *testing.T) {
	r := bytes.NewReader(be(uint16(16), int16(0), int16(2), int16(0), int16(0), int16(0), int16(1),
		uint16(2), int16(0), int16(10), []byte{200, 201}))
	p, err := DecodePacket(r)
	require.NoError(t, err)

	radial := p.(*RadialDataPacket)
	require.Len(t, radial.Radials, 1)
	assert.Equal(t, []uint8{200, 201}, radial.Radials[0].Levels)
}

func TestDigitalPrecipitationRows(t *testing.T) {
	r := bytes.NewReader(be(uint16(17), uint16(0), uint16(0), uint16(4), uint16(2),
		uint16(4), []byte{2, 5, 2, 0},
		uint16(2), []byte{4, 9}))
	p, err := DecodePacket(r)
	require.NoError(t, err)

	precip := p.(*DigitalPrecipitationDataArrayPacket)
	require.Len(t, precip.Rows, 2)
	assert.Equal(t, []uint8{5, 5, 0, 0}, precip.Rows[0])
	assert.Equal(t, []uint8{9, 9, 9, 9}, precip.Rows[1])
}

func TestRasterRows(t *testing.T) {
	r := bytes.NewReader(be(uint16(0xBA07), uint16(0x8000), uint16(0x00C0), int16(11), int16(22),
		int16(1), int16(0), int16(1), int16(0), uint16(2), uint16(2),
		uint16(2), []byte{0x31, 0x12},
		uint16(1), []byte{0x4F}))
	p, err := DecodePacket(r)
	require.NoError(t, err)

	raster := p.(*RasterDataPacket)
	assert.Equal(t, int16(11), raster.ICoordinate)
	require.Len(t, raster.Rows, 2)
	assert.Equal(t, []uint8{1, 1, 1, 2}, raster.Rows[0])
	assert.Equal(t, []uint8{15, 15, 15, 15}, raster.Rows[1])
}

func TestRadialDataMalformedCounts(t *testing.T) {
	// a radial count with the sign bit set must error out, not allocate
	r := bytes.NewReader(be(uint16(0xAF1F), int16(0), int16(3), int16(0), int16(0), int16(0), int16(-1)))
	_, err := DecodePacket(r)
	assert.Error(t, err)

	r = bytes.NewReader(be(uint16(16), int16(0), int16(-2), int16(0), int16(0), int16(0), int16(1)))
	_, err = DecodePacket(r)
	assert.Error(t, err)
}

func TestSetColorLevelBadIndicator(t *testing.T) {
	r := bytes.NewReader(be(uint16(0x0802), uint16(0x0003), uint16(7)))
	_, err := DecodePacket(r)
	assert.Error(t, err)
}

func TestDecodeAllStopsAtUnknownCode(t *testing.T) {
	data := be(
		uint16(0x0802), uint16(0x0002), uint16(7), // good packet
		uint16(0x4444), // unknown
	)
	r := bytes.NewReader(data)

	packets, err := DecodeAll(r)
	require.NoError(t, err)
	require.Len(t, packets, 1)
	assert.Equal(t, uint16(0x0802), packets[0].Code())

	// cursor parked at the unknown code
	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(len(data)-2), pos)
}
