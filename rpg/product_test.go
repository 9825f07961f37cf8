package rpg

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSymbologyBlock(t *testing.T, layers ...[]byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}

	blockLen := int32(10)
	for _, l := range layers {
		blockLen += 6 + int32(len(l))
	}

	require.NoError(t, binary.Write(buf, binary.BigEndian, symbologyBlockHeader{
		Divider:    -1,
		BlockID:    1,
		Length:     blockLen,
		LayerCount: int16(len(layers)),
	}))

	for _, l := range layers {
		require.NoError(t, binary.Write(buf, binary.BigEndian, int16(-1)))
		require.NoError(t, binary.Write(buf, binary.BigEndian, int32(len(l))))
		buf.Write(l)
	}
	return buf.Bytes()
}

func testProductFile(t *testing.T, symbology []byte) []byte {
	t.Helper()
	buf := &bytes.Buffer{}

	// noise ahead of the WMO header, as when a comms header is still attached
	buf.WriteString("\x01\r\r\n708\r\r\n")

	th := TextHeader{}
	copy(th.FileType[:], "SDUS52")
	copy(th.RadarIdentifier[:], "KMPX")
	copy(th.Product[:], "N0Q")
	require.NoError(t, binary.Write(buf, binary.BigEndian, th))

	require.NoError(t, binary.Write(buf, binary.BigEndian, MessageHeader{
		Code:       94,
		BlockCount: 3,
	}))
	require.NoError(t, binary.Write(buf, binary.BigEndian, ProductDescription{
		Divider:         -1,
		Code:            94,
		ElevationNumber: 3,
	}))

	buf.Write(symbology)
	return buf.Bytes()
}

func testLayers(t *testing.T) [][]byte {
	t.Helper()
	layer1 := append(
		be(uint16(0x0802), uint16(0x0002), uint16(7)),
		be(uint16(1), uint16(6), int16(1), int16(2), "HI")...,
	)
	layer2 := be(uint16(0xAF1F), int16(0), int16(2), int16(0), int16(0), int16(0), int16(1),
		uint16(1), int16(0), int16(5), []byte{0x21, 0x10})
	return [][]byte{layer1, layer2}
}

func TestNewGraphicProductFile(t *testing.T) {
	layers := testLayers(t)
	data := testProductFile(t, testSymbologyBlock(t, layers...))

	gpf, err := NewGraphicProductFile(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "SDUS52", string(gpf.TextHeader.FileType[:]))
	assert.Equal(t, "KMPX", string(gpf.TextHeader.RadarIdentifier[:]))
	assert.Equal(t, int16(94), gpf.MessageHeader.Code)
	assert.Equal(t, int16(3), gpf.ProductDescription.ElevationNumber)

	require.Len(t, gpf.Packets, 3)
	assert.Equal(t, uint16(0x0802), gpf.Packets[0].Code())
	assert.Equal(t, uint16(1), gpf.Packets[1].Code())
	assert.Equal(t, uint16(0xAF1F), gpf.Packets[2].Code())
}

func TestNewGraphicProductFileCompressedSymbology(t *testing.T) {
	layers := testLayers(t)

	compressed := &bytes.Buffer{}
	w, err := bzip2.NewWriter(compressed, &bzip2.WriterConfig{Level: bzip2.BestSpeed})
	require.NoError(t, err)
	_, err = w.Write(testSymbologyBlock(t, layers...))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	gpf, err := NewGraphicProductFile(bytes.NewReader(testProductFile(t, compressed.Bytes())))
	require.NoError(t, err)
	require.Len(t, gpf.Packets, 3)
}

func TestNewGraphicProductFileMissingHeader(t *testing.T) {
	_, err := NewGraphicProductFile(bytes.NewReader([]byte("not a product")))
	assert.Error(t, err)
}

func TestNewGraphicProductFileBadDivider(t *testing.T) {
	buf := &bytes.Buffer{}
	th := TextHeader{}
	copy(th.FileType[:], "SDUS52")
	require.NoError(t, binary.Write(buf, binary.BigEndian, th))
	require.NoError(t, binary.Write(buf, binary.BigEndian, MessageHeader{}))
	require.NoError(t, binary.Write(buf, binary.BigEndian, ProductDescription{Divider: 0}))

	_, err := NewGraphicProductFile(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err)
}
