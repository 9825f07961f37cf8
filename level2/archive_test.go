package level2

import (
	"bytes"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compressLDM bzip2-compresses a record body and prepends the size word.
func compressLDM(t *testing.T, body []byte) []byte {
	t.Helper()

	compressed := &bytes.Buffer{}
	w, err := bzip2.NewWriter(compressed, &bzip2.WriterConfig{Level: bzip2.BestSpeed})
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out := &bytes.Buffer{}
	writeBE(t, out, int32(compressed.Len()))
	out.Write(compressed.Bytes())
	return out.Bytes()
}

func metadataRecordBody(t *testing.T, build uint16) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	writeBE(t, buf,
		make([]byte, LegacyCTMHeaderLength),
		MessageHeader{MessageType: 2},
		Message2{RDABuild: build},
	)
	// the decoder skips the remainder of the fixed-length metadata record
	buf.Write(make([]byte, DefaultMetadataRecordLength-LegacyCTMHeaderLength-16-68))
	return buf.Bytes()
}

func radialRecordBody(t *testing.T) []byte {
	t.Helper()
	ref := genericDataMoment{
		NumberDataMomentGates: 2,
		DataWordSize:          8,
		Scale:                 2,
		Offset:                66,
	}
	msg31 := buildMessage31(t, testRadialHeader(2), pointersPerBuild[19],
		[]byte("DVOL"), VolumeData{Lat: 44.849, Long: -93.565},
		[]byte("DREF"), ref, []byte{80, 90},
	)

	buf := &bytes.Buffer{}
	writeBE(t, buf,
		make([]byte, LegacyCTMHeaderLength),
		MessageHeader{MessageType: 31},
	)
	buf.Write(msg31.Bytes())
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	archive := &bytes.Buffer{}
	writeBE(t, archive, VolumeHeaderRecord{
		TapeFilename:    [9]byte{'A', 'R', '2', 'V', '0', '0', '0', '6', '.'},
		ExtensionNumber: [3]byte{'0', '0', '1'},
		ModifiedDate:    18873,
		ICAO:            [4]byte{'K', 'M', 'P', 'X'},
	})

	meta := compressLDM(t, metadataRecordBody(t, 190))
	data := compressLDM(t, radialRecordBody(t))
	archive.Write(meta)
	archive.Write(data)

	ar, err := Extract(archive)
	require.NoError(t, err)

	assert.Equal(t, "AR2V0006.001", ar.VolumeHeader.Filename())
	assert.Equal(t, float32(19), ar.BuildNumber())

	require.Len(t, ar.LDMRecords, 2)
	require.Len(t, ar.LDMOffsets, 2)
	assert.Equal(t, 24, ar.LDMOffsets[0])
	assert.Equal(t, 24+len(meta), ar.LDMOffsets[1])

	radials, ok := ar.ElevationScans[1]
	require.True(t, ok)
	require.Len(t, radials, 1)
	assert.Equal(t, "KMPX", string(radials[0].Header.RadarIdentifier[:]))
	assert.Equal(t, []uint8{80, 90}, radials[0].Moment(BlockRef).Data8)
}

func TestExtractRejectsOldBuilds(t *testing.T) {
	archive := &bytes.Buffer{}
	writeBE(t, archive, VolumeHeaderRecord{})
	archive.Write(compressLDM(t, metadataRecordBody(t, 170)))

	_, err := Extract(archive)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "17.00")
}
