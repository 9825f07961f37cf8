package rpg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/dsnet/compress/bzip2"
	"github.com/sirupsen/logrus"
)

// TextHeader is the WMO header prepended to distributed Level III products.
type TextHeader struct {
	FileType         [6]byte // SDUS__
	_                byte    // space
	RadarIdentifier  [4]byte
	_                byte // space
	DDHHMM           [6]byte
	_                [3]byte // \r\r\n
	Product          [3]byte
	RadarIdentifier3 [3]byte
	_                [3]byte // \r\r\n
}

// MessageHeader for a Level III product message (ICD 2620001, pg 14).
type MessageHeader struct {
	Code       int16
	Date       int16
	Time       int32
	Length     int32
	SourceID   int16
	DestID     int16
	BlockCount int16
}

// ProductDescription block (ICD 2620001, pg 39).
type ProductDescription struct {
	Divider               int16
	Lat                   int32
	Long                  int32
	Height                int16
	Code                  int16
	OperationalMode       int16
	VolumeCoveragePattern int16
	SequenceNumber        int16
	VolumeScanNumber      int16
	VolumeScanDate        int16
	VolumeScanTime        int32
	GenerationDate        int16
	GenerationTime        int32

	ProductDependent1_27 int16
	ProductDependent2_28 int16

	ElevationNumber int16

	ProductDependent3_30 int16

	ProductDependent31_46 [32]byte
	ProductDependent4_47  int16
	ProductDependent5_48  int16
	ProductDependent6_49  int16
	ProductDependent7_50  int16
	ProductDependent8_51  int16
	ProductDependent9_52  int16
	ProductDependent10_53 int16

	Version         int8
	SpotBlank       bool
	SymbologyOffset int32
	GraphicOffset   int32
	TabularOffset   int32
}

// symbologyBlockHeader (ICD 2620001, pg 49). The layer divider and length of
// the first layer follow the block header itself.
type symbologyBlockHeader struct {
	Divider    int16
	BlockID    int16
	Length     int32
	LayerCount int16
}

// GraphicProductFile is a decoded Level III product: the framing blocks plus
// every packet from each symbology layer.
type GraphicProductFile struct {
	TextHeader         TextHeader
	MessageHeader      MessageHeader
	ProductDescription ProductDescription
	Packets            []Packet
}

// NewGraphicProductFile decodes a Level III product file, dispatching each
// symbology layer's contents through the packet registry. Packet decoding
// within a layer stops at the first unknown packet code; the layer length
// bounds the damage and the next layer starts clean.
func NewGraphicProductFile(baseReader io.Reader) (*GraphicProductFile, error) {
	data, err := ioutil.ReadAll(baseReader)
	if err != nil {
		return nil, err
	}

	headerOffset := bytes.Index(data, []byte("SDUS"))
	if headerOffset == -1 {
		return nil, errors.New("cannot find L3 text header")
	}
	data = data[headerOffset:]

	reader := bytes.NewReader(data)

	gpf := &GraphicProductFile{}
	if err := binary.Read(reader, binary.BigEndian, &gpf.TextHeader); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &gpf.MessageHeader); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &gpf.ProductDescription); err != nil {
		return nil, err
	}

	if gpf.ProductDescription.Divider != -1 {
		return gpf, fmt.Errorf("corrupt product description divider %d", gpf.ProductDescription.Divider)
	}

	// the symbology block may be bzip2 compressed in its entirety
	compressHeader := make([]byte, 2)
	curPos, _ := reader.Seek(0, io.SeekCurrent)
	io.ReadFull(reader, compressHeader)
	reader.Seek(curPos, io.SeekStart)

	var symReader io.ReadSeeker = reader
	if bytes.Equal(compressHeader, []byte("BZ")) {
		logrus.Tracef("found bzip2 symbology block")
		bz, err := bzip2.NewReader(reader, nil)
		if err != nil {
			return gpf, err
		}
		decompressed, err := ioutil.ReadAll(bz)
		if err != nil {
			return gpf, err
		}
		symReader = bytes.NewReader(decompressed)
	}

	var sym symbologyBlockHeader
	if err := binary.Read(symReader, binary.BigEndian, &sym); err != nil {
		return gpf, err
	}
	if sym.Divider != -1 {
		return gpf, fmt.Errorf("corrupt symbology block divider %d", sym.Divider)
	}

	for layer := int16(0); layer < sym.LayerCount; layer++ {
		var layerHdr struct {
			Divider int16
			Length  int32
		}
		if err := binary.Read(symReader, binary.BigEndian, &layerHdr); err != nil {
			return gpf, err
		}

		layerData := make([]byte, layerHdr.Length)
		if _, err := io.ReadFull(symReader, layerData); err != nil {
			return gpf, err
		}

		packets, err := DecodeAll(bytes.NewReader(layerData))
		if err != nil {
			return gpf, err
		}
		gpf.Packets = append(gpf.Packets, packets...)
	}

	return gpf, nil
}
