package level2

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dsnet/compress/bzip2"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Archive wraps one processed Archive II volume scan.
type Archive struct {
	VolumeHeader VolumeHeaderRecord

	mtx            sync.Mutex
	ElevationScans map[int][]*Radial

	// LDMRecords and LDMOffsets account for every record seen, in order, so
	// remote callers can range-request individual chunks later.
	LDMRecords []*LDMRecord
	LDMOffsets []int

	// the metadata record will contain a single Message Type 2 which comes in
	// handy in other parts of the decoding for version-specific handling.
	metadataStatusMessage *Message2
}

// BuildNumber of the RDA that produced this volume, taken from the metadata
// record's status message. Zero until the metadata record has been read.
func (ar *Archive) BuildNumber() float32 {
	if ar.metadataStatusMessage == nil {
		return 0
	}
	return ar.metadataStatusMessage.GetBuildNumber()
}

// AddFromLDMRecord reads a single LDM compressed record from the reader,
// decoding every message it holds and grouping radials by elevation.
func (ar *Archive) AddFromLDMRecord(reader io.Reader) (int32, error) {
	ldm := &LDMRecord{}

	// read in size of LDM record
	err := binary.Read(reader, binary.BigEndian, &ldm.Size)
	if err != nil {
		return 0, err
	}

	// the size can be negative, but you just interpret it as positive (RDA/RPG 7.3.4)
	if ldm.Size < 0 {
		ldm.Size = -ldm.Size
	}

	logrus.Debugf("LDM Compressed Record (%s bytes)", color.CyanString("%d", ldm.Size))

	bzipReader, err := bzip2.NewReader(io.LimitReader(reader, int64(ldm.Size)), nil)
	if err != nil {
		return ldm.Size, err
	}

	// read until no more messages are available
	messageCounts := map[uint8]int{}

	for {
		// eat 12 bytes due to legacy compliance of CTM Header, these are all set to nil
		io.ReadFull(bzipReader, make([]byte, LegacyCTMHeaderLength))

		// read in the rest of the header
		header := MessageHeader{}
		if err := binary.Read(bzipReader, binary.BigEndian, &header); err != nil {
			if err != io.EOF {
				return ldm.Size, err
			}
			break
		}

		logrus.Tracef("  Message Type %d (segments: %d size: %d)", header.MessageType, header.NumMessageSegments, header.MessageSize)

		// anything not called out in the switch falls into the default (and is skipped)
		switch header.MessageType {
		case 2:
			m2 := Message2{}
			if err := binary.Read(bzipReader, binary.BigEndian, &m2); err != nil {
				return ldm.Size, err
			}

			if m2.GetBuildNumber() < 18 {
				return ldm.Size, fmt.Errorf("file is build %.2f; only builds 18.00 and up are supported", m2.GetBuildNumber())
			}

			// skip the rest
			io.ReadFull(bzipReader, make([]byte, DefaultMetadataRecordLength-LegacyCTMHeaderLength-16-68))

			// we'll keep the first one - it should be the metadata record's
			if ar.metadataStatusMessage == nil {
				ar.metadataStatusMessage = &m2
			}

		case 31:
			radial, err := NewRadial(bzipReader, ar.BuildNumber())
			if err != nil {
				return ldm.Size, err
			}

			ldm.Radials = append(ldm.Radials, radial)

			ar.mtx.Lock()
			ar.ElevationScans[int(radial.Header.ElevationNumber)] = append(ar.ElevationScans[int(radial.Header.ElevationNumber)], radial)
			ar.mtx.Unlock()

		default:
			// not handled, skip the rest - which we know is DEFAULT - CTM - header
			io.ReadFull(bzipReader, make([]byte, DefaultMetadataRecordLength-LegacyCTMHeaderLength-16))
		}

		messageCounts[header.MessageType]++
	}

	ar.mtx.Lock()
	ar.LDMRecords = append(ar.LDMRecords, ldm)
	ar.mtx.Unlock()

	// helpful for debugging
	totalMessages := 0
	for _, count := range messageCounts {
		totalMessages += count
	}
	logrus.Debugf("  found %s messages in this record", color.CyanString("%d", totalMessages))
	for msgType, count := range messageCounts {
		logrus.Debugf("    type %02d had %d messages", msgType, count)
	}

	return ldm.Size, nil
}

// Extract returns a new Archive decoded from the provided reader
func Extract(reader io.Reader) (*Archive, error) {
	ar := Archive{
		ElevationScans: make(map[int][]*Radial),
		VolumeHeader:   VolumeHeaderRecord{},
	}

	// the gist of the file format is documented in RDA/RPG 7.3.6
	// but in short:
	//  - read in 24 byte Volume Header
	//  - read in 1 LDM Compressed Record - this is the metadata record
	//  - read in N LDM Compressed Records - these are the data records

	if err := binary.Read(reader, binary.BigEndian, &ar.VolumeHeader); err != nil {
		return nil, err
	}
	logrus.Info(ar.VolumeHeader.Filename())

	// read until no more LDM records are available
	offset := 24
	for {
		ar.LDMOffsets = append(ar.LDMOffsets, offset)
		size, err := ar.AddFromLDMRecord(reader)
		if err == io.EOF {
			ar.LDMOffsets = ar.LDMOffsets[:len(ar.LDMOffsets)-1]
			break
		} else if err != nil {
			return nil, err
		}
		offset += int(size) + 4
	}

	return &ar, nil
}

// ExtractFromFile decodes the named Archive II file.
func ExtractFromFile(filename string) (*Archive, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Extract(file)
}
