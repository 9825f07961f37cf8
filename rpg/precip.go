package rpg

import (
	"encoding/binary"
	"io"
)

// DigitalPrecipitationDataArrayPacket (code 17) carries precipitation values
// on the 1/4 LFM grid, one run-length encoded row per grid row. Each run is a
// (run, level) byte pair.
type DigitalPrecipitationDataArrayPacket struct {
	PacketCode uint16
	BoxesInRow uint16
	RowCount   uint16
	Rows       [][]uint8 // decoded levels, one slice per row
}

func (p *DigitalPrecipitationDataArrayPacket) Code() uint16 { return p.PacketCode }

func decodeDigitalPrecipitationDataArray(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code       uint16
		Spare1     uint16
		Spare2     uint16
		BoxesInRow uint16
		RowCount   uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	p := &DigitalPrecipitationDataArrayPacket{
		PacketCode: hdr.Code,
		BoxesInRow: hdr.BoxesInRow,
		RowCount:   hdr.RowCount,
		Rows:       make([][]uint8, 0, hdr.RowCount),
	}

	for row := uint16(0); row < hdr.RowCount; row++ {
		var byteCount uint16
		if err := binary.Read(r, binary.BigEndian, &byteCount); err != nil {
			return nil, err
		}

		encoded := make([]uint8, byteCount)
		if _, err := io.ReadFull(r, encoded); err != nil {
			return nil, err
		}

		// (run, level) byte pairs
		decoded := make([]uint8, 0, hdr.BoxesInRow)
		for i := 0; i+1 < len(encoded); i += 2 {
			run := encoded[i]
			level := encoded[i+1]
			for j := uint8(0); j < run; j++ {
				decoded = append(decoded, level)
			}
		}

		p.Rows = append(p.Rows, decoded)
	}

	return p, nil
}

// PrecipitationRateDataArrayPacket (code 18) carries precipitation rates on
// the 1/4 LFM grid. Rows are run-length encoded in single bytes: high nibble
// run, low nibble level.
type PrecipitationRateDataArrayPacket struct {
	PacketCode uint16
	BoxesInRow uint16
	RowCount   uint16
	Rows       [][]uint8
}

func (p *PrecipitationRateDataArrayPacket) Code() uint16 { return p.PacketCode }

func decodePrecipitationRateDataArray(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code       uint16
		Spare1     uint16
		Spare2     uint16
		BoxesInRow uint16
		RowCount   uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	p := &PrecipitationRateDataArrayPacket{
		PacketCode: hdr.Code,
		BoxesInRow: hdr.BoxesInRow,
		RowCount:   hdr.RowCount,
		Rows:       make([][]uint8, 0, hdr.RowCount),
	}

	for row := uint16(0); row < hdr.RowCount; row++ {
		var byteCount uint16
		if err := binary.Read(r, binary.BigEndian, &byteCount); err != nil {
			return nil, err
		}

		encoded := make([]uint8, byteCount)
		if _, err := io.ReadFull(r, encoded); err != nil {
			return nil, err
		}

		p.Rows = append(p.Rows, expandNibbleRuns(encoded))
	}

	return p, nil
}

// expandNibbleRuns decodes the standard RPG run-length encoding: each byte
// holds a 4-bit run count in the high nibble and a 4-bit level in the low.
func expandNibbleRuns(encoded []uint8) []uint8 {
	decoded := []uint8{}
	for _, b := range encoded {
		level := b & 0x0F
		runs := (b & 0xF0) >> 4
		for i := uint8(0); i < runs; i++ {
			decoded = append(decoded, level)
		}
	}
	return decoded
}
