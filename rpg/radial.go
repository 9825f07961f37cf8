package rpg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// RadialDataPacket holds one full scan of radial data centered on the
// product grid. Code 0xAF1F radials are run-length encoded at 4 bits per
// bin; code 16 (digital radial data array) radials are raw 8-bit levels.
// Both decode to one level per range bin.
type RadialDataPacket struct {
	PacketCode    uint16
	FirstBinIndex int16
	BinCount      int16
	ICenter       int16
	JCenter       int16
	ScaleFactor   int16
	Radials       []RadialDataRadial
}

func (p *RadialDataPacket) Code() uint16 { return p.PacketCode }

// RadialDataRadial is one azimuth slice of a RadialDataPacket. Angles are in
// tenths of degrees.
type RadialDataRadial struct {
	StartAngle int16
	AngleDelta int16
	Levels     []uint8
}

func decodeRadialData(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code          uint16
		FirstBinIndex int16
		BinCount      int16
		ICenter       int16
		JCenter       int16
		ScaleFactor   int16
		RadialCount   int16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	if hdr.BinCount < 0 || hdr.RadialCount < 0 {
		return nil, fmt.Errorf("radial data packet %d: malformed counts (bins %d, radials %d)",
			hdr.Code, hdr.BinCount, hdr.RadialCount)
	}

	p := &RadialDataPacket{
		PacketCode:    hdr.Code,
		FirstBinIndex: hdr.FirstBinIndex,
		BinCount:      hdr.BinCount,
		ICenter:       hdr.ICenter,
		JCenter:       hdr.JCenter,
		ScaleFactor:   hdr.ScaleFactor,
		Radials:       make([]RadialDataRadial, 0, hdr.RadialCount),
	}

	for i := int16(0); i < hdr.RadialCount; i++ {
		var radialHdr struct {
			// RLE halfword count for 0xAF1F, byte count for code 16
			Length     uint16
			StartAngle int16
			AngleDelta int16
		}
		if err := binary.Read(r, binary.BigEndian, &radialHdr); err != nil {
			return nil, err
		}

		radial := RadialDataRadial{
			StartAngle: radialHdr.StartAngle,
			AngleDelta: radialHdr.AngleDelta,
		}

		if hdr.Code == 16 {
			radial.Levels = make([]uint8, radialHdr.Length)
			if _, err := io.ReadFull(r, radial.Levels); err != nil {
				return nil, err
			}
		} else {
			encoded := make([]uint8, int(radialHdr.Length)*2)
			if _, err := io.ReadFull(r, encoded); err != nil {
				return nil, err
			}
			radial.Levels = expandNibbleRuns(encoded)
		}

		p.Radials = append(p.Radials, radial)
	}

	return p, nil
}
