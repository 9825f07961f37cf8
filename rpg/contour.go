package rpg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SetColorLevelPacket (code 0x0802) sets the color level for subsequent
// contour vector packets.
type SetColorLevelPacket struct {
	PacketCode uint16
	Value      uint16
}

func (p *SetColorLevelPacket) Code() uint16 { return p.PacketCode }

func decodeSetColorLevel(r io.ReadSeeker) (Packet, error) {
	var wire struct {
		Code      uint16
		Indicator uint16 // always 0x0002
		Value     uint16
	}
	if err := binary.Read(r, binary.BigEndian, &wire); err != nil {
		return nil, err
	}

	if wire.Indicator != 0x0002 {
		return nil, fmt.Errorf("set color level: bad value indicator 0x%04X", wire.Indicator)
	}

	return &SetColorLevelPacket{PacketCode: wire.Code, Value: wire.Value}, nil
}

// LinkedContourVectorPacket (code 0x0E03) draws a connected contour from an
// initial point through each subsequent point.
type LinkedContourVectorPacket struct {
	PacketCode uint16
	Start      Point
	Points     []Point
}

func (p *LinkedContourVectorPacket) Code() uint16 { return p.PacketCode }

func decodeLinkedContourVector(r io.ReadSeeker) (Packet, error) {
	var wire struct {
		Code      uint16
		Indicator uint16 // always 0x8000
		I, J      int16
		Length    uint16
	}
	if err := binary.Read(r, binary.BigEndian, &wire); err != nil {
		return nil, err
	}

	if wire.Indicator != 0x8000 {
		return nil, fmt.Errorf("linked contour vector: bad initial point indicator 0x%04X", wire.Indicator)
	}
	if wire.Length%4 != 0 {
		return nil, fmt.Errorf("linked contour vector: malformed length %d", wire.Length)
	}

	p := &LinkedContourVectorPacket{
		PacketCode: wire.Code,
		Start:      Point{I: wire.I, J: wire.J},
		Points:     make([]Point, wire.Length/4),
	}
	if err := binary.Read(r, binary.BigEndian, p.Points); err != nil {
		return nil, err
	}

	return p, nil
}

// UnlinkedContourVectorPacket (code 0x3501) draws independent contour segments.
type UnlinkedContourVectorPacket struct {
	PacketCode uint16
	Vectors    []Vector
}

func (p *UnlinkedContourVectorPacket) Code() uint16 { return p.PacketCode }

func decodeUnlinkedContourVector(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code   uint16
		Length uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	if hdr.Length%8 != 0 {
		return nil, fmt.Errorf("unlinked contour vector: malformed length %d", hdr.Length)
	}

	p := &UnlinkedContourVectorPacket{
		PacketCode: hdr.Code,
		Vectors:    make([]Vector, hdr.Length/8),
	}
	if err := binary.Read(r, binary.BigEndian, p.Vectors); err != nil {
		return nil, err
	}

	return p, nil
}
