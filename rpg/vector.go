package rpg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Point is a position on the product grid in units of 1/4 km from the radar.
type Point struct {
	I, J int16
}

// Vector is a line segment between two grid points.
type Vector struct {
	I1, J1, I2, J2 int16
}

// LinkedVectorPacket (codes 6 and 9) draws a connected polyline from a start
// point through each subsequent end point. Code 9 carries a color level value.
type LinkedVectorPacket struct {
	PacketCode uint16
	Value      uint16 // color level, code 9 only
	Start      Point
	Points     []Point
}

func (p *LinkedVectorPacket) Code() uint16 { return p.PacketCode }

func decodeLinkedVector(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code   uint16
		Length uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	p := &LinkedVectorPacket{PacketCode: hdr.Code}
	remaining := int(hdr.Length)

	if hdr.Code == 9 {
		if err := binary.Read(r, binary.BigEndian, &p.Value); err != nil {
			return nil, err
		}
		remaining -= 2
	}

	if err := binary.Read(r, binary.BigEndian, &p.Start); err != nil {
		return nil, err
	}
	remaining -= 4

	if remaining < 0 || remaining%4 != 0 {
		return nil, fmt.Errorf("linked vector packet %d: malformed length %d", hdr.Code, hdr.Length)
	}

	p.Points = make([]Point, remaining/4)
	if err := binary.Read(r, binary.BigEndian, p.Points); err != nil {
		return nil, err
	}

	return p, nil
}

// UnlinkedVectorPacket (codes 7 and 10) draws independent line segments.
// Code 10 carries a color level value.
type UnlinkedVectorPacket struct {
	PacketCode uint16
	Value      uint16 // color level, code 10 only
	Vectors    []Vector
}

func (p *UnlinkedVectorPacket) Code() uint16 { return p.PacketCode }

func decodeUnlinkedVector(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code   uint16
		Length uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	p := &UnlinkedVectorPacket{PacketCode: hdr.Code}
	remaining := int(hdr.Length)

	if hdr.Code == 10 {
		if err := binary.Read(r, binary.BigEndian, &p.Value); err != nil {
			return nil, err
		}
		remaining -= 2
	}

	if remaining < 0 || remaining%8 != 0 {
		return nil, fmt.Errorf("unlinked vector packet %d: malformed length %d", hdr.Code, hdr.Length)
	}

	p.Vectors = make([]Vector, remaining/8)
	if err := binary.Read(r, binary.BigEndian, p.Vectors); err != nil {
		return nil, err
	}

	return p, nil
}
