package rpg

import (
	"encoding/binary"
	"io"
)

// RasterDataPacket (codes 0xBA07 and 0xBA0F) holds a rectangular grid of
// run-length encoded rows.
type RasterDataPacket struct {
	PacketCode        uint16
	ICoordinate       int16
	JCoordinate       int16
	XScaleInt         int16
	XScaleFrac        int16
	YScaleInt         int16
	YScaleFrac        int16
	PackingDescriptor uint16
	Rows              [][]uint8
}

func (p *RasterDataPacket) Code() uint16 { return p.PacketCode }

func decodeRasterData(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code              uint16
		OpFlag1           uint16 // always 0x8000
		OpFlag2           uint16 // always 0x00C0
		ICoordinate       int16
		JCoordinate       int16
		XScaleInt         int16
		XScaleFrac        int16
		YScaleInt         int16
		YScaleFrac        int16
		RowCount          uint16
		PackingDescriptor uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	p := &RasterDataPacket{
		PacketCode:        hdr.Code,
		ICoordinate:       hdr.ICoordinate,
		JCoordinate:       hdr.JCoordinate,
		XScaleInt:         hdr.XScaleInt,
		XScaleFrac:        hdr.XScaleFrac,
		YScaleInt:         hdr.YScaleInt,
		YScaleFrac:        hdr.YScaleFrac,
		PackingDescriptor: hdr.PackingDescriptor,
		Rows:              make([][]uint8, 0, hdr.RowCount),
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
