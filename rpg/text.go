package rpg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TextAndSpecialSymbolPacket carries text (codes 1 and 8), special symbols
// (code 2) or storm IDs (code 15) positioned on the product grid. Only code 8
// carries a color level value; the length field covers everything after it.
type TextAndSpecialSymbolPacket struct {
	PacketCode uint16
	Value      uint16 // color level, code 8 only
	I, J       int16  // start of text, in units of 1/4 km from the radar
	Text       string
}

func (p *TextAndSpecialSymbolPacket) Code() uint16 { return p.PacketCode }

func decodeTextAndSpecialSymbol(r io.ReadSeeker) (Packet, error) {
	var hdr struct {
		Code   uint16
		Length uint16
	}
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	p := &TextAndSpecialSymbolPacket{PacketCode: hdr.Code}
	remaining := int(hdr.Length)

	if hdr.Code == 8 {
		if err := binary.Read(r, binary.BigEndian, &p.Value); err != nil {
			return nil, err
		}
		remaining -= 2
	}

	var pos struct{ I, J int16 }
	if err := binary.Read(r, binary.BigEndian, &pos); err != nil {
		return nil, err
	}
	p.I, p.J = pos.I, pos.J
	remaining -= 4

	if remaining < 0 {
		return nil, fmt.Errorf("text packet %d: malformed length %d", hdr.Code, hdr.Length)
	}

	text := make([]byte, remaining)
	if _, err := io.ReadFull(r, text); err != nil {
		return nil, err
	}
	p.Text = string(text)

	return p, nil
}
