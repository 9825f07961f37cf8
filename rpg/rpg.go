// Package rpg decodes RPG graphic product packets as found in the symbology
// layers of Level III products.
//
// The packet formats are documented in the RPG to Class 1 User ICD:
//  • https://www.roc.noaa.gov/wsr88d/PublicDocs/ICDs/2620001Y.pdf
//
// Every packet starts with a big-endian uint16 packet code. DecodePacket peeks
// the code, resolves a decoder from the packet registry and hands it the
// stream positioned at the code field. Each decoder consumes exactly its
// packet's declared length, including any internal length-prefixed rows or
// radials, so the stream lands on the next packet.
package rpg

import (
	"encoding/binary"
	"io"

	"github.com/sirupsen/logrus"
)

// Packet is one decoded graphic product packet.
type Packet interface {
	// Code returns the 16-bit packet type code this packet was decoded from.
	Code() uint16
}

// decodeFunc decodes one packet with the cursor positioned at the packet code.
type decodeFunc func(r io.ReadSeeker) (Packet, error)

// registry maps packet codes to decoders. Built once, read-only thereafter.
var registry = map[uint16]decodeFunc{
	1:      decodeTextAndSpecialSymbol,
	2:      decodeTextAndSpecialSymbol,
	6:      decodeLinkedVector,
	7:      decodeUnlinkedVector,
	8:      decodeTextAndSpecialSymbol,
	9:      decodeLinkedVector,
	10:     decodeUnlinkedVector,
	15:     decodeTextAndSpecialSymbol,
	16:     decodeRadialData,
	17:     decodeDigitalPrecipitationDataArray,
	18:     decodePrecipitationRateDataArray,
	0x0802: decodeSetColorLevel,
	0x0E03: decodeLinkedContourVector,
	0x3501: decodeUnlinkedContourVector,
	0xAF1F: decodeRadialData,
	0xBA07: decodeRasterData,
	0xBA0F: decodeRasterData,
}

// DecodePacket decodes the next packet from the stream.
//
// It returns (nil, nil) when the stream is exhausted, and also when the peeked
// code has no registered decoder; in the unknown-code case a warning is logged
// and the cursor is left at the code field. Note the unconsumed packet payload
// still follows, so a caller that cannot bound its reads some other way (eg by
// the enclosing layer length) cannot resynchronize after an unknown code.
func DecodePacket(r io.ReadSeeker) (Packet, error) {
	var code uint16
	if err := binary.Read(r, binary.BigEndian, &code); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, nil
		}
		return nil, err
	}

	if _, err := r.Seek(-2, io.SeekCurrent); err != nil {
		return nil, err
	}

	decode, ok := registry[code]
	if !ok {
		logrus.Warnf("unknown packet code: %d (0x%04X)", code, code)
		return nil, nil
	}

	logrus.Tracef("found packet code: %d (0x%04X)", code, code)
	return decode(r)
}

// DecodeAll decodes packets until the stream is exhausted, an unknown code is
// hit, or a decoder fails.
func DecodeAll(r io.ReadSeeker) ([]Packet, error) {
	var packets []Packet
	for {
		p, err := DecodePacket(r)
		if err != nil {
			return packets, err
		}
		if p == nil {
			return packets, nil
		}
		packets = append(packets, p)
	}
}
