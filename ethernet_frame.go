package tapwire

import (
	"encoding/binary"
	"hash/crc32"
	"io"
)

// EthernetFrame is a decoded ethernet frame: two hardware addresses, the
// type/length field, and a typed layer-3 payload.
type EthernetFrame struct {
	Destination HardwareAddress
	Source      HardwareAddress
	EtherType   EtherType
	Payload     EthernetPayload
}

// NewEthernetFrame builds a frame for encoding; the type/length field is
// derived from the payload.
func NewEthernetFrame(dst HardwareAddress, src HardwareAddress, payload EthernetPayload) *EthernetFrame {
	return &EthernetFrame{
		Destination: dst,
		Source:      src,
		EtherType:   payload.EtherType(),
		Payload:     payload,
	}
}

// ReadEthernetFrame parses one frame from r: destination, source, the
// type/length field, then the payload via the codec that field selects.
//
// Nothing past the payload is consumed. In particular a trailing frame check
// sequence, such as the one MarshalBinary appends, is left in the stream
// unread and unverified; callers wanting strict FCS checking must read the
// four bytes and compare themselves.
func ReadEthernetFrame(r io.Reader) (*EthernetFrame, error) {
	dst, err := readHardwareAddress(r, "ethernet destination")
	if err != nil {
		return nil, err
	}
	src, err := readHardwareAddress(r, "ethernet source")
	if err != nil {
		return nil, err
	}
	typeOrLength, err := readUint16(r, "ethernet type/length")
	if err != nil {
		return nil, err
	}

	payload, err := readEthernetPayload(r, typeOrLength)
	if err != nil {
		return nil, err
	}

	return &EthernetFrame{
		Destination: dst,
		Source:      src,
		EtherType:   EtherTypeFromUint16(typeOrLength),
		Payload:     payload,
	}, nil
}

// MarshalBinary serializes the frame and appends the CRC-32 (ISO-HDLC) frame
// check sequence over everything preceding it, written big-endian.
func (f *EthernetFrame) MarshalBinary() ([]byte, error) {
	payload, err := f.Payload.MarshalBinary()
	if err != nil {
		return nil, err
	}

	// An 802.3 length field must agree with the payload it frames.
	if typeOrLength := f.EtherType.Uint16(); typeOrLength < etherTypeLengthCutoff {
		if int(typeOrLength) != len(payload) {
			return nil, &InvalidFieldError{Field: "ethernet type/length", Value: len(payload)}
		}
	}

	buf := make([]byte, 0, 6+6+2+len(payload)+4)
	buf = append(buf, f.Destination[:]...)
	buf = append(buf, f.Source[:]...)
	buf = append(buf, f.EtherType[0], f.EtherType[1])
	buf = append(buf, payload...)

	var fcs [4]byte
	binary.BigEndian.PutUint32(fcs[:], crc32.ChecksumIEEE(buf))
	return append(buf, fcs[:]...), nil
}
