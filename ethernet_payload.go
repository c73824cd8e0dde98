package tapwire

import "io"

// EthernetPayload is the layer-3 side of a frame: an IPv4 packet, an ARP
// packet, or an opaque byte sequence. Exactly one concrete type is behind
// the interface; the type determines how the payload re-encodes.
type EthernetPayload interface {
	EtherType() EtherType
	MarshalBinary() ([]byte, error)
}

// OpaquePayload carries bytes the codec does not interpret: empty frames
// (type/length 0) and 802.3 length-framed payloads. Its ethertype is its
// own length.
type OpaquePayload []byte

func (p OpaquePayload) EtherType() EtherType {
	return EtherTypeFromUint16(uint16(len(p)))
}

func (p OpaquePayload) MarshalBinary() ([]byte, error) {
	return p, nil
}

// readEthernetPayload dispatches on the type/length field and consumes
// exactly the bytes belonging to the payload. Trailing stream content is
// left untouched.
func readEthernetPayload(r io.Reader, typeOrLength uint16) (EthernetPayload, error) {
	switch {
	case typeOrLength == 0:
		return OpaquePayload(nil), nil
	case typeOrLength < etherTypeLengthCutoff:
		buf := make([]byte, typeOrLength)
		if err := readExact(r, buf, "802.3 payload"); err != nil {
			return nil, err
		}
		return OpaquePayload(buf), nil
	case typeOrLength == EtherTypeIPv4.Uint16():
		return ReadIpv4Packet(r)
	case typeOrLength == EtherTypeARP.Uint16():
		return ReadArpPacket(r)
	default:
		return nil, &UnsupportedEtherTypeError{EtherType: typeOrLength}
	}
}
