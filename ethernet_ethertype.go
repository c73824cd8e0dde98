package tapwire

import "fmt"

// EtherType is the 2-byte type/length field of an ethernet frame. Values
// below 1536 are an 802.3 payload length rather than a protocol tag.
// Variables of this type are intended to be used as immutable values.
type EtherType [2]byte

func (e EtherType) Equal(other EtherType) bool {
	return e[0] == other[0] && e[1] == other[1]
}

// Uint16 returns the field as a big-endian numeric value, the form the
// payload dispatch works on.
func (e EtherType) Uint16() uint16 {
	return uint16(e[0])<<8 | uint16(e[1])
}

func (e EtherType) String() string {
	if v := e.Uint16(); v < etherTypeLengthCutoff {
		return fmt.Sprintf("length(%d)", v)
	}
	return fmt.Sprintf("0x%02x%02x", e[0], e[1])
}

// EtherTypeFromUint16 is the inverse of Uint16.
func EtherTypeFromUint16(v uint16) EtherType {
	return EtherType{byte(v >> 8), byte(v)}
}

// Type/length values below this are an 802.3 length field.
const etherTypeLengthCutoff = 1536

// EtherType values this codec recognizes. IPv6 is listed because the
// dispatch must at least name it when rejecting; its payload is never parsed.
var (
	EtherTypeIPv4 = EtherType{0x08, 0x00}
	EtherTypeARP  = EtherType{0x08, 0x06}
	EtherTypeIPv6 = EtherType{0x86, 0xDD}
)
