package tapwire

import "fmt"

// TruncatedError is returned when the byte stream ends before a required
// field or payload was fully read.
type TruncatedError struct {
	What string
}

func (e *TruncatedError) Error() string {
	return "truncated " + e.What
}

// UnsupportedEtherTypeError is returned for a type/length value that is
// neither an 802.3 length nor a supported ethertype.
type UnsupportedEtherTypeError struct {
	EtherType uint16
}

func (e *UnsupportedEtherTypeError) Error() string {
	return fmt.Sprintf("unsupported ethertype 0x%04x", e.EtherType)
}

// MalformedArpError is returned when a fixed ARP field does not carry the
// single value this codec supports.
type MalformedArpError struct {
	Field string
	Value uint16
}

func (e *MalformedArpError) Error() string {
	return fmt.Sprintf("malformed arp packet: %s 0x%04x not supported", e.Field, e.Value)
}

// MalformedIpv4Error is returned when an IPv4 header fails validation.
type MalformedIpv4Error struct {
	Field string
	Value uint16
}

func (e *MalformedIpv4Error) Error() string {
	return fmt.Sprintf("malformed ipv4 packet: bad %s 0x%04x", e.Field, e.Value)
}

// InvalidFieldError is returned by an encoder when a field value cannot be
// represented on the wire.
type InvalidFieldError struct {
	Field string
	Value int
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}
