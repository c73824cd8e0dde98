package tapwire

import (
	"fmt"
	"io"
	"net"
)

// NetworkAddress is an IPv4 address, stored as four big-endian raw bytes.
type NetworkAddress [4]byte

// String renders the address in dotted-decimal form.
func (a NetworkAddress) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}

// IP converts to the stdlib representation.
func (a NetworkAddress) IP() net.IP {
	return net.IPv4(a[0], a[1], a[2], a[3])
}

// Uint32 returns the address interpreted as a big-endian 32-bit value.
func (a NetworkAddress) Uint32() uint32 {
	return uint32(a[0])<<24 | uint32(a[1])<<16 | uint32(a[2])<<8 | uint32(a[3])
}

// NetworkAddressFromUint32 is the inverse of Uint32.
func NetworkAddressFromUint32(v uint32) NetworkAddress {
	return NetworkAddress{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// ParseNetworkAddress parses a dotted-decimal IPv4 address.
func ParseNetworkAddress(s string) (NetworkAddress, error) {
	ip := net.ParseIP(s)
	if ip == nil || ip.To4() == nil {
		return NetworkAddress{}, fmt.Errorf("not an IPv4 address: %q", s)
	}
	var a NetworkAddress
	copy(a[:], ip.To4())
	return a, nil
}

func readNetworkAddress(r io.Reader, what string) (NetworkAddress, error) {
	var a NetworkAddress
	if err := readExact(r, a[:], what); err != nil {
		return NetworkAddress{}, err
	}
	return a, nil
}
