package tapwire

import (
	"fmt"
	"io"
	"net"
)

// HardwareAddress is a 48-bit ethernet MAC address.
type HardwareAddress [6]byte

var (
	BroadcastMAC = HardwareAddress{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	ZeroMAC      = HardwareAddress{}
)

// String renders the address as colon-separated uppercase hex pairs,
// e.g. "03:01:04:01:05:09".
func (a HardwareAddress) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[0], a[1], a[2], a[3], a[4], a[5])
}

// HardwareAddr converts to the stdlib representation.
func (a HardwareAddress) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(a[:])
}

// ParseHardwareAddress parses any form accepted by net.ParseMAC, as long as
// it is a 6-byte EUI-48 address.
func ParseHardwareAddress(s string) (HardwareAddress, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return HardwareAddress{}, err
	}
	if len(hw) != 6 {
		return HardwareAddress{}, fmt.Errorf("not a 6-byte hardware address: %q", s)
	}
	var a HardwareAddress
	copy(a[:], hw)
	return a, nil
}

func readHardwareAddress(r io.Reader, what string) (HardwareAddress, error) {
	var a HardwareAddress
	if err := readExact(r, a[:], what); err != nil {
		return HardwareAddress{}, err
	}
	return a, nil
}
