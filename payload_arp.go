package tapwire

import "io"

type ArpHardwareType uint16

const (
	ArpHardwareTypeEthernet ArpHardwareType = 1
)

type ArpOpcode uint16

const (
	ArpOpcodeRequest ArpOpcode = 1
	ArpOpcodeReply   ArpOpcode = 2
)

// Wire constants every supported ARP packet carries. We only ever speak
// ethernet and IPv4, so hardware/protocol type and lengths are fixed; the
// decoder rejects anything else and the encoder always emits these.
const (
	arpHardwareLength = 6
	arpProtocolLength = 4
)

// ArpPacket is an ethernet/IPv4 ARP packet. The fixed wire fields are not
// represented; only the operation and the four addresses vary.
type ArpPacket struct {
	Opcode    ArpOpcode
	SenderMac HardwareAddress
	SenderIP  NetworkAddress
	TargetMac HardwareAddress
	TargetIP  NetworkAddress
}

// ReadArpPacket parses one ARP packet from r, consuming exactly 28 bytes on
// success. Each fixed-field mismatch is a distinct MalformedArpError.
func ReadArpPacket(r io.Reader) (*ArpPacket, error) {
	hardwareType, err := readUint16(r, "arp hardware type")
	if err != nil {
		return nil, err
	}
	protocolType, err := readUint16(r, "arp protocol type")
	if err != nil {
		return nil, err
	}
	hardwareLength, err := readUint8(r, "arp hardware length")
	if err != nil {
		return nil, err
	}
	protocolLength, err := readUint8(r, "arp protocol length")
	if err != nil {
		return nil, err
	}

	if hardwareType != uint16(ArpHardwareTypeEthernet) {
		return nil, &MalformedArpError{Field: "hardware type", Value: hardwareType}
	}
	if protocolType != EtherTypeIPv4.Uint16() {
		return nil, &MalformedArpError{Field: "protocol type", Value: protocolType}
	}
	if hardwareLength != arpHardwareLength {
		return nil, &MalformedArpError{Field: "hardware length", Value: uint16(hardwareLength)}
	}
	if protocolLength != arpProtocolLength {
		return nil, &MalformedArpError{Field: "protocol length", Value: uint16(protocolLength)}
	}

	opcode, err := readUint16(r, "arp operation")
	if err != nil {
		return nil, err
	}
	if opcode != uint16(ArpOpcodeRequest) && opcode != uint16(ArpOpcodeReply) {
		return nil, &MalformedArpError{Field: "operation", Value: opcode}
	}

	packet := &ArpPacket{Opcode: ArpOpcode(opcode)}
	if packet.SenderMac, err = readHardwareAddress(r, "arp sender hardware address"); err != nil {
		return nil, err
	}
	if packet.SenderIP, err = readNetworkAddress(r, "arp sender protocol address"); err != nil {
		return nil, err
	}
	if packet.TargetMac, err = readHardwareAddress(r, "arp target hardware address"); err != nil {
		return nil, err
	}
	if packet.TargetIP, err = readNetworkAddress(r, "arp target protocol address"); err != nil {
		return nil, err
	}

	return packet, nil
}

// MarshalBinary emits the fixed constants, the operation, and the four
// address fields. ReadArpPacket(MarshalBinary(p)) reproduces p exactly.
func (a *ArpPacket) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 28)
	buf = append(buf,
		byte(ArpHardwareTypeEthernet>>8), byte(ArpHardwareTypeEthernet),
		EtherTypeIPv4[0], EtherTypeIPv4[1],
		arpHardwareLength, arpProtocolLength,
		byte(a.Opcode>>8), byte(a.Opcode),
	)
	buf = append(buf, a.SenderMac[:]...)
	buf = append(buf, a.SenderIP[:]...)
	buf = append(buf, a.TargetMac[:]...)
	buf = append(buf, a.TargetIP[:]...)
	return buf, nil
}

func (a *ArpPacket) EtherType() EtherType {
	return EtherTypeARP
}
