package tapwire

import (
	"encoding/binary"
	"io"
)

type IPv4Protocol uint8

const (
	IPv4ProtocolICMP IPv4Protocol = 1
	IPv4ProtocolTCP  IPv4Protocol = 6
	IPv4ProtocolUDP  IPv4Protocol = 17
)

const (
	ipv4MinHeaderLength = 20
	// The only flags/fragment-offset word this codec accepts or emits:
	// don't-fragment set, offset zero.
	ipv4DontFragment = 0x2 << 13
)

// Ipv4Packet is a parsed IPv4 packet with a minimal 20-byte header. The
// protocol field and payload are carried opaquely; transport layers are not
// decoded here.
type Ipv4Packet struct {
	DSCP           uint8
	ECN            uint8
	Identification uint16
	TTL            uint8
	Protocol       IPv4Protocol
	Source         NetworkAddress
	Destination    NetworkAddress
	Data           []byte
}

// ReadIpv4Packet parses one IPv4 packet from r. Every header byte is folded
// into a running internet checksum as it is read; a valid header folds to
// zero. Options and fragmentation are rejected, options bytes are drained
// before rejecting so the stream position stays well-defined.
func ReadIpv4Packet(r io.Reader) (*Ipv4Packet, error) {
	var sum InternetChecksum

	versionIhl, err := readUint8(r, "ipv4 version/ihl")
	if err != nil {
		return nil, err
	}
	sum.Add([]byte{versionIhl})

	if version := versionIhl >> 4; version != 4 {
		return nil, &MalformedIpv4Error{Field: "version", Value: uint16(version)}
	}

	var headerLength uint16
	switch ihl := versionIhl & 0x0f; {
	case ihl == 0:
		headerLength = ipv4MinHeaderLength
	case ihl < 5:
		return nil, &MalformedIpv4Error{Field: "ihl", Value: uint16(ihl)}
	default:
		headerLength = 4 * uint16(ihl)
	}

	dscpEcn, err := readUint8(r, "ipv4 dscp/ecn")
	if err != nil {
		return nil, err
	}
	sum.Add([]byte{dscpEcn})

	totalLength, err := readUint16(r, "ipv4 total length")
	if err != nil {
		return nil, err
	}
	if totalLength < headerLength {
		return nil, &MalformedIpv4Error{Field: "total length", Value: totalLength}
	}
	sum.Add([]byte{byte(totalLength >> 8), byte(totalLength)})

	identification, err := readUint16(r, "ipv4 identification")
	if err != nil {
		return nil, err
	}
	sum.Add([]byte{byte(identification >> 8), byte(identification)})

	flagsFragment, err := readUint16(r, "ipv4 flags/fragment offset")
	if err != nil {
		return nil, err
	}
	sum.Add([]byte{byte(flagsFragment >> 8), byte(flagsFragment)})
	if flagsFragment != ipv4DontFragment {
		return nil, &MalformedIpv4Error{Field: "flags/fragment offset", Value: flagsFragment}
	}

	ttl, err := readUint8(r, "ipv4 ttl")
	if err != nil {
		return nil, err
	}
	sum.Add([]byte{ttl})

	protocol, err := readUint8(r, "ipv4 protocol")
	if err != nil {
		return nil, err
	}
	sum.Add([]byte{protocol})

	// The checksum field folds in as transmitted; no zeroing on the
	// validation path.
	checksum, err := readUint16(r, "ipv4 header checksum")
	if err != nil {
		return nil, err
	}
	sum.Add([]byte{byte(checksum >> 8), byte(checksum)})

	source, err := readNetworkAddress(r, "ipv4 source address")
	if err != nil {
		return nil, err
	}
	sum.Add(source[:])

	destination, err := readNetworkAddress(r, "ipv4 destination address")
	if err != nil {
		return nil, err
	}
	sum.Add(destination[:])

	if headerLength > ipv4MinHeaderLength {
		options := make([]byte, headerLength-ipv4MinHeaderLength)
		if err := readExact(r, options, "ipv4 options"); err != nil {
			return nil, err
		}
		return nil, &MalformedIpv4Error{Field: "options", Value: headerLength}
	}

	if folded := sum.Sum16(); folded != 0 {
		return nil, &MalformedIpv4Error{Field: "header checksum", Value: folded}
	}

	data := make([]byte, totalLength-headerLength)
	if err := readExact(r, data, "ipv4 payload"); err != nil {
		return nil, err
	}

	return &Ipv4Packet{
		DSCP:           dscpEcn >> 2,
		ECN:            dscpEcn & 0x03,
		Identification: identification,
		TTL:            ttl,
		Protocol:       IPv4Protocol(protocol),
		Source:         source,
		Destination:    destination,
		Data:           data,
	}, nil
}

// MarshalBinary serializes the packet with a fixed 20-byte header. The
// header checksum covers the source and destination addresses even though it
// precedes them on the wire, so the first ten bytes and both addresses are
// accumulated before the checksum is inserted.
func (p *Ipv4Packet) MarshalBinary() ([]byte, error) {
	if p.ECN > 0x03 {
		return nil, &InvalidFieldError{Field: "ipv4 ecn", Value: int(p.ECN)}
	}
	if p.DSCP > 0x3f {
		return nil, &InvalidFieldError{Field: "ipv4 dscp", Value: int(p.DSCP)}
	}
	if len(p.Data) > 0xffff-ipv4MinHeaderLength {
		return nil, &InvalidFieldError{Field: "ipv4 payload length", Value: len(p.Data)}
	}

	header := make([]byte, ipv4MinHeaderLength)
	header[0] = 4<<4 | 5
	header[1] = p.DSCP<<2 | p.ECN
	binary.BigEndian.PutUint16(header[2:4], uint16(ipv4MinHeaderLength+len(p.Data)))
	binary.BigEndian.PutUint16(header[4:6], p.Identification)
	binary.BigEndian.PutUint16(header[6:8], ipv4DontFragment)
	header[8] = p.TTL
	header[9] = byte(p.Protocol)
	copy(header[12:16], p.Source[:])
	copy(header[16:20], p.Destination[:])

	var sum InternetChecksum
	sum.Add(header[:10])
	sum.Add(header[12:20])
	binary.BigEndian.PutUint16(header[10:12], sum.Sum16())

	return append(header, p.Data...), nil
}

func (p *Ipv4Packet) EtherType() EtherType {
	return EtherTypeIPv4
}
