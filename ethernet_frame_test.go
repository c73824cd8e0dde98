package tapwire_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapwire"
)

// A real mDNS announcement captured from a TAP device: 14 bytes of ethernet
// header followed by a 163-byte IPv4 packet carrying UDP. No trailing FCS.
var mdnsFrame = []byte{
	1, 0, 94, 0, 0, 251, 54, 31, 184, 168, 27, 197, 8, 0, 69, 0, 0, 163, 172, 55, 64, 0,
	255, 17, 45, 105, 192, 168, 0, 5, 224, 0, 0, 251, 20, 233, 20, 233, 0, 143, 88, 51, 0,
	0, 132, 0, 0, 0, 0, 4, 0, 0, 0, 0, 11, 80, 97, 115, 115, 105, 109, 45, 70, 52, 67, 56,
	6, 95, 99, 97, 99, 104, 101, 4, 95, 116, 99, 112, 5, 108, 111, 99, 97, 108, 0, 0, 16,
	128, 1, 0, 0, 17, 148, 0, 1, 0, 6, 102, 101, 100, 111, 114, 97, 192, 36, 0, 1, 128, 1,
	0, 0, 0, 120, 0, 4, 192, 168, 0, 5, 1, 53, 1, 48, 3, 49, 54, 56, 3, 49, 57, 50, 7, 105,
	110, 45, 97, 100, 100, 114, 4, 97, 114, 112, 97, 0, 0, 12, 128, 1, 0, 0, 0, 120, 0, 2,
	192, 54, 192, 12, 0, 33, 128, 1, 0, 0, 0, 120, 0, 8, 0, 0, 0, 0, 107, 108, 192, 54,
}

func mustParseMAC(t *testing.T, s string) tapwire.HardwareAddress {
	t.Helper()
	mac, err := tapwire.ParseHardwareAddress(s)
	require.NoError(t, err)
	return mac
}

func mustParseIP(t *testing.T, s string) tapwire.NetworkAddress {
	t.Helper()
	ip, err := tapwire.ParseNetworkAddress(s)
	require.NoError(t, err)
	return ip
}

func TestReadEthernetFrameMdns(t *testing.T) {
	frame, err := tapwire.ReadEthernetFrame(bytes.NewReader(mdnsFrame))
	require.NoError(t, err)

	assert.Equal(t, tapwire.EtherTypeIPv4, frame.EtherType)
	assert.Equal(t, "01:00:5E:00:00:FB", frame.Destination.String())
	assert.Equal(t, "36:1F:B8:A8:1B:C5", frame.Source.String())

	packet, ok := frame.Payload.(*tapwire.Ipv4Packet)
	require.True(t, ok, "expected an IPv4 payload")
	assert.Equal(t, "192.168.0.5", packet.Source.String())
	assert.Equal(t, "224.0.0.251", packet.Destination.String())
}

func TestReadEthernetFrameLengthFramed(t *testing.T) {
	// type/length 0x0005: an 802.3 length field. Exactly 5 payload bytes
	// must be consumed, no more.
	stream := bytes.NewReader([]byte{
		7, 8, 9, 10, 11, 12,
		1, 2, 3, 4, 5, 6,
		0x00, 0x05,
		0xde, 0xad, 0xbe, 0xef, 0x42,
		0x99, 0x99, // trailing bytes the decoder must not touch
	})

	frame, err := tapwire.ReadEthernetFrame(stream)
	require.NoError(t, err)

	payload, ok := frame.Payload.(tapwire.OpaquePayload)
	require.True(t, ok)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef, 0x42}, []byte(payload))
	assert.Equal(t, 2, stream.Len())
}

func TestReadEthernetFrameEmpty(t *testing.T) {
	frame, err := tapwire.ReadEthernetFrame(bytes.NewReader([]byte{
		7, 8, 9, 10, 11, 12,
		1, 2, 3, 4, 5, 6,
		0x00, 0x00,
	}))
	require.NoError(t, err)

	payload, ok := frame.Payload.(tapwire.OpaquePayload)
	require.True(t, ok)
	assert.Empty(t, payload)
}

func TestReadEthernetFrameUnsupportedEtherType(t *testing.T) {
	_, err := tapwire.ReadEthernetFrame(bytes.NewReader([]byte{
		7, 8, 9, 10, 11, 12,
		1, 2, 3, 4, 5, 6,
		0x12, 0x34,
	}))

	var etErr *tapwire.UnsupportedEtherTypeError
	require.ErrorAs(t, err, &etErr)
	assert.Equal(t, uint16(0x1234), etErr.EtherType)
}

func TestReadEthernetFrameIPv6IsUnsupported(t *testing.T) {
	_, err := tapwire.ReadEthernetFrame(bytes.NewReader([]byte{
		7, 8, 9, 10, 11, 12,
		1, 2, 3, 4, 5, 6,
		0x86, 0xdd,
	}))

	var etErr *tapwire.UnsupportedEtherTypeError
	require.ErrorAs(t, err, &etErr)
	assert.Equal(t, tapwire.EtherTypeIPv6.Uint16(), etErr.EtherType)
}

func TestReadEthernetFrameTruncatedHeader(t *testing.T) {
	_, err := tapwire.ReadEthernetFrame(bytes.NewReader([]byte{1, 2, 3}))

	var truncErr *tapwire.TruncatedError
	require.ErrorAs(t, err, &truncErr)
}

func TestMarshalEthernetFrameAppendsFcs(t *testing.T) {
	frame := tapwire.NewEthernetFrame(
		mustParseMAC(t, "07:08:09:0a:0b:0c"),
		mustParseMAC(t, "01:02:03:04:05:06"),
		tapwire.OpaquePayload{3, 1, 4, 1},
	)

	data, err := frame.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, data, 14+4+4)

	body, fcs := data[:len(data)-4], data[len(data)-4:]
	assert.Equal(t, crc32.ChecksumIEEE(body), binary.BigEndian.Uint32(fcs))
}

func TestEthernetFrameRoundTrip(t *testing.T) {
	frame := tapwire.NewEthernetFrame(
		tapwire.BroadcastMAC,
		mustParseMAC(t, "36:1f:b8:a8:1b:c5"),
		&tapwire.ArpPacket{
			Opcode:    tapwire.ArpOpcodeRequest,
			SenderMac: mustParseMAC(t, "36:1f:b8:a8:1b:c5"),
			SenderIP:  mustParseIP(t, "192.168.0.5"),
			TargetMac: tapwire.ZeroMAC,
			TargetIP:  mustParseIP(t, "192.168.0.4"),
		},
	)

	data, err := frame.MarshalBinary()
	require.NoError(t, err)

	stream := bytes.NewReader(data)
	decoded, err := tapwire.ReadEthernetFrame(stream)
	require.NoError(t, err)

	assert.Equal(t, frame, decoded)
	// The decoder leaves the trailing frame check sequence unconsumed.
	assert.Equal(t, 4, stream.Len())
}

func TestMarshalEthernetFrameLengthMismatch(t *testing.T) {
	frame := &tapwire.EthernetFrame{
		Destination: mustParseMAC(t, "07:08:09:0a:0b:0c"),
		Source:      mustParseMAC(t, "01:02:03:04:05:06"),
		EtherType:   tapwire.EtherTypeFromUint16(9),
		Payload:     tapwire.OpaquePayload{1, 2, 3},
	}

	_, err := frame.MarshalBinary()

	var fieldErr *tapwire.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
}

func TestMarshalEthernetFramePropagatesPayloadErrors(t *testing.T) {
	frame := tapwire.NewEthernetFrame(
		tapwire.BroadcastMAC,
		mustParseMAC(t, "01:02:03:04:05:06"),
		&tapwire.Ipv4Packet{ECN: 7},
	)

	_, err := frame.MarshalBinary()

	var fieldErr *tapwire.InvalidFieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "ipv4 ecn", fieldErr.Field)
}
