package tapwire

import (
	"bytes"
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
)

// PacketSource yields the raw bytes of one captured frame per call and
// reports io.EOF when the capture ends.
type PacketSource interface {
	ReadPacketData() ([]byte, error)
}

// PacketSink accepts the raw bytes of one serialized frame per call.
type PacketSink interface {
	WritePacketData(data []byte) error
}

// Sniffer drains a PacketSource, decoding every frame independently. A frame
// that fails to decode is logged and skipped; the codec holds no state
// across frames, so one bad frame never affects the next.
type Sniffer struct {
	Source PacketSource

	// Dump, if set, receives the raw bytes of every captured frame,
	// decodable or not.
	Dump PacketSink

	// OnFrame, if set, receives every successfully decoded frame.
	// Otherwise a per-frame summary is logged.
	OnFrame func(frame *EthernetFrame)
}

// Run processes frames until the source reports io.EOF. Any other source or
// dump error is terminal and returned as-is.
func (s *Sniffer) Run() error {
	for {
		raw, err := s.Source.ReadPacketData()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if s.Dump != nil {
			if err := s.Dump.WritePacketData(raw); err != nil {
				return err
			}
		}

		frame, err := ReadEthernetFrame(bytes.NewReader(raw))
		if err != nil {
			log.WithFields(log.Fields{
				"length": len(raw),
				"error":  err,
			}).Warn("failed to decode frame")
			continue
		}

		if s.OnFrame != nil {
			s.OnFrame(frame)
			continue
		}
		logFrame(frame)
	}
}

func logFrame(frame *EthernetFrame) {
	fields := log.Fields{
		"src":       frame.Source,
		"dst":       frame.Destination,
		"ethertype": frame.EtherType,
	}

	switch payload := frame.Payload.(type) {
	case *Ipv4Packet:
		fields["src_ip"] = payload.Source
		fields["dst_ip"] = payload.Destination
		fields["protocol"] = payload.Protocol
		fields["ttl"] = payload.TTL
		fields["payload_bytes"] = len(payload.Data)
	case *ArpPacket:
		fields["opcode"] = payload.Opcode
		fields["sender_ip"] = payload.SenderIP
		fields["target_ip"] = payload.TargetIP
	case OpaquePayload:
		fields["payload_bytes"] = len(payload)
	}

	log.WithFields(fields).Info("decoded frame")
}
