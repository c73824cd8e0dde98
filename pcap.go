package tapwire

import (
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// PcapSource replays raw frames from a pcap capture. gopacket only handles
// the container format here; the frames themselves decode through this
// package's codec.
type PcapSource struct {
	reader *pcapgo.Reader
}

// NewPcapSource wraps a pcap-format byte stream, consuming its file header.
func NewPcapSource(r io.Reader) (*PcapSource, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &PcapSource{reader: reader}, nil
}

// ReadPacketData returns the raw bytes of the next captured frame, io.EOF
// once the capture is exhausted.
func (s *PcapSource) ReadPacketData() ([]byte, error) {
	data, _, err := s.reader.ReadPacketData()
	return data, err
}

// PcapSink appends raw frames to a pcap capture.
type PcapSink struct {
	writer *pcapgo.Writer
}

// NewPcapSink writes a pcap file header for ethernet link-layer captures
// onto w and returns a sink appending one record per frame.
func NewPcapSink(w io.Writer) (*PcapSink, error) {
	writer := pcapgo.NewWriter(w)
	if err := writer.WriteFileHeader(tapBufferSize, layers.LinkTypeEthernet); err != nil {
		return nil, err
	}
	return &PcapSink{writer: writer}, nil
}

// WritePacketData appends one frame record stamped with the current time.
func (s *PcapSink) WritePacketData(data []byte) error {
	ci := gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(data),
		Length:        len(data),
	}
	return s.writer.WritePacket(ci, data)
}

// WriteFrame serializes the frame, frame check sequence included, and
// appends it to the capture.
func (s *PcapSink) WriteFrame(frame *EthernetFrame) error {
	data, err := frame.MarshalBinary()
	if err != nil {
		return err
	}
	return s.WritePacketData(data)
}
