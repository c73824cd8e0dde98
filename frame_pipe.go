package tapwire

import (
	"io"
	"sync"
)

// FramePipe is one endpoint of an in-memory ethernet segment. Frames written
// on one endpoint become readable on the other; either endpoint's Close
// shuts down the whole segment.
type FramePipe struct {
	inbound chan []byte
	peer    *FramePipe
	shared  *framePipeShared
}

type framePipeShared struct {
	done chan struct{}
	once sync.Once
}

// NewFramePipe returns the two connected endpoints of a fresh segment.
func NewFramePipe() (*FramePipe, *FramePipe) {
	shared := &framePipeShared{done: make(chan struct{})}
	a := &FramePipe{inbound: make(chan []byte, 16), shared: shared}
	b := &FramePipe{inbound: make(chan []byte, 16), shared: shared}
	a.peer, b.peer = b, a
	return a, b
}

// ReadPacketData returns the raw bytes of the next frame written by the
// peer. After Close it reports io.EOF, draining buffered frames first.
func (p *FramePipe) ReadPacketData() ([]byte, error) {
	select {
	case data := <-p.inbound:
		return data, nil
	default:
	}

	select {
	case data := <-p.inbound:
		return data, nil
	case <-p.shared.done:
		return nil, io.EOF
	}
}

// WritePacketData delivers a copy of data to the peer endpoint.
func (p *FramePipe) WritePacketData(data []byte) error {
	select {
	case <-p.shared.done:
		return io.ErrClosedPipe
	default:
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	select {
	case p.peer.inbound <- buf:
		return nil
	case <-p.shared.done:
		return io.ErrClosedPipe
	}
}

// WriteFrame serializes the frame, frame check sequence included, and
// delivers it to the peer endpoint.
func (p *FramePipe) WriteFrame(frame *EthernetFrame) error {
	data, err := frame.MarshalBinary()
	if err != nil {
		return err
	}
	return p.WritePacketData(data)
}

func (p *FramePipe) Close() error {
	p.shared.once.Do(func() {
		close(p.shared.done)
	})
	return nil
}
