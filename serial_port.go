package tapwire

import (
	"os"

	"github.com/creack/pty"
	log "github.com/sirupsen/logrus"
)

// SerialPort is a PTY-backed virtual serial device. The master side is the
// local byte stream; the slave path is handed to the peer process that
// produces or consumes frame bytes. Terminal configuration (raw mode, baud)
// is left to the peer that opens the slave.
type SerialPort struct {
	master *os.File
	slave  *os.File
}

// OpenSerialPort allocates a fresh PTY pair.
func OpenSerialPort() (*SerialPort, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, err
	}

	log.WithField("slave", slave.Name()).Debug("opened virtual serial port")

	return &SerialPort{master: master, slave: slave}, nil
}

// Read reads raw bytes from the master side. Frames are decoded straight off
// this stream with ReadEthernetFrame.
func (s *SerialPort) Read(p []byte) (int, error) {
	return s.master.Read(p)
}

// Write writes raw bytes to the master side.
func (s *SerialPort) Write(p []byte) (int, error) {
	return s.master.Write(p)
}

// SlavePath is the filesystem path the peer opens, e.g. /dev/pts/3.
func (s *SerialPort) SlavePath() string {
	return s.slave.Name()
}

func (s *SerialPort) Close() error {
	if err := s.slave.Close(); err != nil {
		_ = s.master.Close()
		return err
	}
	return s.master.Close()
}
