package tapwire

import (
	"os/exec"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/songgao/packets/ethernet"
	"github.com/songgao/water"
)

// Transports hand the codec at most one buffer of this size per read.
const tapBufferSize = 4096

// TapPort is a TAP device attached to the host network stack. Each Read on
// the device yields exactly one raw ethernet frame.
type TapPort struct {
	ifce *water.Interface
}

// OpenTapPort opens the named TAP device, creating it if needed. With an
// empty name the next free tapN device is used.
func OpenTapPort(name string) (*TapPort, error) {
	config := water.Config{
		DeviceType: water.TAP,
	}
	config.Name = name
	if config.Name == "" {
		config.Name = nextFreeTapName()
	}

	ifce, err := water.New(config)
	if err != nil {
		return nil, err
	}

	log.WithField("ifce", ifce.Name()).Debug("opened tap device")

	return &TapPort{ifce: ifce}, nil
}

// nextFreeTapName picks tapN one past the highest existing tap device.
func nextFreeTapName() string {
	highestTap := 0

	out, err := exec.Command("ip", "tuntap").Output()
	if err != nil {
		return "tap0"
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "tap") {
			continue
		}
		name := strings.Split(line, ":")[0]
		tapNum, err := strconv.Atoi(name[3:])
		if err != nil {
			continue
		}
		if tapNum >= highestTap {
			highestTap = tapNum + 1
		}
	}

	return "tap" + strconv.Itoa(highestTap)
}

// ReadPacketData returns the raw bytes of the next captured frame.
func (t *TapPort) ReadPacketData() ([]byte, error) {
	var frame ethernet.Frame
	frame.Resize(tapBufferSize)
	n, err := t.ifce.Read(frame)
	if err != nil {
		return nil, err
	}
	return frame[:n], nil
}

// WritePacketData injects raw frame bytes into the device.
func (t *TapPort) WritePacketData(data []byte) error {
	_, err := t.ifce.Write(data)
	return err
}

// WriteFrame serializes the frame, frame check sequence included, and
// injects it into the device.
func (t *TapPort) WriteFrame(frame *EthernetFrame) error {
	data, err := frame.MarshalBinary()
	if err != nil {
		return err
	}
	return t.WritePacketData(data)
}

func (t *TapPort) Name() string {
	return t.ifce.Name()
}

func (t *TapPort) Close() error {
	return t.ifce.Close()
}
