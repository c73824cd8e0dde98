package tapwire_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"tapwire"
)

func TestInternetChecksumValidHeaderFoldsToZero(t *testing.T) {
	var sum tapwire.InternetChecksum
	sum.Add(mdnsFrame[14:34])

	assert.Equal(t, uint16(0), sum.Sum16())
}

func TestInternetChecksumGeneration(t *testing.T) {
	header := append([]byte(nil), mdnsFrame[14:34]...)
	header[10], header[11] = 0, 0

	var sum tapwire.InternetChecksum
	sum.Add(header)
	binary.BigEndian.PutUint16(header[10:12], sum.Sum16())

	var check tapwire.InternetChecksum
	check.Add(header)
	assert.Equal(t, uint16(0), check.Sum16())

	// Matches the checksum of the original capture.
	assert.Equal(t, mdnsFrame[24:26], header[10:12])
}

func TestInternetChecksumChunkingIsIrrelevant(t *testing.T) {
	data := mdnsFrame[14:34]

	var whole tapwire.InternetChecksum
	whole.Add(data)

	var chunked tapwire.InternetChecksum
	for _, b := range data {
		chunked.Add([]byte{b})
	}

	var uneven tapwire.InternetChecksum
	uneven.Add(data[:3])
	uneven.Add(data[3:8])
	uneven.Add(data[8:])

	assert.Equal(t, whole.Sum16(), chunked.Sum16())
	assert.Equal(t, whole.Sum16(), uneven.Sum16())
}

func TestInternetChecksumEndAroundCarry(t *testing.T) {
	// 0xffff + 0x0001 wraps to 0x0001 with the carry folded back in;
	// the complement is 0xfffe.
	var sum tapwire.InternetChecksum
	sum.Add([]byte{0xff, 0xff, 0x00, 0x01})

	assert.Equal(t, uint16(0xfffe), sum.Sum16())
}

func TestInternetChecksumOddTrailingByte(t *testing.T) {
	// A dangling byte pads as the high half of a final word.
	var sum tapwire.InternetChecksum
	sum.Add([]byte{0x12})

	assert.Equal(t, ^uint16(0x1200), sum.Sum16())
}
