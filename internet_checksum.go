package tapwire

// InternetChecksum accumulates the 16-bit ones'-complement checksum used by
// IPv4 headers. Bytes may be added in chunks of any size; an odd trailing
// byte is paired with the first byte of the next Add call.
//
// Validation: fold a received header including its checksum field, a valid
// header yields Sum16() == 0. Generation: fold the header with the checksum
// field skipped, Sum16() is the value to insert.
type InternetChecksum struct {
	sum     uint32
	pending byte
	odd     bool
}

// Add folds data into the running checksum.
func (c *InternetChecksum) Add(data []byte) {
	i := 0
	if c.odd && len(data) > 0 {
		c.sum += uint32(c.pending)<<8 | uint32(data[0])
		c.odd = false
		i = 1
	}
	for ; i+1 < len(data); i += 2 {
		c.sum += uint32(data[i])<<8 | uint32(data[i+1])
	}
	if i < len(data) {
		c.pending = data[i]
		c.odd = true
	}
}

// Sum16 folds the end-around carry and returns the ones' complement of the
// accumulated sum. The accumulator remains usable for further Add calls.
func (c *InternetChecksum) Sum16() uint16 {
	sum := c.sum
	if c.odd {
		sum += uint32(c.pending) << 8
	}
	for sum>>16 != 0 {
		sum = sum>>16 + sum&0xffff
	}
	return ^uint16(sum)
}
