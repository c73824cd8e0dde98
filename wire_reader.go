package tapwire

import (
	"encoding/binary"
	"io"
)

// The read helpers below are the codec's only contact with the transport.
// Every field is read with exactly-N semantics; a short read surfaces as a
// TruncatedError naming the field, never as a partial value.

func readExact(r io.Reader, buf []byte, what string) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return &TruncatedError{What: what}
	}
	return nil
}

func readUint8(r io.Reader, what string) (uint8, error) {
	var buf [1]byte
	if err := readExact(r, buf[:], what); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readUint16(r io.Reader, what string) (uint16, error) {
	var buf [2]byte
	if err := readExact(r, buf[:], what); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func readUint32(r io.Reader, what string) (uint32, error) {
	var buf [4]byte
	if err := readExact(r, buf[:], what); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}
