package preinstanced

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds is returned when a seek or read would leave the buffer.
var ErrOutOfBounds = errors.New("read out of bounds")

// cursor is a bounds-checked reader over the raw file buffer. Every offset
// dereference in the decoder goes through it; nothing indexes the slice
// directly. The buffer itself is never modified.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) seek(off int) error {
	if off < 0 || off > len(c.data) {
		return fmt.Errorf("%w: seek to %#x in %d-byte buffer", ErrOutOfBounds, off, len(c.data))
	}
	c.off = off
	return nil
}

func (c *cursor) skip(n int) error {
	return c.seek(c.off + n)
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.off > len(c.data)-n {
		return nil, fmt.Errorf("%w: %d bytes at %#x in %d-byte buffer", ErrOutOfBounds, n, c.off, len(c.data))
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) uint16be() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) uint32be() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) uint32le() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) float32be() (float32, error) {
	v, err := c.uint32be()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}
