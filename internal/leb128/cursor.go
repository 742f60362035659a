package leb128

import (
	"encoding/binary"

	"github.com/appcypher/wasmo/internal/wasmerr"
)

// Cursor is the primitive reader every decoder in internal/wasm/binary is
// built on: an immutable byte buffer and a running offset. No operation
// mutates the buffer; every operation that fails leaves Offset unchanged and
// reports the offset at which it was entered, so callers can't desynchronize
// state by inspecting only the returned error.
type Cursor struct {
	bytes  []byte
	offset int
}

func NewCursor(bytes []byte) *Cursor {
	return &Cursor{bytes: bytes}
}

// Offset returns the next unread index.
func (c *Cursor) Offset() int { return c.offset }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.bytes) - c.offset }

// AtEnd reports whether every byte has been consumed.
func (c *Cursor) AtEnd() bool { return c.offset >= len(c.bytes) }

func (c *Cursor) withOffset(err error) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*wasmerr.Error); ok {
		entry := *pe
		entry.Offset = c.offset
		return &entry
	}
	return err
}

// EatByte consumes and returns a single byte.
func (c *Cursor) EatByte() (byte, error) {
	if c.offset >= len(c.bytes) {
		return 0, c.withOffset(wasmerr.New(wasmerr.BufferEndReached, 0))
	}
	b := c.bytes[c.offset]
	c.offset++
	return b, nil
}

// EatBytes consumes and returns the next n bytes.
func (c *Cursor) EatBytes(n int) ([]byte, error) {
	if n < 0 || c.offset+n > len(c.bytes) {
		return nil, c.withOffset(wasmerr.New(wasmerr.BufferEndReached, 0))
	}
	b := c.bytes[c.offset : c.offset+n]
	c.offset += n
	return b, nil
}

// PeekBytes returns, without consuming, up to n bytes starting at offset.
// Fewer than n bytes are returned if the buffer ends first.
func (c *Cursor) PeekBytes(n int) []byte {
	end := c.offset + n
	if end > len(c.bytes) {
		end = len(c.bytes)
	}
	return c.bytes[c.offset:end]
}

func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.EatByte()
	if err != nil {
		return 0, err
	}
	return b, nil
}

func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.EatBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.EatBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.EatBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadVaruint1 reads a one-bit unsigned LEB128 boolean.
func (c *Cursor) ReadVaruint1() (bool, error) {
	v, n, err := DecodeVaruint1(c.PeekBytes(1))
	if err != nil {
		return false, c.withOffset(err)
	}
	c.offset += n
	return v, nil
}

// ReadVaruint7 reads a 7-bit unsigned LEB128 integer.
func (c *Cursor) ReadVaruint7() (byte, error) {
	v, n, err := DecodeVaruint7(c.PeekBytes(1))
	if err != nil {
		return 0, c.withOffset(err)
	}
	c.offset += n
	return v, nil
}

// ReadVarint7 reads a 7-bit signed LEB128 integer.
func (c *Cursor) ReadVarint7() (int8, error) {
	v, n, err := DecodeVarint7(c.PeekBytes(1))
	if err != nil {
		return 0, c.withOffset(err)
	}
	c.offset += n
	return v, nil
}

// ReadVaruint32 reads an unsigned LEB128 integer truncated to 32 bits.
func (c *Cursor) ReadVaruint32() (uint32, error) {
	v, n, err := DecodeVaruint32(c.PeekBytes(maxVaruint32Bytes))
	if err != nil {
		return 0, c.withOffset(err)
	}
	c.offset += n
	return v, nil
}

// ReadVarint32 reads a signed LEB128 integer truncated to 32 bits.
func (c *Cursor) ReadVarint32() (int32, error) {
	v, n, err := DecodeVarint32(c.PeekBytes(maxVarint32Bytes))
	if err != nil {
		return 0, c.withOffset(err)
	}
	c.offset += n
	return v, nil
}

// ReadVarint64 reads a signed LEB128 integer truncated to 64 bits.
func (c *Cursor) ReadVarint64() (int64, error) {
	v, n, err := DecodeVarint64(c.PeekBytes(maxVarint64Bytes))
	if err != nil {
		return 0, c.withOffset(err)
	}
	c.offset += n
	return v, nil
}
