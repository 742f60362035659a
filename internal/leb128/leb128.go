// Package leb128 decodes and encodes LEB128 variable-length integers, plus
// the fixed-width little-endian primitives the Wasm binary format also
// uses. The Decode* functions operate on a plain byte slice and report how
// many bytes they consumed, mirroring the shape of a streaming decoder's
// primitive ops without owning any cursor state themselves; the Cursor type
// in this package layers offset tracking and error-offset bookkeeping on top.
package leb128

import "github.com/appcypher/wasmo/internal/wasmerr"

// Maximum byte budgets for each encoding width, per the binary format: an
// encoding longer than this for its declared width is over-long and rejected
// even if every byte would otherwise decode cleanly.
const (
	maxVaruint32Bytes = 5
	maxVarint32Bytes  = 5
	maxVaruint64Bytes = 10
	maxVarint64Bytes  = 10
)

// DecodeVaruint32 decodes an unsigned LEB128 integer truncated to 32 bits.
// Returns the value, the number of bytes consumed, and an error if the
// buffer ends before a terminating byte or the encoding overruns its budget.
func DecodeVaruint32(b []byte) (uint32, int, error) {
	var result uint32
	var shift uint
	for i := 0; i < maxVaruint32Bytes; i++ {
		if i >= len(b) {
			return 0, i, wasmerr.New(wasmerr.BufferEndReached, 0)
		}
		c := b[i]
		result |= uint32(c&0x7f) << shift
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, maxVaruint32Bytes, wasmerr.New(wasmerr.MalformedVaruint32, 0)
}

// DecodeVaruint1 decodes a single-bit unsigned LEB128 integer: the encoding
// is always exactly one byte, and the byte must be 0x00 or 0x01.
func DecodeVaruint1(b []byte) (bool, int, error) {
	if len(b) == 0 {
		return false, 0, wasmerr.New(wasmerr.BufferEndReached, 0)
	}
	switch b[0] {
	case 0x00:
		return false, 1, nil
	case 0x01:
		return true, 1, nil
	default:
		return false, 1, wasmerr.New(wasmerr.MalformedVaruint1, 0)
	}
}

// DecodeVaruint7 decodes an unsigned LEB128 integer truncated to 7 bits: the
// encoding is always exactly one byte with the continuation bit clear.
func DecodeVaruint7(b []byte) (byte, int, error) {
	if len(b) == 0 {
		return 0, 0, wasmerr.New(wasmerr.BufferEndReached, 0)
	}
	c := b[0]
	if c&0x80 != 0 {
		return 0, 1, wasmerr.New(wasmerr.MalformedVaruint7, 0)
	}
	return c, 1, nil
}

// DecodeVarint7 decodes a signed LEB128 integer truncated to 7 bits: the
// encoding is always exactly one byte with the continuation bit clear, and
// bit 6 sign-extends the value.
func DecodeVarint7(b []byte) (int8, int, error) {
	if len(b) == 0 {
		return 0, 0, wasmerr.New(wasmerr.BufferEndReached, 0)
	}
	c := b[0]
	if c&0x80 != 0 {
		return 0, 1, wasmerr.New(wasmerr.MalformedVarint7, 0)
	}
	v := int8(c)
	if c&0x40 != 0 {
		v |= ^int8(0x7f)
	}
	return v, 1, nil
}

// DecodeVarint32 decodes a signed LEB128 integer truncated to 32 bits.
func DecodeVarint32(b []byte) (int32, int, error) {
	var result int32
	var shift uint
	var c byte
	i := 0
	for ; i < maxVarint32Bytes; i++ {
		if i >= len(b) {
			return 0, i, wasmerr.New(wasmerr.BufferEndReached, 0)
		}
		c = b[i]
		result |= int32(c&0x7f) << shift
		shift += 7
		if c&0x80 == 0 {
			break
		}
	}
	if i == maxVarint32Bytes && c&0x80 != 0 {
		return 0, maxVarint32Bytes, wasmerr.New(wasmerr.MalformedVarint32, 0)
	}
	if shift < 32 && c&0x40 != 0 {
		result |= ^int32(0) << shift
	}
	return result, i + 1, nil
}

// DecodeVarint64 decodes a signed LEB128 integer truncated to 64 bits.
func DecodeVarint64(b []byte) (int64, int, error) {
	var result int64
	var shift uint
	var c byte
	i := 0
	for ; i < maxVarint64Bytes; i++ {
		if i >= len(b) {
			return 0, i, wasmerr.New(wasmerr.BufferEndReached, 0)
		}
		c = b[i]
		result |= int64(c&0x7f) << shift
		shift += 7
		if c&0x80 == 0 {
			break
		}
	}
	if i == maxVarint64Bytes && c&0x80 != 0 {
		return 0, maxVarint64Bytes, wasmerr.New(wasmerr.MalformedVarint64, 0)
	}
	if shift < 64 && c&0x40 != 0 {
		result |= ^int64(0) << shift
	}
	return result, i + 1, nil
}

// EncodeVaruint32 encodes x as canonical (minimal-length) unsigned LEB128.
func EncodeVaruint32(x uint32) []byte {
	var out []byte
	for {
		b := byte(x & 0x7f)
		x >>= 7
		if x != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			return out
		}
	}
}

// EncodeVarint32 encodes x as canonical (minimal-length) signed LEB128.
func EncodeVarint32(x int32) []byte {
	var out []byte
	more := true
	for more {
		b := byte(x & 0x7f)
		x >>= 7
		if (x == 0 && b&0x40 == 0) || (x == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}

// EncodeVarint64 encodes x as canonical (minimal-length) signed LEB128.
func EncodeVarint64(x int64) []byte {
	var out []byte
	more := true
	for more {
		b := byte(x & 0x7f)
		x >>= 7
		if (x == 0 && b&0x40 == 0) || (x == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}
