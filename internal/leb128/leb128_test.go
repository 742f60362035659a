package leb128

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeVarint32(t *testing.T) {
	for _, c := range []struct {
		input    int32
		expected []byte
	}{
		{input: -165675008, expected: []byte{0x80, 0x80, 0x80, 0xb1, 0x7f}},
		{input: -624485, expected: []byte{0x9b, 0xf1, 0x59}},
		{input: -16256, expected: []byte{0x80, 0x81, 0x7f}},
		{input: -4, expected: []byte{0x7c}},
		{input: -1, expected: []byte{0x7f}},
		{input: 0, expected: []byte{0x00}},
		{input: 1, expected: []byte{0x01}},
		{input: 4, expected: []byte{0x04}},
		{input: 16256, expected: []byte{0x80, 0xff, 0x0}},
		{input: 624485, expected: []byte{0xe5, 0x8e, 0x26}},
		{input: 165675008, expected: []byte{0x80, 0x80, 0x80, 0xcf, 0x0}},
		{input: int32(math.MaxInt32), expected: []byte{0xff, 0xff, 0xff, 0xff, 0x7}},
		{input: int32(math.MinInt32), expected: []byte{0x80, 0x80, 0x80, 0x80, 0x78}},
	} {
		actualBytes := EncodeVarint32(c.input)
		require.Equal(t, c.expected, actualBytes)

		v, n, err := DecodeVarint32(actualBytes)
		require.NoError(t, err)
		require.Equal(t, c.input, v)
		require.Equal(t, len(actualBytes), n)
	}
}

func TestEncodeDecodeVaruint32(t *testing.T) {
	for _, c := range []struct {
		input    uint32
		expected []byte
	}{
		{input: 0, expected: []byte{0x00}},
		{input: 1, expected: []byte{0x01}},
		{input: 127, expected: []byte{0x7f}},
		{input: 128, expected: []byte{0x80, 0x01}},
		{input: 16256, expected: []byte{0x80, 0x7f}},
		{input: uint32(math.MaxUint32), expected: []byte{0xff, 0xff, 0xff, 0xff, 0xf}},
	} {
		actualBytes := EncodeVaruint32(c.input)
		require.Equal(t, c.expected, actualBytes)

		v, n, err := DecodeVaruint32(actualBytes)
		require.NoError(t, err)
		require.Equal(t, c.input, v)
		require.Equal(t, len(actualBytes), n)
	}
}

func TestDecodeVaruint32_overlong(t *testing.T) {
	// 6 continuation-flagged bytes exceeds the 5-byte budget for a 32-bit value.
	_, _, err := DecodeVaruint32([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	require.Error(t, err)
}

func TestDecodeVaruint32_bufferEnd(t *testing.T) {
	_, _, err := DecodeVaruint32([]byte{0x80, 0x80})
	require.Error(t, err)
}

func TestEncodeDecodeVarint64(t *testing.T) {
	for _, input := range []int64{
		0, 1, -1, 4, -4,
		math.MaxInt64, math.MinInt64,
		624485, -624485,
	} {
		encoded := EncodeVarint64(input)
		v, n, err := DecodeVarint64(encoded)
		require.NoError(t, err)
		require.Equal(t, input, v)
		require.Equal(t, len(encoded), n)
	}
}

func TestDecodeVaruint1(t *testing.T) {
	v, n, err := DecodeVaruint1([]byte{0x01})
	require.NoError(t, err)
	require.True(t, v)
	require.Equal(t, 1, n)

	v, n, err = DecodeVaruint1([]byte{0x00})
	require.NoError(t, err)
	require.False(t, v)
	require.Equal(t, 1, n)

	_, _, err = DecodeVaruint1([]byte{0x02})
	require.Error(t, err)
}

func TestDecodeVaruint7(t *testing.T) {
	v, n, err := DecodeVaruint7([]byte{0x7f})
	require.NoError(t, err)
	require.Equal(t, byte(0x7f), v)
	require.Equal(t, 1, n)

	_, _, err = DecodeVaruint7([]byte{0x80})
	require.Error(t, err)
}

func TestDecodeVarint7(t *testing.T) {
	v, n, err := DecodeVarint7([]byte{0x7e}) // -2 in 7-bit two's complement
	require.NoError(t, err)
	require.Equal(t, int8(-2), v)
	require.Equal(t, 1, n)
}
