package leb128

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appcypher/wasmo/internal/wasmerr"
)

func TestCursor_eatByteAndBytes(t *testing.T) {
	c := NewCursor([]byte{0x00, 0x61, 0x73, 0x6d})
	b, err := c.EatByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x00), b)
	require.Equal(t, 1, c.Offset())

	rest, err := c.EatBytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{0x61, 0x73, 0x6d}, rest)
	require.True(t, c.AtEnd())
}

func TestCursor_eatBytes_bufferEnd(t *testing.T) {
	c := NewCursor([]byte{0x01})
	_, err := c.EatBytes(4)
	require.Error(t, err)
	// A failed read must not advance the cursor.
	require.Equal(t, 0, c.Offset())
}

func TestCursor_readUint32LittleEndian(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x00, 0x00, 0x00})
	v, err := c.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)
}

func TestCursor_readVaruint32(t *testing.T) {
	c := NewCursor([]byte{0x9a, 0x03, 0xff})
	v, err := c.ReadVaruint32()
	require.NoError(t, err)
	require.Equal(t, uint32(410), v)
	require.Equal(t, 2, c.Offset())
}

func TestCursor_errorRecordsEntryOffset(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x80, 0x80})
	_, err := c.EatByte()
	require.NoError(t, err)

	_, err = c.ReadVaruint32()
	require.Error(t, err)
	require.Equal(t, 1, err.(*wasmerr.Error).Offset)
}
