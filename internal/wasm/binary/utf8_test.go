package binary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUTF8_valid(t *testing.T) {
	require.True(t, validateUTF8([]byte("hello")))
	require.True(t, validateUTF8([]byte("héllo")))
	require.True(t, validateUTF8([]byte("\xe4\xb8\xad"))) // "中"
	require.True(t, validateUTF8(nil))
}

func TestValidateUTF8_invalid(t *testing.T) {
	require.False(t, validateUTF8([]byte{0xff, 0xfe}))
	require.False(t, validateUTF8([]byte{0xe4, 0xb8})) // truncated 3-byte sequence
}
