package descfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHexText(t *testing.T) {
	b, err := Decode([]byte("05 01\n09 02\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05, 0x01, 0x09, 0x02}, b)
}

func TestDecodeRawBinary(t *testing.T) {
	raw := []byte{0x05, 0x01, 0xA1, 0x01, 0xC0}
	b, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, b)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	assert.Error(t, err)

	// Odd number of hex digits.
	_, err = Decode([]byte("05 0"))
	assert.Error(t, err)
}

func TestDecodeHexString(t *testing.T) {
	b, err := DecodeHex("  C0 ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC0}, b)

	_, err = DecodeHex(" ")
	assert.Error(t, err)
}
