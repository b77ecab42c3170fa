// Package descfile loads report descriptor bytes from files containing
// either raw binary or whitespace-separated hex text (the format descriptor
// dumps are usually shared in).
package descfile

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// DecodeHex parses whitespace-separated hex text into descriptor bytes.
func DecodeHex(s string) ([]byte, error) {
	compact := strings.Join(strings.Fields(s), "")
	if compact == "" {
		return nil, fmt.Errorf("empty hex descriptor")
	}
	b, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("invalid hex descriptor: %w", err)
	}
	return b, nil
}

// Decode interprets file content as hex text when every byte is a hex digit
// or whitespace, raw binary otherwise.
func Decode(data []byte) ([]byte, error) {
	if looksLikeHex(data) {
		return DecodeHex(string(data))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty descriptor")
	}
	return data, nil
}

// Read loads a descriptor from a file, see Decode.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}
	return Decode(data)
}

func looksLikeHex(data []byte) bool {
	digits := 0
	for _, b := range data {
		switch {
		case b >= '0' && b <= '9', b >= 'a' && b <= 'f', b >= 'A' && b <= 'F':
			digits++
		case b == ' ', b == '\t', b == '\r', b == '\n':
		default:
			return false
		}
	}
	return digits > 0
}
