// Package bits extracts bit-addressed field values from raw HID report data.
// Bit order follows the HID report format: bit 0 is the least significant bit
// of the first byte.
package bits

// Uint32 reads bitSize bits starting at bitOffset and returns them as an
// unsigned value. Bits beyond the end of data read as zero; a bitSize of 0 or
// greater than 32 yields 0.
func Uint32(data []byte, bitOffset, bitSize uint32) uint32 {
	if bitSize == 0 || bitSize > 32 {
		return 0
	}
	var value uint32
	for i := uint32(0); i < bitSize; i++ {
		byteIndex := (bitOffset + i) / 8
		bitIndex := (bitOffset + i) % 8
		if byteIndex >= uint32(len(data)) {
			break
		}
		bit := uint32(data[byteIndex]>>bitIndex) & 1
		value |= bit << i
	}
	return value
}

// Int32 reads bitSize bits starting at bitOffset and sign-extends the result.
func Int32(data []byte, bitOffset, bitSize uint32) int32 {
	value := Uint32(data, bitOffset, bitSize)
	if bitSize == 0 || bitSize > 32 {
		return 0
	}
	if bitSize < 32 && value&(1<<(bitSize-1)) != 0 {
		value |= ^uint32(0) << bitSize
	}
	return int32(value)
}
