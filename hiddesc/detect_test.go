package hiddesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// bootKeyboard is a standard boot keyboard descriptor: 8 modifier bits,
// reserved byte, LED output, 6 key-code array slots.
const bootKeyboard = `
05 01 09 06 A1 01 05 07 19 E0 29 E7 15 00 25 01
75 01 95 08 81 02 95 01 75 08 81 01 95 05 75 01
05 08 19 01 29 05 91 02 95 01 75 03 91 01 95 06
75 08 15 00 25 65 05 07 19 00 29 65 81 00 C0
`

func TestClassifyMouse(t *testing.T) {
	w := NewWalker()
	table := w.Walk(mustHex(t, sampleDescriptor))
	assert.Equal(t, DeviceMouse, Classify(table))
	assert.Equal(t, DeviceMouse, w.DeviceClass())
}

func TestClassifyKeyboard(t *testing.T) {
	w := NewWalker()
	table := w.Walk(mustHex(t, bootKeyboard))
	assert.Equal(t, DeviceUnknown, Classify(table), "no X/Y fields in a keyboard table")
	assert.Equal(t, DeviceKeyboard, w.DeviceClass())
}

func TestClassifyUnknown(t *testing.T) {
	w := NewWalker()
	w.Walk(mustHex(t, "06 BC FF 09 88 A1 01 19 01 29 FF 75 08 95 01 81 00 C0"))
	assert.Equal(t, DeviceUnknown, w.DeviceClass())
}

func TestDeviceClassString(t *testing.T) {
	assert.Equal(t, "mouse", DeviceMouse.String())
	assert.Equal(t, "keyboard", DeviceKeyboard.String())
	assert.Equal(t, "unknown", DeviceUnknown.String())
}
