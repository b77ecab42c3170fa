package hidreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidtools/hidlayout/hiddesc"
)

func pointerLayout() hiddesc.LayoutTable {
	return hiddesc.LayoutTable{
		2: {
			ReportID:     2,
			ButtonsCount: 16,
			XBitOffset:   16, XSize: 16,
			YBitOffset: 32, YSize: 16,
			WheelBitOffset: 48, WheelSize: 8,
			TotalBits: 64,
		},
	}
}

func TestDecode(t *testing.T) {
	d := NewDecoder(pointerLayout())

	// buttons=0x0005, dx=-5, dy=300, wheel=-1
	data := []byte{0x05, 0x00, 0xFB, 0xFF, 0x2C, 0x01, 0xFF}
	ev, ok := d.Decode(2, data)
	require.True(t, ok)
	assert.Equal(t, Event{Buttons: 0x0005, DX: -5, DY: 300, Wheel: -1}, ev)
}

func TestDecodeUnknownReportID(t *testing.T) {
	d := NewDecoder(pointerLayout())
	_, ok := d.Decode(9, []byte{0x00})
	assert.False(t, ok)
}

func TestDecodeShortReport(t *testing.T) {
	d := NewDecoder(pointerLayout())
	// Only the button bytes arrive; axis bits read as zero.
	ev, ok := d.Decode(2, []byte{0x01, 0x00})
	require.True(t, ok)
	assert.Equal(t, Event{Buttons: 1}, ev)
}

func TestDecodeReportWithIDPrefix(t *testing.T) {
	d := NewDecoder(pointerLayout())
	data := []byte{0x02, 0x01, 0x00, 0x0A, 0x00, 0xF6, 0xFF, 0x01}
	ev, ok := d.DecodeReport(data)
	require.True(t, ok)
	assert.Equal(t, Event{Buttons: 1, DX: 10, DY: -10, Wheel: 1}, ev)
}

func TestDecodeReportWithoutIDs(t *testing.T) {
	table := hiddesc.LayoutTable{
		0: {ButtonsCount: 3, XBitOffset: 8, XSize: 8, YBitOffset: 16, YSize: 8, TotalBits: 24},
	}
	d := NewDecoder(table)
	ev, ok := d.DecodeReport([]byte{0x02, 0x7F, 0x80})
	require.True(t, ok)
	assert.Equal(t, Event{Buttons: 2, DX: 127, DY: -128}, ev)
}

func TestDecodeReportEmpty(t *testing.T) {
	d := NewDecoder(pointerLayout())
	_, ok := d.DecodeReport(nil)
	assert.False(t, ok)
}
