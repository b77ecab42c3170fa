// Package hidreport decodes raw input reports into pointer events using the
// field layouts produced by hiddesc.
package hidreport

import (
	"fmt"

	"github.com/hidtools/hidlayout/hiddesc"
	"github.com/hidtools/hidlayout/pkg/bits"
)

// Event is the decoded content of one pointer report. Axis values are
// sign-extended from their declared field sizes; Buttons is a bitmap with
// button 1 in bit 0.
type Event struct {
	Buttons uint32
	DX      int32
	DY      int32
	Wheel   int32
	Pan     int32
}

func (e Event) String() string {
	return fmt.Sprintf("Event{buttons=%08b dx=%d dy=%d wheel=%d pan=%d}", e.Buttons, e.DX, e.DY, e.Wheel, e.Pan)
}

// Decoder extracts pointer events from raw reports. It is safe for
// concurrent use: the layout table is read-only after construction.
type Decoder struct {
	table hiddesc.LayoutTable
}

func NewDecoder(table hiddesc.LayoutTable) *Decoder {
	return &Decoder{table: table}
}

// Decode extracts the pointer fields of one report. The data slice excludes
// the report id byte; field offsets in the layout are relative to it. It
// returns false when the table has no layout for the report id. Fields whose
// bits lie beyond the end of data decode as zero.
func (d *Decoder) Decode(reportID uint8, data []byte) (Event, bool) {
	layout, ok := d.table[reportID]
	if !ok {
		return Event{}, false
	}

	var ev Event
	if layout.ButtonsCount > 0 {
		count := layout.ButtonsCount
		if count > 32 {
			count = 32
		}
		ev.Buttons = bits.Uint32(data, layout.ButtonsBitOffset, count)
	}
	if layout.XSize > 0 {
		ev.DX = bits.Int32(data, layout.XBitOffset, layout.XSize)
	}
	if layout.YSize > 0 {
		ev.DY = bits.Int32(data, layout.YBitOffset, layout.YSize)
	}
	if layout.WheelSize > 0 {
		ev.Wheel = bits.Int32(data, layout.WheelBitOffset, layout.WheelSize)
	}
	if layout.PanSize > 0 {
		ev.Pan = bits.Int32(data, layout.PanBitOffset, layout.PanSize)
	}
	return ev, true
}

// DecodeReport decodes a report whose first byte is the report id. Reports
// from devices that never declare report ids (the table only contains id 0)
// are decoded as id 0 without stripping a byte.
func (d *Decoder) DecodeReport(data []byte) (Event, bool) {
	if len(data) == 0 {
		return Event{}, false
	}
	if _, ok := d.table[0]; ok && len(d.table) == 1 {
		return d.Decode(0, data)
	}
	return d.Decode(data[0], data[1:])
}
