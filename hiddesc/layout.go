package hiddesc

import "sort"

// Usage pages relevant to pointing devices.
const (
	UsagePageGenericDesktop uint16 = 0x01
	UsagePageKeyboard       uint16 = 0x07
	UsagePageButton         uint16 = 0x09
	UsagePageConsumer       uint16 = 0x0C
)

// Generic Desktop usages.
const (
	UsageMouse    uint16 = 0x02
	UsageKeyboard uint16 = 0x06
	UsageX        uint16 = 0x30
	UsageY        uint16 = 0x31
	UsageWheel    uint16 = 0x38
)

// Consumer page usages.
const UsageACPan uint16 = 0x0238

// ReportLayout describes where the pointing-device fields of one report live.
// Offsets are in bits, relative to the start of the report data (excluding
// the report id byte). A zero size means the field was not observed.
type ReportLayout struct {
	ReportID uint8 `json:"reportId"`

	ButtonsBitOffset uint32 `json:"buttonsBitOffset"`
	ButtonsCount     uint32 `json:"buttonsCount"`

	XBitOffset uint32 `json:"xBitOffset"`
	XSize      uint32 `json:"xSize"`

	YBitOffset uint32 `json:"yBitOffset"`
	YSize      uint32 `json:"ySize"`

	WheelBitOffset uint32 `json:"wheelBitOffset"`
	WheelSize      uint32 `json:"wheelSize"`

	PanBitOffset uint32 `json:"panBitOffset"`
	PanSize      uint32 `json:"panSize"`

	// TotalBits is the running bit cursor after the last Input item
	// processed under this report id.
	TotalBits uint32 `json:"totalBits"`
}

// LayoutTable maps report id to its field layout. Report id 0 is used when
// the descriptor never declares a Report ID item.
type LayoutTable map[uint8]ReportLayout

// ReportIDs returns the report ids present in the table in ascending order.
func (t LayoutTable) ReportIDs() []uint8 {
	ids := make([]uint8, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Equal reports whether two tables describe identical layouts.
func (t LayoutTable) Equal(other LayoutTable) bool {
	if len(t) != len(other) {
		return false
	}
	for id, layout := range t {
		if other[id] != layout {
			return false
		}
	}
	return true
}
