// Package hiddesc decodes USB HID report descriptors into per-report mouse
// field layouts (buttons, X, Y, wheel, horizontal pan).
//
// The decoder is a single-pass fold over the descriptor bytes. It does not
// build a descriptor object tree and it does not validate the descriptor
// structurally; malformed-but-parseable input produces a best-effort table
// and a truncated descriptor simply ends the walk early.
package hiddesc

// ItemKind is the item type encoded in bits 2-3 of a short item prefix byte.
type ItemKind uint8

const (
	KindMain ItemKind = iota
	KindGlobal
	KindLocal
	// KindLong marks a long item (prefix 0xFE). Long items carry no layout
	// information and are only skipped.
	KindLong
)

// longItemPrefix is the reserved prefix byte introducing a long item.
const longItemPrefix = 0xFE

// Main item tags.
const (
	TagInput         uint8 = 0x8
	TagOutput        uint8 = 0x9
	TagCollection    uint8 = 0xA
	TagFeature       uint8 = 0xB
	TagEndCollection uint8 = 0xC
)

// Global item tags.
const (
	TagUsagePage      uint8 = 0x0
	TagLogicalMinimum uint8 = 0x1
	TagLogicalMaximum uint8 = 0x2
	TagReportSize     uint8 = 0x7
	TagReportID       uint8 = 0x8
	TagReportCount    uint8 = 0x9
)

// Local item tags.
const (
	TagUsage        uint8 = 0x0
	TagUsageMinimum uint8 = 0x1
	TagUsageMaximum uint8 = 0x2
)

// Item is one decoded descriptor item. The prefix byte is decoded exactly
// once here; downstream code dispatches on Kind and Tag and never re-inspects
// the packed bit fields.
type Item struct {
	Kind    ItemKind
	Tag     uint8
	Payload []byte
	// Offset is the byte offset of the item prefix within the descriptor.
	Offset int
}

// ReadItem decodes a single item starting at offset. It returns the item, the
// offset of the next item and true, or ok == false when the remaining bytes
// cannot hold the declared item. Truncation is a soft end-of-stream signal,
// not an error.
func ReadItem(desc []byte, offset int) (Item, int, bool) {
	if offset >= len(desc) {
		return Item{}, offset, false
	}
	prefix := desc[offset]

	if prefix == longItemPrefix {
		// Long item: prefix, data size, long tag, then data.
		if offset+3 > len(desc) {
			return Item{}, offset, false
		}
		size := int(desc[offset+1])
		tag := desc[offset+2]
		if offset+3+size > len(desc) {
			return Item{}, offset, false
		}
		return Item{
			Kind:    KindLong,
			Tag:     tag,
			Payload: desc[offset+3 : offset+3+size],
			Offset:  offset,
		}, offset + 3 + size, true
	}

	size := int(prefix & 0x03)
	if size == 3 {
		size = 4
	}
	if offset+1+size > len(desc) {
		return Item{}, offset, false
	}
	return Item{
		Kind:    ItemKind((prefix >> 2) & 0x03),
		Tag:     (prefix >> 4) & 0x0F,
		Payload: desc[offset+1 : offset+1+size],
		Offset:  offset,
	}, offset + 1 + size, true
}
