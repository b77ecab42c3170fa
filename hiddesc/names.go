package hiddesc

import "fmt"

// ItemName returns the descriptor item name for a decoded item, or a generic
// placeholder for unrecognized kind/tag combinations.
func ItemName(it Item) string {
	switch it.Kind {
	case KindMain:
		switch it.Tag {
		case TagInput:
			return "Input"
		case TagOutput:
			return "Output"
		case TagFeature:
			return "Feature"
		case TagCollection:
			return "Collection"
		case TagEndCollection:
			return "End Collection"
		}
	case KindGlobal:
		switch it.Tag {
		case TagUsagePage:
			return "Usage Page"
		case TagLogicalMinimum:
			return "Logical Minimum"
		case TagLogicalMaximum:
			return "Logical Maximum"
		case TagReportSize:
			return "Report Size"
		case TagReportID:
			return "Report ID"
		case TagReportCount:
			return "Report Count"
		}
	case KindLocal:
		switch it.Tag {
		case TagUsage:
			return "Usage"
		case TagUsageMinimum:
			return "Usage Minimum"
		case TagUsageMaximum:
			return "Usage Maximum"
		}
	case KindLong:
		return "Long Item"
	}
	return fmt.Sprintf("Unknown(kind=%d tag=0x%X)", it.Kind, it.Tag)
}

var pageNames = map[uint16]string{
	0x01: "Generic Desktop",
	0x02: "Simulation Controls",
	0x05: "Game Controls",
	0x06: "Generic Device Controls",
	0x07: "Keyboard/Keypad",
	0x08: "LEDs",
	0x09: "Button",
	0x0C: "Consumer",
	0x0D: "Digitizer",
}

// PageName returns the human-readable name of a usage page, falling back to
// the hex value for unknown pages.
func PageName(page uint16) string {
	if name, ok := pageNames[page]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", page)
}

var genericDesktopUsages = map[uint16]string{
	0x01: "Pointer",
	0x02: "Mouse",
	0x04: "Joystick",
	0x05: "Game Pad",
	0x06: "Keyboard",
	0x07: "Keypad",
	0x30: "X",
	0x31: "Y",
	0x32: "Z",
	0x38: "Wheel",
	0x39: "Hat Switch",
	0x80: "System Control",
}

// UsageName returns the human-readable name of a (page, id) usage pair.
func UsageName(page uint16, id uint16) string {
	switch page {
	case UsagePageGenericDesktop:
		if name, ok := genericDesktopUsages[id]; ok {
			return name
		}
	case UsagePageButton:
		return fmt.Sprintf("Button %d", id)
	case UsagePageConsumer:
		if id == UsageACPan {
			return "AC Pan"
		}
	}
	return fmt.Sprintf("%s/0x%04X", PageName(page), id)
}
