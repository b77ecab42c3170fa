package hiddesc

// DeviceClass is a coarse classification of a descriptor.
type DeviceClass uint8

const (
	DeviceUnknown DeviceClass = iota
	DeviceMouse
	DeviceKeyboard
)

func (c DeviceClass) String() string {
	switch c {
	case DeviceMouse:
		return "mouse"
	case DeviceKeyboard:
		return "keyboard"
	default:
		return "unknown"
	}
}

// Classify returns the device class derivable from a layout table alone:
// a device is a mouse when any report carries both X and Y fields.
func Classify(table LayoutTable) DeviceClass {
	for _, layout := range table {
		if layout.XSize > 0 && layout.YSize > 0 {
			return DeviceMouse
		}
	}
	return DeviceUnknown
}

// DeviceClass reports the class observed during the walk. Mouse detection
// relies on X/Y layout fields; keyboard detection requires a Keyboard usage
// opening a collection plus key-code (Keyboard/Keypad page) input fields,
// since many keyboards also expose vendor or consumer reports.
func (w *Walker) DeviceClass() DeviceClass {
	if cls := Classify(w.table()); cls != DeviceUnknown {
		return cls
	}
	if w.keyboardSeen && w.keyCodeBits > 0 {
		return DeviceKeyboard
	}
	return DeviceUnknown
}
