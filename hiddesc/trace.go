package hiddesc

import "fmt"

// TraceEvent describes one decoded item for diagnostics. Events are emitted
// before the item is applied, so usage names resolve against the usage page
// that was in effect when the item was read.
type TraceEvent struct {
	Offset int
	Item   Item
	Name   string
	Detail string
}

// TraceFunc receives trace events. It never feeds back into the walker.
type TraceFunc func(TraceEvent)

func (e TraceEvent) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("[%04X] %s", e.Offset, e.Name)
	}
	return fmt.Sprintf("[%04X] %s %s", e.Offset, e.Name, e.Detail)
}

func newTraceEvent(it Item, usagePage uint16) TraceEvent {
	return TraceEvent{
		Offset: it.Offset,
		Item:   it,
		Name:   ItemName(it),
		Detail: itemDetail(it, usagePage),
	}
}

func itemDetail(it Item, usagePage uint16) string {
	switch it.Kind {
	case KindLong:
		return fmt.Sprintf("tag=0x%02X size=%d", it.Tag, len(it.Payload))
	case KindGlobal:
		switch it.Tag {
		case TagUsagePage:
			return fmt.Sprintf("(%s)", PageName(uint16(DecodeUint(it.Payload))))
		case TagLogicalMinimum, TagLogicalMaximum:
			return fmt.Sprintf("(%d)", DecodeInt(it.Payload))
		case TagReportSize, TagReportID, TagReportCount:
			return fmt.Sprintf("(%d)", DecodeUint(it.Payload))
		}
	case KindLocal:
		switch it.Tag {
		case TagUsage, TagUsageMinimum, TagUsageMaximum:
			page, id := DecodeUsage(it.Payload)
			if page == 0 {
				page = usagePage
			}
			return fmt.Sprintf("(%s)", UsageName(page, id))
		}
	case KindMain:
		switch it.Tag {
		case TagInput, TagOutput, TagFeature:
			flags := DecodeUint(it.Payload)
			return fmt.Sprintf("(%s)", dataFlagsString(flags))
		case TagCollection:
			return fmt.Sprintf("(%s)", collectionTypeName(DecodeUint(it.Payload)))
		}
	}
	return ""
}

func dataFlagsString(flags uint32) string {
	s := "Data"
	if flags&0x01 != 0 {
		s += ",Relative"
	} else {
		s += ",Absolute"
	}
	if flags&0x02 != 0 {
		s += ",Variable"
	} else {
		s += ",Array"
	}
	return s
}

func collectionTypeName(typ uint32) string {
	switch typ {
	case 0x00:
		return "Physical"
	case 0x01:
		return "Application"
	case 0x02:
		return "Logical"
	case 0x03:
		return "Report"
	case 0x04:
		return "Named Array"
	case 0x05:
		return "Usage Switch"
	case 0x06:
		return "Usage Modifier"
	default:
		return fmt.Sprintf("0x%02X", typ)
	}
}
