package hiddesc

import "fmt"

// FieldDiff is one mismatching field between two layout tables.
type FieldDiff struct {
	ReportID uint8
	Field    string
	A        uint32
	B        uint32
}

func (d FieldDiff) String() string {
	return fmt.Sprintf("report %d: %s: %d != %d", d.ReportID, d.Field, d.A, d.B)
}

// DiffTables structurally compares two layout tables and returns every
// mismatching field. An empty result means the tables are identical. Report
// ids present in only one table are reported as a single "present" diff.
func DiffTables(a, b LayoutTable) []FieldDiff {
	var diffs []FieldDiff

	seen := make(map[uint8]struct{}, len(a)+len(b))
	ids := make([]uint8, 0, len(a)+len(b))
	for _, id := range a.ReportIDs() {
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, id := range b.ReportIDs() {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}

	for _, id := range ids {
		la, aok := a[id]
		lb, bok := b[id]
		if !aok || !bok {
			diffs = append(diffs, FieldDiff{ReportID: id, Field: "present", A: boolUint32(aok), B: boolUint32(bok)})
			continue
		}
		diffs = append(diffs, diffLayouts(id, la, lb)...)
	}
	return diffs
}

func diffLayouts(id uint8, a, b ReportLayout) []FieldDiff {
	fields := []struct {
		name string
		a, b uint32
	}{
		{"buttonsBitOffset", a.ButtonsBitOffset, b.ButtonsBitOffset},
		{"buttonsCount", a.ButtonsCount, b.ButtonsCount},
		{"xBitOffset", a.XBitOffset, b.XBitOffset},
		{"xSize", a.XSize, b.XSize},
		{"yBitOffset", a.YBitOffset, b.YBitOffset},
		{"ySize", a.YSize, b.YSize},
		{"wheelBitOffset", a.WheelBitOffset, b.WheelBitOffset},
		{"wheelSize", a.WheelSize, b.WheelSize},
		{"panBitOffset", a.PanBitOffset, b.PanBitOffset},
		{"panSize", a.PanSize, b.PanSize},
		{"totalBits", a.TotalBits, b.TotalBits},
	}
	var diffs []FieldDiff
	for _, f := range fields {
		if f.a != f.b {
			diffs = append(diffs, FieldDiff{ReportID: id, Field: f.name, A: f.a, B: f.b})
		}
	}
	return diffs
}

func boolUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
