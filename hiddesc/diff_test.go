package hiddesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffTablesEqual(t *testing.T) {
	desc := mustHex(t, sampleDescriptor)
	assert.Empty(t, DiffTables(Decode(desc), Decode(desc)))
}

func TestDiffTablesFieldMismatch(t *testing.T) {
	a := Decode(mustHex(t, sampleDescriptor))
	b := Decode(mustHex(t, sampleDescriptor))

	layout := b[2]
	layout.XBitOffset = 24
	layout.WheelSize = 16
	b[2] = layout

	diffs := DiffTables(a, b)
	require.Len(t, diffs, 2)
	assert.Equal(t, FieldDiff{ReportID: 2, Field: "xBitOffset", A: 16, B: 24}, diffs[0])
	assert.Equal(t, FieldDiff{ReportID: 2, Field: "wheelSize", A: 8, B: 16}, diffs[1])
	assert.Equal(t, "report 2: xBitOffset: 16 != 24", diffs[0].String())
}

func TestDiffTablesMissingReport(t *testing.T) {
	a := Decode(mustHex(t, sampleDescriptor))
	b := Decode(mustHex(t, sampleDescriptor))
	delete(b, 8)

	diffs := DiffTables(a, b)
	require.Len(t, diffs, 1)
	assert.Equal(t, FieldDiff{ReportID: 8, Field: "present", A: 1, B: 0}, diffs[0])

	assert.False(t, a.Equal(b))
}
