package hiddesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkTrace(t *testing.T) {
	var events []TraceEvent
	w := NewWalker(WithTrace(func(ev TraceEvent) {
		events = append(events, ev)
	}))
	w.Walk(mustHex(t, "05 01 09 02 A1 01 85 02 81 02 C0"))

	require.Len(t, events, 6)
	assert.Equal(t, "[0000] Usage Page (Generic Desktop)", events[0].String())
	assert.Equal(t, "[0002] Usage (Mouse)", events[1].String())
	assert.Equal(t, "[0004] Collection (Application)", events[2].String())
	assert.Equal(t, "[0006] Report ID (2)", events[3].String())
	assert.Equal(t, "[0008] Input (Data,Absolute,Variable)", events[4].String())
	assert.Equal(t, "[000A] End Collection", events[5].String())
}

func TestTraceUnknownItem(t *testing.T) {
	var events []TraceEvent
	w := NewWalker(WithTrace(func(ev TraceEvent) {
		events = append(events, ev)
	}))
	// Local tag 0xA (Delimiter) is not handled; it is traced and skipped.
	table := w.Walk(mustHex(t, "A9 01"))
	assert.Empty(t, table)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Name, "Unknown")
}

func TestUsageNames(t *testing.T) {
	assert.Equal(t, "Button 3", UsageName(UsagePageButton, 3))
	assert.Equal(t, "AC Pan", UsageName(UsagePageConsumer, UsageACPan))
	assert.Equal(t, "Wheel", UsageName(UsagePageGenericDesktop, UsageWheel))
	assert.Equal(t, "0xFFBC/0x0088", UsageName(0xFFBC, 0x88))
	assert.Equal(t, "Consumer", PageName(UsagePageConsumer))
}
