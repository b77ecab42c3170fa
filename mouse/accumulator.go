// Package mouse accumulates pointer motion so that input and output report
// rates can differ: the input side only adds deltas, the output side drains
// the accumulator on a fixed period.
package mouse

import (
	"sync"
)

// Motion is one outgoing batch, clamped to the ranges of a 16-bit X/Y,
// 8-bit wheel report.
type Motion struct {
	DX      int16
	DY      int16
	Wheel   int8
	Buttons uint8
}

// SendFunc delivers one motion batch. A non-nil error rolls the batch back
// into the accumulator.
type SendFunc func(Motion) error

// Accumulator collects deltas from the input side. All methods are safe for
// concurrent use. Internal counters are 32-bit so fast motion between
// flushes cannot overflow the outgoing field ranges silently; the overflow
// is carried to the next batch instead.
type Accumulator struct {
	mu      sync.Mutex
	dx      int32
	dy      int32
	wheel   int32
	buttons uint8

	motionDirty  bool
	buttonsDirty bool
}

func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add accumulates one input sample. Button state replaces the previous one.
func (a *Accumulator) Add(dx, dy, wheel int32, buttons uint8) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if dx != 0 || dy != 0 || wheel != 0 {
		a.dx += dx
		a.dy += dy
		a.wheel += wheel
		a.motionDirty = true
	}
	if buttons != a.buttons {
		a.buttons = buttons
		a.buttonsDirty = true
	}
}

// Clear drops all accumulated state, for reconnect scenarios.
func (a *Accumulator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dx = 0
	a.dy = 0
	a.wheel = 0
	a.buttons = 0
	a.motionDirty = false
	a.buttonsDirty = false
}

// Pending reports whether a flush would produce a batch.
func (a *Accumulator) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.motionDirty || a.buttonsDirty
}

// Flush takes one clamped batch and hands it to send. Deltas beyond the
// outgoing ranges stay in the accumulator for the next flush. When send
// fails the whole batch is added back, so no motion is lost.
func (a *Accumulator) Flush(send SendFunc) error {
	motion, ok := a.take()
	if !ok {
		return nil
	}
	if err := send(motion); err != nil {
		a.rollback(motion)
		return err
	}
	return nil
}

func (a *Accumulator) take() (Motion, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.motionDirty && !a.buttonsDirty {
		return Motion{}, false
	}

	dx := clampInt32(a.dx, -32768, 32767)
	dy := clampInt32(a.dy, -32768, 32767)
	wheel := clampInt32(a.wheel, -128, 127)

	// The clamped part leaves; the residual stays for the next tick.
	a.dx -= dx
	a.dy -= dy
	a.wheel -= wheel
	a.motionDirty = a.dx != 0 || a.dy != 0 || a.wheel != 0
	a.buttonsDirty = false

	return Motion{
		DX:      int16(dx),
		DY:      int16(dy),
		Wheel:   int8(wheel),
		Buttons: a.buttons,
	}, true
}

func (a *Accumulator) rollback(m Motion) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dx += int32(m.DX)
	a.dy += int32(m.DY)
	a.wheel += int32(m.Wheel)
	if m.DX != 0 || m.DY != 0 || m.Wheel != 0 {
		a.motionDirty = true
	}
	a.buttonsDirty = true
}

func clampInt32(v, min, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
