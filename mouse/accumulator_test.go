package mouse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlushEmpty(t *testing.T) {
	a := NewAccumulator()
	called := false
	require.NoError(t, a.Flush(func(Motion) error {
		called = true
		return nil
	}))
	assert.False(t, called)
	assert.False(t, a.Pending())
}

func TestFlushCombinesSamples(t *testing.T) {
	a := NewAccumulator()
	a.Add(3, -2, 0, 0)
	a.Add(4, -1, 1, 0x01)

	var got Motion
	require.NoError(t, a.Flush(func(m Motion) error {
		got = m
		return nil
	}))
	assert.Equal(t, Motion{DX: 7, DY: -3, Wheel: 1, Buttons: 0x01}, got)
	assert.False(t, a.Pending())
}

func TestFlushClampsWithResidual(t *testing.T) {
	a := NewAccumulator()
	a.Add(40000, 0, 200, 0)

	var batches []Motion
	send := func(m Motion) error {
		batches = append(batches, m)
		return nil
	}

	require.NoError(t, a.Flush(send))
	require.True(t, a.Pending(), "residual must survive the clamped batch")
	require.NoError(t, a.Flush(send))

	require.Len(t, batches, 2)
	assert.Equal(t, Motion{DX: 32767, Wheel: 127}, batches[0])
	assert.Equal(t, Motion{DX: 7233, Wheel: 73}, batches[1])
	assert.False(t, a.Pending())
}

func TestFlushRollsBackOnSendFailure(t *testing.T) {
	a := NewAccumulator()
	a.Add(10, -20, 1, 0x03)

	sendErr := errors.New("link down")
	err := a.Flush(func(Motion) error { return sendErr })
	require.ErrorIs(t, err, sendErr)
	require.True(t, a.Pending())

	var got Motion
	require.NoError(t, a.Flush(func(m Motion) error {
		got = m
		return nil
	}))
	assert.Equal(t, Motion{DX: 10, DY: -20, Wheel: 1, Buttons: 0x03}, got)
}

func TestButtonChangeAloneIsDirty(t *testing.T) {
	a := NewAccumulator()
	a.Add(0, 0, 0, 0x01)
	require.True(t, a.Pending())

	var got Motion
	require.NoError(t, a.Flush(func(m Motion) error {
		got = m
		return nil
	}))
	assert.Equal(t, Motion{Buttons: 0x01}, got)

	// Same button state again: nothing to send.
	a.Add(0, 0, 0, 0x01)
	assert.False(t, a.Pending())
}

func TestClear(t *testing.T) {
	a := NewAccumulator()
	a.Add(5, 5, 1, 0x07)
	a.Clear()
	assert.False(t, a.Pending())
}

func TestPumpFlushesPeriodically(t *testing.T) {
	a := NewAccumulator()
	a.Add(1, 2, 0, 0)

	var mu sync.Mutex
	var batches []Motion
	done := make(chan struct{})
	send := func(m Motion) error {
		mu.Lock()
		batches = append(batches, m)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}

	p := NewPump(zap.NewNop(), a, send, WithFlushInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Run(ctx)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not flush")
	}
	cancel()
	require.NoError(t, <-errCh)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, batches)
	assert.Equal(t, Motion{DX: 1, DY: 2}, batches[0])
}
