package mouse

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// DefaultFlushInterval matches a 7.5 ms connection interval, roughly 133 Hz.
const DefaultFlushInterval = 7500 * time.Microsecond

// Pump drains an Accumulator on a fixed period and forwards batches to a
// send function. Only one Run may be active per Pump.
type Pump struct {
	log      *zap.Logger
	acc      *Accumulator
	send     SendFunc
	interval time.Duration
	running  atomic.Bool
}

type PumpOption func(p *Pump)

func WithFlushInterval(d time.Duration) PumpOption {
	return func(p *Pump) {
		p.interval = d
	}
}

func NewPump(log *zap.Logger, acc *Accumulator, send SendFunc, opts ...PumpOption) *Pump {
	p := &Pump{
		log:      log,
		acc:      acc,
		send:     send,
		interval: DefaultFlushInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run flushes the accumulator every interval until the context is cancelled.
// Send failures are logged and retried on the next tick; the failed batch
// stays in the accumulator.
func (p *Pump) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return errors.New("pump is already running")
	}
	defer p.running.Store(false)

	p.log.Info("Pump started", zap.Duration("interval", p.interval))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.acc.Flush(p.send); err != nil {
				p.log.Warn("Flush failed, batch kept", zap.Error(err))
			}
		}
	}
}
