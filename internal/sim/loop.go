package sim

import (
	"context"
	"time"
)

// StepFunc advances the simulation by one fixed step. A non-nil error stops
// the loop.
type StepFunc func() error

// Loop paces a fixed-timestep simulation in wall-clock time.
type Loop struct {
	step     time.Duration
	stepFunc StepFunc
	ticker   *time.Ticker
	cancel   context.CancelFunc
	done     chan struct{}
	err      error
}

// NewLoop configures a loop that targets the provided frequency.
func NewLoop(targetHz float64, step StepFunc) *Loop {
	if targetHz <= 0 {
		targetHz = DefaultTickRate
	}
	if step == nil {
		step = func() error { return nil }
	}
	interval := time.Duration(float64(time.Second) / targetHz)
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &Loop{
		step:     interval,
		stepFunc: step,
	}
}

// Start begins ticking until the context is cancelled, a step fails or Stop
// is invoked.
func (l *Loop) Start(ctx context.Context) {
	if l == nil || l.stepFunc == nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.ticker = time.NewTicker(l.step)
	l.done = make(chan struct{})
	go func() {
		defer close(l.done)
		defer cancel()
		defer l.ticker.Stop()
		last := time.Now()
		accumulator := time.Duration(0)
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-l.ticker.C:
				// Run as many fixed steps as wall-clock time allows.
				accumulator += now.Sub(last)
				last = now
				for accumulator >= l.step && ctx.Err() == nil {
					if err := l.stepFunc(); err != nil {
						l.err = err
						return
					}
					accumulator -= l.step
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for its goroutine to exit.
func (l *Loop) Stop() {
	if l == nil {
		return
	}
	if l.cancel != nil {
		l.cancel()
	}
	if l.ticker != nil {
		l.ticker.Stop()
	}
	if l.done != nil {
		<-l.done
		l.done = nil
	}
}

// Done is closed when the loop goroutine exits.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Err returns the step error that stopped the loop, if any. Only valid
// after Done is closed.
func (l *Loop) Err() error {
	return l.err
}

// StepDuration exposes the configured timestep.
func (l *Loop) StepDuration() time.Duration {
	if l == nil {
		return 0
	}
	return l.step
}
