package sim

import (
	"context"
	"errors"
)

// ErrStopped is returned by Run when the context ends before all ticks ran.
var ErrStopped = errors.New("sim: run stopped")

// Run steps the world ticks times as fast as possible, calling onTick after
// each step when it is non-nil. It checks ctx between steps. With ticks <= 0
// it runs until ctx ends.
func (w *World) Run(ctx context.Context, ticks int, onTick func(*World)) error {
	for i := 0; ticks <= 0 || i < ticks; i++ {
		select {
		case <-ctx.Done():
			return errors.Join(ErrStopped, ctx.Err())
		default:
		}
		if err := w.Step(); err != nil {
			return err
		}
		if onTick != nil {
			onTick(w)
		}
	}
	return nil
}

// RunRealtime paces steps in wall-clock time until ctx ends, ticks steps
// have run (0 means no limit) or a step fails. Like Run, it returns
// ErrStopped when ctx ends first.
func (w *World) RunRealtime(parent context.Context, ticks int, onTick func(*World)) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var done int
	loop := NewLoop(1/w.dt, func() error {
		if err := w.Step(); err != nil {
			return err
		}
		done++
		if onTick != nil {
			onTick(w)
		}
		if ticks > 0 && done >= ticks {
			cancel()
		}
		return nil
	})
	loop.Start(ctx)
	<-loop.Done()
	loop.Stop()
	if err := loop.Err(); err != nil {
		return err
	}
	if err := parent.Err(); err != nil && (ticks <= 0 || done < ticks) {
		return errors.Join(ErrStopped, err)
	}
	return nil
}
