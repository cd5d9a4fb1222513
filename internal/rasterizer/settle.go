package rasterizer

import (
	"context"
	"time"
)

// Step names the point in a capture sequence being waited for.
type Step int

const (
	// BeforeCapture follows a state change such as clearing the selection.
	BeforeCapture Step = iota
	// BeforeStage follows loading a captured image into a staging view.
	BeforeStage
)

// Settler waits until the visible state has caught up with the model before
// a capture reads it.
type Settler interface {
	Settle(ctx context.Context, step Step) error
}

// DelaySettler waits fixed durations. Hosts that redraw asynchronously use it
// when they offer no completion signal.
type DelaySettler struct {
	Capture time.Duration
	Stage   time.Duration
}

// DefaultDelays waits 200ms before a capture and 300ms before a staged one.
func DefaultDelays() DelaySettler {
	return DelaySettler{Capture: 200 * time.Millisecond, Stage: 300 * time.Millisecond}
}

// Settle sleeps for the step's delay or until ctx ends.
func (d DelaySettler) Settle(ctx context.Context, step Step) error {
	wait := d.Capture
	if step == BeforeStage {
		wait = d.Stage
	}
	if wait <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Immediate does not wait. It suits rasterizers that draw straight from the
// model, where nothing lags behind a state change.
type Immediate struct{}

// Settle reports only cancellation.
func (Immediate) Settle(ctx context.Context, _ Step) error { return ctx.Err() }
