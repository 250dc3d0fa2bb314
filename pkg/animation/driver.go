// Package animation owns the single progress scalar that scales emitted
// geometry during entrance and update transitions. The host render loop
// advances the driver once per frame; the driver itself never schedules
// anything.
package animation

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// DefaultDuration is the entrance transition length used when no
// duration option is supplied
const DefaultDuration = 600 * time.Millisecond

// Easing shapes the raw elapsed fraction into the published progress
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseInQuad(t float64) float64 { return t * t }

func EaseOutQuad(t float64) float64 { return t * (2 - t) }

func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func EaseOutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// Driver advances a progress scalar from 0 to 1 over a configured
// duration. Replacing the chart data restarts the driver from zero
// (full re-entrance); see Restart. The driver carries its own lock:
// Finish and Restart may arrive from gesture or feed goroutines while
// the render loop is mid-Advance.
type Driver struct {
	mu       sync.Mutex
	duration time.Duration
	easing   Easing
	elapsed  time.Duration
}

// Option configures a Driver
type Option func(*Driver) error

// WithDuration sets the transition duration
func WithDuration(d time.Duration) Option {
	return func(drv *Driver) error {
		if d <= 0 {
			return fmt.Errorf("%w: non-positive animation duration %v", core.ErrConfiguration, d)
		}
		drv.duration = d
		return nil
	}
}

// WithDurationString sets the transition duration from a string such as
// "450ms" or "1.5s"
func WithDurationString(s string) Option {
	return func(drv *Driver) error {
		d, err := str2duration.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%w: bad animation duration %q: %v", core.ErrConfiguration, s, err)
		}
		return WithDuration(d)(drv)
	}
}

// WithEasing sets the easing curve
func WithEasing(e Easing) Option {
	return func(drv *Driver) error {
		if e == nil {
			return fmt.Errorf("%w: nil easing", core.ErrConfiguration)
		}
		drv.easing = e
		return nil
	}
}

// New creates a driver at progress zero
func New(options ...Option) (*Driver, error) {
	drv := &Driver{
		duration: DefaultDuration,
		easing:   EaseOutCubic,
	}

	for _, option := range options {
		if err := option(drv); err != nil {
			return nil, err
		}
	}

	return drv, nil
}

// Advance accumulates frame time and returns the new progress.
// Negative deltas are ignored so a misbehaving host clock cannot run
// the animation backwards.
func (d *Driver) Advance(dt time.Duration) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if dt > 0 && d.elapsed < d.duration {
		d.elapsed += dt
		if d.elapsed > d.duration {
			d.elapsed = d.duration
		}
	}
	return d.progressLocked()
}

// Progress returns the eased progress in [0,1]
func (d *Driver) Progress() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.progressLocked()
}

func (d *Driver) progressLocked() float64 {
	raw := float64(d.elapsed) / float64(d.duration)
	return core.Clamp(d.easing(math.Min(raw, 1)), 0, 1)
}

// Running reports whether the transition is still in flight
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.elapsed < d.duration
}

// Finish jumps straight to progress 1. This is the reduced-motion
// escape hatch: the next geometry build sees the final state with no
// intermediate frame.
func (d *Driver) Finish() {
	d.mu.Lock()
	d.elapsed = d.duration
	d.mu.Unlock()
}

// Restart resets progress to zero for a fresh entrance transition
func (d *Driver) Restart() {
	d.mu.Lock()
	d.elapsed = 0
	d.mu.Unlock()
}
