// Package feed moves point collections from their sources (files,
// real-time producers) onto the render path. Streaming sources always
// hand over complete replacement snapshots through a single atomic
// swap: the renderer never observes a collection mutated underneath it.
package feed

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jpillora/backoff"
	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/logger"
)

// DefaultCadence caps snapshot publication at roughly one host frame
const DefaultCadence = 16 * time.Millisecond

// Source produces complete point snapshots. Fetch blocks until a new
// snapshot is available or the context is done.
type Source interface {
	Fetch(ctx context.Context) ([]core.Point, error)
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func(ctx context.Context) ([]core.Point, error)

func (f SourceFunc) Fetch(ctx context.Context) ([]core.Point, error) {
	return f(ctx)
}

// Stream pulls snapshots from a source off the render path and
// publishes them at a bounded cadence. A generation counter guards
// against the primary teardown bug class: once Close is called, late
// snapshots from an in-flight fetch are dropped instead of reaching a
// destroyed chart instance.
type Stream struct {
	log      logger.Logger
	source   Source
	cadence  time.Duration
	gen      atomic.Uint64
	latest   atomic.Pointer[[]core.Point]
	onUpdate func([]core.Point)
}

// StreamOption configures a Stream
type StreamOption func(*Stream) error

// WithCadence caps how often snapshots are published. The cadence is a
// floor between publications, not a scheduler tick.
func WithCadence(d time.Duration) StreamOption {
	return func(s *Stream) error {
		if d <= 0 {
			return fmt.Errorf("%w: non-positive stream cadence %v", core.ErrConfiguration, d)
		}
		s.cadence = d
		return nil
	}
}

// WithOnUpdate registers a callback invoked with each published
// snapshot. The callback runs on the stream goroutine; hosts typically
// forward it onto their render loop.
func WithOnUpdate(fn func([]core.Point)) StreamOption {
	return func(s *Stream) error {
		s.onUpdate = fn
		return nil
	}
}

// NewStream creates a stream over the given source
func NewStream(log logger.Logger, source Source, options ...StreamOption) (*Stream, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: nil stream source", core.ErrConfiguration)
	}

	s := &Stream{
		log:     log,
		source:  source,
		cadence: DefaultCadence,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Start runs the fetch loop until the context is done or Close is
// called. Source errors back off exponentially and never propagate to
// the render path.
func (s *Stream) Start(ctx context.Context) {
	gen := s.gen.Load()

	go func() {
		retry := &backoff.Backoff{
			Min:    100 * time.Millisecond,
			Max:    10 * time.Second,
			Jitter: true,
		}

		for ctx.Err() == nil && s.gen.Load() == gen {
			points, err := s.source.Fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				wait := retry.Duration()
				s.log.WithError(err).Warnf("snapshot fetch failed, retrying in %v", wait)
				sleep(ctx, wait)
				continue
			}
			retry.Reset()

			s.publish(gen, points)
			sleep(ctx, s.cadence)
		}
	}()
}

// Publish hands a snapshot to the stream directly, for push-style
// sources that do not implement Fetch.
func (s *Stream) Publish(points []core.Point) {
	s.publish(s.gen.Load(), points)
}

// Latest returns the most recent published snapshot, or nil before the
// first publication
func (s *Stream) Latest() []core.Point {
	if p := s.latest.Load(); p != nil {
		return *p
	}
	return nil
}

// Close invalidates the current generation. In-flight fetches finish
// but their snapshots are discarded.
func (s *Stream) Close() {
	s.gen.Add(1)
}

func (s *Stream) publish(gen uint64, points []core.Point) {
	if s.gen.Load() != gen {
		s.log.Debug("dropping snapshot from stale stream generation")
		return
	}

	s.latest.Store(&points)
	if s.onUpdate != nil {
		s.onUpdate(points)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
