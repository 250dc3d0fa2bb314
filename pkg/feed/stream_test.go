package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/logger"
	logrusadapter "github.com/raykavin/chartkit/pkg/logger/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()

	log, err := logrusadapter.New("error")
	require.NoError(t, err)
	return log
}

func snapshot(values ...float64) []core.Point {
	points := make([]core.Point, len(values))
	for i, v := range values {
		points[i] = core.NewPoint(float64(i), v)
	}
	return points
}

func TestStreamLatestBeforeFirstPublish(t *testing.T) {
	s, err := NewStream(testLogger(t), SourceFunc(func(context.Context) ([]core.Point, error) {
		return nil, nil
	}))
	require.NoError(t, err)

	assert.Nil(t, s.Latest())
}

func TestStreamPublishSwapsSnapshot(t *testing.T) {
	s, err := NewStream(testLogger(t), SourceFunc(func(context.Context) ([]core.Point, error) {
		return nil, nil
	}))
	require.NoError(t, err)

	first := snapshot(1, 2, 3)
	second := snapshot(4, 5)

	s.Publish(first)
	assert.Equal(t, first, s.Latest())

	s.Publish(second)
	assert.Equal(t, second, s.Latest())
}

func TestStreamOnUpdateCallback(t *testing.T) {
	var got []core.Point

	s, err := NewStream(testLogger(t),
		SourceFunc(func(context.Context) ([]core.Point, error) { return nil, nil }),
		WithOnUpdate(func(points []core.Point) { got = points }),
	)
	require.NoError(t, err)

	published := snapshot(1, 2)
	s.Publish(published)

	assert.Equal(t, published, got)
}

func TestStreamCloseDropsLatePublish(t *testing.T) {
	s, err := NewStream(testLogger(t), SourceFunc(func(context.Context) ([]core.Point, error) {
		return nil, nil
	}))
	require.NoError(t, err)

	kept := snapshot(1)
	s.Publish(kept)
	s.Close()

	// a publish racing past Close must not reach the render path
	s.Publish(snapshot(2))

	assert.Equal(t, kept, s.Latest())
}

func TestStreamStartDeliversSnapshots(t *testing.T) {
	delivered := make(chan []core.Point, 1)

	var calls atomic.Int32
	source := SourceFunc(func(ctx context.Context) ([]core.Point, error) {
		if calls.Add(1) > 1 {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return snapshot(1, 2, 3), nil
	})

	s, err := NewStream(testLogger(t), source,
		WithCadence(time.Millisecond),
		WithOnUpdate(func(points []core.Point) {
			select {
			case delivered <- points:
			default:
			}
		}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)

	select {
	case points := <-delivered:
		assert.Len(t, points, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestStreamStartRetriesAfterSourceError(t *testing.T) {
	delivered := make(chan []core.Point, 1)

	var calls atomic.Int32
	source := SourceFunc(func(ctx context.Context) ([]core.Point, error) {
		switch calls.Add(1) {
		case 1:
			return nil, errors.New("transient failure")
		case 2:
			return snapshot(9), nil
		default:
			<-ctx.Done()
			return nil, ctx.Err()
		}
	})

	s, err := NewStream(testLogger(t), source,
		WithCadence(time.Millisecond),
		WithOnUpdate(func(points []core.Point) {
			select {
			case delivered <- points:
			default:
			}
		}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)

	select {
	case points := <-delivered:
		require.Len(t, points, 1)
		assert.Equal(t, 9.0, points[0].Y)
	case <-time.After(5 * time.Second):
		t.Fatal("stream never recovered from the source error")
	}
}

func TestStreamConfigurationErrors(t *testing.T) {
	_, err := NewStream(testLogger(t), nil)
	assert.ErrorIs(t, err, core.ErrConfiguration)

	_, err = NewStream(testLogger(t),
		SourceFunc(func(context.Context) ([]core.Point, error) { return nil, nil }),
		WithCadence(0))
	assert.ErrorIs(t, err, core.ErrConfiguration)
}
