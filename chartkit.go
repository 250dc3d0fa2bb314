// Package chartkit is a chart geometry and interaction engine: it turns
// heterogeneous data collections into normalized coordinates, emits
// per-archetype vector geometry, drives entrance animation progress and
// manages the selection/highlight/pan/zoom state machine. Rendering
// pixels and wiring platform gestures stay with the host; the engine
// only produces abstract geometry and state.
package chartkit

import (
	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/geometry"
	"github.com/raykavin/chartkit/pkg/logger"
	"github.com/raykavin/chartkit/pkg/plot"
)

// DefaultLog is the package-wide logger, configured from environment
// variables in init.go
var DefaultLog logger.Logger

// Serve mounts one dataset on a chart host and serves it over HTTP.
// It is the shortest path from a point collection to a live chart.
func Serve(name string, kind geometry.Kind, set *core.Dataset, options ...plot.Option) error {
	chart, err := plot.NewChart(DefaultLog, options...)
	if err != nil {
		return err
	}

	if _, err := chart.Mount(name, kind, set); err != nil {
		return err
	}

	server := plot.NewChartServer(chart, plot.NewStandardHTTPServer(), DefaultLog)
	return server.Start()
}
