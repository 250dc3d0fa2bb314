// Package interaction holds the per-chart-instance state machine for
// selection, highlight, pan and zoom. Every transition is a total
// function: each event has a defined effect in every state, including
// no-ops, so event handling can never fail mid-gesture.
package interaction

import (
	"fmt"
	"math"

	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/logger"
	"github.com/raykavin/chartkit/pkg/scale"
)

// NoPoint is the id value meaning "nothing selected/highlighted"
const NoPoint int64 = 0

// Default zoom bounds and tooltip offset
const (
	DefaultMinZoom       = 0.5
	DefaultMaxZoom       = 3.0
	DefaultTooltipMargin = 12.0
)

// Offset is a 2D pan displacement in screen pixels
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is a snapshot of the interaction state of one chart instance.
// It lives and dies with the instance and is never shared.
type State struct {
	SelectedID    int64   `json:"selected_id"`
	HighlightedID int64   `json:"highlighted_id"`
	PanOffset     Offset  `json:"pan_offset"`
	ZoomScale     float64 `json:"zoom_scale"`
}

// Config carries the interaction settings supplied by the host
// configuration layer
type Config struct {
	MinZoom       float64
	MaxZoom       float64
	PanEnabled    bool
	ZoomEnabled   bool
	TooltipMargin float64
}

// DefaultConfig returns the conventional interaction settings with both
// gestures enabled
func DefaultConfig() Config {
	return Config{
		MinZoom:       DefaultMinZoom,
		MaxZoom:       DefaultMaxZoom,
		PanEnabled:    true,
		ZoomEnabled:   true,
		TooltipMargin: DefaultTooltipMargin,
	}
}

// Controller is the interaction state machine. Highlight is transient
// (hover-like), selection is sticky (click-like); both may point at
// different points at the same time, but at most one point is selected.
type Controller struct {
	cfg   Config
	log   logger.Logger
	state State
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger enables transition tracing
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// New creates a controller in the idle state
func New(cfg Config, options ...Option) (*Controller, error) {
	if cfg.MinZoom <= 0 {
		return nil, fmt.Errorf("%w: min zoom must be positive, got %v", core.ErrConfiguration, cfg.MinZoom)
	}
	if cfg.MinZoom > cfg.MaxZoom {
		return nil, fmt.Errorf("%w: zoom bounds inverted [%v, %v]", core.ErrConfiguration, cfg.MinZoom, cfg.MaxZoom)
	}

	c := &Controller{
		cfg: cfg,
		state: State{
			SelectedID:    NoPoint,
			HighlightedID: NoPoint,
			ZoomScale:     1,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// State returns a snapshot of the current interaction state
func (c *Controller) State() State {
	return c.state
}

// PointerEnter highlights the hovered point without touching selection
func (c *Controller) PointerEnter(id int64) {
	c.state.HighlightedID = id
	c.trace("pointer enter", id)
}

// PointerLeave clears the highlight only when it still belongs to the
// leaving point. Stale leave events from a point hovered earlier are
// ignored.
func (c *Controller) PointerLeave(id int64) {
	if c.state.HighlightedID == id {
		c.state.HighlightedID = NoPoint
		c.trace("pointer leave", id)
	}
}

// Tap toggles selection: tapping the selected point deselects it,
// tapping another point moves the single selection there.
func (c *Controller) Tap(id int64) {
	if c.state.SelectedID == id {
		c.state.SelectedID = NoPoint
		c.trace("deselect", id)
		return
	}

	c.state.SelectedID = id
	c.trace("select", id)
}

// Pan accumulates a drag delta into the pan offset. Ignored while
// panning is disabled by configuration. Non-finite deltas are no-ops,
// the offset must stay recoverable by further gestures.
func (c *Controller) Pan(dx, dy float64) {
	if !c.cfg.PanEnabled || !isFiniteDelta(dx) || !isFiniteDelta(dy) {
		return
	}

	c.state.PanOffset.X += dx
	c.state.PanOffset.Y += dy
}

// Zoom multiplies the current scale by factor and clamps the result
// into [MinZoom, MaxZoom]. Each gesture update multiplies the current
// scale, not the scale at gesture start, matching magnification
// gesture semantics. Non-positive or non-finite factors are no-ops.
func (c *Controller) Zoom(factor float64) {
	if !c.cfg.ZoomEnabled || factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}

	c.state.ZoomScale = core.Clamp(c.state.ZoomScale*factor, c.cfg.MinZoom, c.cfg.MaxZoom)
}

// DoubleTap resets pan and zoom to their neutral values. The host
// animates the visual snap-back; the state change itself is immediate.
func (c *Controller) DoubleTap() {
	c.state.PanOffset = Offset{}
	c.state.ZoomScale = 1
	c.trace("reset view", NoPoint)
}

// TooltipAnchor derives the screen position for the tooltip of the
// given point, offset upward by the configured margin so the tooltip
// never overlaps the marker. Recomputed on every render rather than
// stored.
func (c *Controller) TooltipAnchor(p core.Point, m scale.Mapper, width, height float64) (x, y float64) {
	x, y = m.ScreenPoint(p, width, height)
	return x, y - c.cfg.TooltipMargin
}

func isFiniteDelta(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (c *Controller) trace(event string, id int64) {
	if c.log != nil {
		c.log.WithField("point_id", id).Trace(event)
	}
}
