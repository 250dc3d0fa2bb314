package plot

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/raykavin/chartkit/pkg/animation"
	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/geometry"
	"github.com/raykavin/chartkit/pkg/interaction"
	"github.com/raykavin/chartkit/pkg/logger"
	"github.com/raykavin/chartkit/pkg/sampling"
	"github.com/raykavin/chartkit/pkg/scale"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

// Chart hosts named chart instances and serves their geometry to
// browser clients. Each instance owns its full engine state: dataset
// snapshot, interaction controller and animation driver. No two
// instances share state.
type Chart struct {
	sync.Mutex
	port               int
	debug              bool
	instances          map[string]*Instance
	policy             sampling.Policy
	interactionCfg     interaction.Config
	animationDuration  string
	indicators         []Indicator
	storage            core.DatasetStorage
	scriptContent      string
	indexHTML          *template.Template
	lastUpdate         time.Time
	log                logger.Logger
	wsManager          *WebSocketManager
	simulationInterval time.Duration
}

// Instance is one mounted chart: a dataset bound to an archetype with
// its own interaction and animation state. The dataset is swapped
// through an atomic pointer: readers see either the old snapshot or
// the new one, never a partial state.
type Instance struct {
	Name       string
	Kind       geometry.Kind
	dataset    atomic.Pointer[core.Dataset]
	matrix     [][]float64
	radar      []core.RadarValue
	controller *interaction.Controller
	driver     *animation.Driver
	lastFrame  time.Time
}

// Option defines a function type for configuring a Chart instance
type Option func(*Chart)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(chart *Chart) {
		chart.port = port
	}
}

// WithDebug enables debug mode (disables asset minification)
func WithDebug() Option {
	return func(chart *Chart) {
		chart.debug = true
	}
}

// WithPolicy overrides the default render budget
func WithPolicy(policy sampling.Policy) Option {
	return func(chart *Chart) {
		chart.policy = policy
	}
}

// WithInteraction overrides the default interaction settings
func WithInteraction(cfg interaction.Config) Option {
	return func(chart *Chart) {
		chart.interactionCfg = cfg
	}
}

// WithAnimationDuration sets the entrance transition length, e.g. "450ms"
func WithAnimationDuration(duration string) Option {
	return func(chart *Chart) {
		chart.animationDuration = duration
	}
}

// WithCustomIndicators adds overlay indicators to line charts
func WithCustomIndicators(indicators ...Indicator) Option {
	return func(chart *Chart) {
		chart.indicators = indicators
	}
}

// WithStorage persists every mounted dataset snapshot for replay
func WithStorage(storage core.DatasetStorage) Option {
	return func(chart *Chart) {
		chart.storage = storage
	}
}

// WithSimulation enables a synthetic random-walk stream for testing
func WithSimulation(interval time.Duration) Option {
	return func(chart *Chart) {
		chart.simulationInterval = interval
	}
}

// NewChart creates a new chart host with the provided options
func NewChart(log logger.Logger, options ...Option) (*Chart, error) {
	chart := &Chart{
		port:           8080,
		log:            log,
		instances:      make(map[string]*Instance),
		policy:         sampling.DefaultPolicy(),
		interactionCfg: interaction.DefaultConfig(),
	}

	for _, option := range options {
		option(chart)
	}

	var err error
	chart.indexHTML, err = template.ParseFS(staticFiles, "assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	chartJS, err := staticFiles.ReadFile("assets/js/main.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read main.js: %w", err)
	}

	transpileChartJS := api.Transform(string(chartJS), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !chart.debug,
		MinifyIdentifiers: !chart.debug,
		MinifyWhitespace:  !chart.debug,
	})

	if len(transpileChartJS.Errors) > 0 {
		return nil, fmt.Errorf("chart script failed with: %v", transpileChartJS.Errors)
	}

	chart.scriptContent = string(transpileChartJS.Code)
	chart.wsManager = NewWebSocketManager(log, chart)

	return chart, nil
}

// Mount binds a dataset to an archetype under a unique name, creating
// fresh interaction and animation state for the new instance
func (c *Chart) Mount(name string, kind geometry.Kind, set *core.Dataset) (*Instance, error) {
	instance, err := c.newInstance(name, kind)
	if err != nil {
		return nil, err
	}
	instance.dataset.Store(set)

	c.publish(instance)

	if c.storage != nil && set != nil {
		if err := c.storage.SaveDataset(set); err != nil {
			c.log.WithError(err).Warn("failed to persist dataset snapshot")
		}
	}

	return instance, nil
}

// MountMatrix binds a heatmap matrix under a unique name
func (c *Chart) MountMatrix(name string, matrix [][]float64) (*Instance, error) {
	instance, err := c.newInstance(name, geometry.KindHeatmap)
	if err != nil {
		return nil, err
	}
	instance.matrix = matrix

	c.publish(instance)
	return instance, nil
}

// MountRadar binds radar values under a unique name
func (c *Chart) MountRadar(name string, values []core.RadarValue) (*Instance, error) {
	instance, err := c.newInstance(name, geometry.KindRadar)
	if err != nil {
		return nil, err
	}
	instance.radar = values

	c.publish(instance)
	return instance, nil
}

func (c *Chart) newInstance(name string, kind geometry.Kind) (*Instance, error) {
	controller, err := interaction.New(c.interactionCfg, interaction.WithLogger(c.log))
	if err != nil {
		return nil, err
	}

	driverOptions := []animation.Option{}
	if c.animationDuration != "" {
		driverOptions = append(driverOptions, animation.WithDurationString(c.animationDuration))
	}
	driver, err := animation.New(driverOptions...)
	if err != nil {
		return nil, err
	}

	return &Instance{
		Name:       name,
		Kind:       kind,
		controller: controller,
		driver:     driver,
		lastFrame:  time.Now(),
	}, nil
}

// publish makes a fully assembled instance visible to the render path.
// Instances enter the map complete; no field is assigned after insertion.
func (c *Chart) publish(instance *Instance) {
	c.Lock()
	c.instances[instance.Name] = instance
	c.lastUpdate = time.Now()
	c.Unlock()

	c.log.WithFields(map[string]any{"chart": instance.Name, "kind": instance.Kind}).Info("chart mounted")
}

// Unmount destroys a chart instance and its state. Late snapshots for
// the old instance are dropped by the feed generation guard upstream.
func (c *Chart) Unmount(name string) {
	c.Lock()
	delete(c.instances, name)
	c.Unlock()
}

// Instance returns the named chart instance
func (c *Chart) Instance(name string) (*Instance, bool) {
	c.Lock()
	defer c.Unlock()
	instance, ok := c.instances[name]
	return instance, ok
}

// Names returns the mounted chart names
func (c *Chart) Names() []string {
	c.Lock()
	defer c.Unlock()

	names := make([]string, 0, len(c.instances))
	for name := range c.instances {
		names = append(names, name)
	}
	return names
}

// Replace swaps in a complete replacement snapshot and restarts the
// entrance animation, the documented data-replacement policy
func (c *Chart) Replace(name string, points []core.Point) {
	c.Lock()
	instance, ok := c.instances[name]
	if ok {
		instance.dataset.Store(&core.Dataset{Name: name, Points: points, UpdatedAt: time.Now()})
		instance.driver.Restart()
		c.lastUpdate = time.Now()
	}
	c.Unlock()

	if !ok {
		return
	}

	c.wsManager.BroadcastRefresh(name)
}

// Frame advances the instance animation and builds the current
// geometry. It is the once-per-frame entry point for the render loop.
// The whole advance-and-build runs under the chart mutex so a
// concurrent Replace can never swap the snapshot mid-build.
func (c *Chart) Frame(name string) (*geometry.Geometry, error) {
	c.Lock()
	defer c.Unlock()

	instance, ok := c.instances[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown chart %q", core.ErrInvalidData, name)
	}

	now := time.Now()
	progress := instance.driver.Advance(now.Sub(instance.lastFrame))
	instance.lastFrame = now

	return c.buildGeometry(instance, progress)
}

func (c *Chart) buildGeometry(instance *Instance, progress float64) (*geometry.Geometry, error) {
	switch instance.Kind {
	case geometry.KindHeatmap:
		return geometry.NewHeatmapBuilder().Build(instance.matrix, progress)

	case geometry.KindRadar:
		return geometry.RadarBuilder{}.Build(instance.radar, progress)
	}

	set := instance.Dataset()
	if set == nil {
		return nil, fmt.Errorf("%w: chart %q has no dataset", core.ErrInvalidData, instance.Name)
	}

	if instance.Kind == geometry.KindCandlestick {
		candles, err := c.policy.ApplyCandles(set.Candles)
		if err != nil {
			return nil, err
		}
		mapper := scale.New(core.ComputeCandleRange(candles))
		return geometry.NewCandlestickBuilder().Build(candles, mapper, progress)
	}

	points, err := c.policy.Apply(set.Points)
	if err != nil {
		return nil, err
	}
	mapper := scale.New(core.ComputeRange(points))

	switch instance.Kind {
	case geometry.KindLine:
		geom, err := geometry.LineBuilder{}.Build(points, mapper, progress)
		if err != nil {
			return nil, err
		}
		c.appendOverlays(geom, points, mapper, progress)
		return geom, nil
	case geometry.KindArea:
		return geometry.AreaBuilder{}.Build(points, mapper, progress)
	case geometry.KindBar:
		return geometry.NewBarBuilder().Build(points, mapper, progress)
	case geometry.KindPie:
		return geometry.NewPieBuilder().Build(points, mapper, progress)
	case geometry.KindDonut:
		return geometry.NewDonutBuilder(0.25).Build(points, mapper, progress)
	case geometry.KindScatter:
		return geometry.NewScatterBuilder().Build(points, mapper, progress)
	case geometry.KindBubble:
		return geometry.NewBubbleBuilder(0.02).Build(points, mapper, progress)
	default:
		return nil, fmt.Errorf("%w: unknown chart kind %q", core.ErrConfiguration, instance.Kind)
	}
}

// Controller exposes the instance state machine to gesture wiring
func (i *Instance) Controller() *interaction.Controller {
	return i.controller
}

// Driver exposes the instance animation driver
func (i *Instance) Driver() *animation.Driver {
	return i.driver
}

// Dataset returns the current snapshot bound to the instance
func (i *Instance) Dataset() *core.Dataset {
	return i.dataset.Load()
}

// TooltipAnchor resolves the screen anchor of the selected point, or
// false when nothing is selected
func (i *Instance) TooltipAnchor(width, height float64) (x, y float64, ok bool) {
	state := i.controller.State()
	set := i.Dataset()
	if state.SelectedID == interaction.NoPoint || set == nil {
		return 0, 0, false
	}

	for _, p := range set.Points {
		if p.ID == state.SelectedID {
			mapper := scale.New(core.ComputeRange(set.Points))
			x, y = i.controller.TooltipAnchor(p, mapper, width, height)
			return x, y, true
		}
	}

	return 0, 0, false
}

// GetPort returns the configured port
func (c *Chart) GetPort() int {
	return c.port
}

// GetWSManager returns the WebSocket manager
func (c *Chart) GetWSManager() *WebSocketManager {
	return c.wsManager
}

// RegisterHandlers registers all necessary handlers on the HTTP server
func (c *Chart) RegisterHandlers(server HTTPServer) {
	server.RegisterFileServer("/assets/", http.FS(staticFiles))

	server.RegisterHandler("/health", c.handleHealth)
	server.RegisterHandler("/geometry", c.handleGeometry)
	server.RegisterHandler("/summary", c.handleSummary)
	server.RegisterHandler("/export", c.handleExport)
	server.RegisterHandler("/ws", c.wsManager.HandleWebSocket)
	server.RegisterHandler("/", c.handleIndex)
}
