// Package springroll provides the container and learning bridge plugins for
// a hosted browser game: thin adapters that relay lifecycle, mute, caption,
// and analytics traffic between the game application and its enclosing page.
//
// The cross-frame transport, the learning dispatcher service, and the host
// framework itself are external collaborators consumed through the narrow
// interfaces defined here; internal/loopback carries in-process
// implementations for tests and the demo binary.
package springroll

import "sort"

// Application event names used by the bridges.
const (
	EventInit         = "init"
	EventLoaded       = "loaded"
	EventEndGame      = "endGame"
	EventConfigLoaded = "configLoaded"
	EventLearning     = "learningEvent"
	EventAnalytic     = "analyticEvent"
)

// Exit types reported with endGame.
const (
	ExitGameCompleted   = "game_completed"
	ExitClosedContainer = "closed_container"
	ExitLeftSite        = "left_site"
)

// Handler receives an event payload from the application bus.
type Handler func(data any)

// EventBus is the host application's publish/subscribe surface. Handlers for
// a given event run in subscription order; Once subscriptions fire at most
// once.
type EventBus interface {
	On(name string, h Handler)
	Once(name string, h Handler)
	Trigger(name string, data any)
}

// OptionsRegistry holds application options resolved before preload.
type OptionsRegistry interface {
	Add(name string, def any, persist bool)
	Get(name string) any
}

// CaptionStyler is the caption text element, when the game renders captions.
type CaptionStyler interface {
	SetStyleClass(class string)
}

// VisibilityWatcher reports page visibility until destroyed.
type VisibilityWatcher interface {
	Destroy()
}

// VisibilityFactory builds a watcher invoking onShow/onHide on visibility
// changes.
type VisibilityFactory func(onShow, onHide func()) VisibilityWatcher

// UnloadHook registers callbacks for the page-unload moment. Add returns a
// remove function; a removed callback never fires.
type UnloadHook interface {
	Add(fn func()) (remove func())
}

// Features describes which optional subsystems this build of the game has.
// The container bridge reports it to the hosting page so the page only shows
// controls that do something.
type Features struct {
	Learning bool `json:"learning"`
	Sound    bool `json:"sound"`
	Hints    bool `json:"hints"`
	Music    bool `json:"music"`
	VO       bool `json:"vo"`
	SFX      bool `json:"sfx"`
	Captions bool `json:"captions"`
}

// State is the shared mutable application state. Inbound container messages
// mutate it directly; everything runs on the application's single logical
// thread, so there is no locking.
type State struct {
	Paused  bool
	Enabled bool

	SinglePlay  bool
	PlayOptions map[string]any

	SoundMuted    bool
	CaptionsMuted bool
	MusicMuted    bool
	VOMuted       bool
	SFXMuted      bool

	// AutoPause controls pause-on-blur; the container bridge turns it off
	// and drives focus through the messenger instead.
	AutoPause bool
}

// Plugin is a unit attached to the application at construction time. Lower
// priority runs first during Setup and Preload; Teardown runs in reverse.
type Plugin interface {
	Name() string
	Priority() int
	Setup(app *Application)
	Preload(app *Application)
	Teardown(app *Application)
}

// Application is the injected context shared by the plugins: the event-bus
// handle, the options registry, and the mutable state. It carries only the
// attach/teardown machinery the bridges need; the host framework proper is
// an external collaborator.
type Application struct {
	Bus      EventBus
	Options  OptionsRegistry
	State    *State
	Features Features

	// Captions is nil when the game has no caption text element.
	Captions CaptionStyler
	// Unload is nil when the host exposes no unload hook.
	Unload UnloadHook

	// EndGame and SinglePlayEnd are installed by the container bridge
	// during setup.
	EndGame       func(exitType string)
	SinglePlayEnd func()

	plugins   []Plugin
	destroyed bool
}

// NewApplication builds an application context around the given bus and
// options registry. The game starts enabled with auto-pause on.
func NewApplication(bus EventBus, opts OptionsRegistry) *Application {
	return &Application{
		Bus:     bus,
		Options: opts,
		State:   &State{Enabled: true, AutoPause: true},
	}
}

// AddPlugin attaches a plugin. Call before Setup.
func (a *Application) AddPlugin(p Plugin) {
	a.plugins = append(a.plugins, p)
	sort.SliceStable(a.plugins, func(i, j int) bool {
		return a.plugins[i].Priority() < a.plugins[j].Priority()
	})
}

// Setup runs every plugin's Setup in priority order.
func (a *Application) Setup() {
	for _, p := range a.plugins {
		p.Setup(a)
	}
}

// Preload runs every plugin's Preload in priority order, after options are
// resolved and before the game starts.
func (a *Application) Preload() {
	for _, p := range a.plugins {
		p.Preload(a)
	}
}

// Destroy tears plugins down in reverse priority order. Safe to call more
// than once; only the first call does anything.
func (a *Application) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	for i := len(a.plugins) - 1; i >= 0; i-- {
		a.plugins[i].Teardown(a)
	}
}

// Destroyed reports whether Destroy has run.
func (a *Application) Destroyed() bool { return a.destroyed }

// Options is a basic in-memory OptionsRegistry for hosts that have no
// registry of their own.
type Options struct {
	values map[string]any
}

func NewOptions() *Options {
	return &Options{values: make(map[string]any)}
}

// Add registers an option with its default. The persist flag is accepted for
// contract compatibility; this registry keeps nothing across sessions.
func (o *Options) Add(name string, def any, persist bool) {
	if _, ok := o.values[name]; !ok {
		o.values[name] = def
	}
}

// Set overrides an option value, typically from query-string or host config.
func (o *Options) Set(name string, value any) {
	o.values[name] = value
}

func (o *Options) Get(name string) any {
	return o.values[name]
}
