package springroll

// LearningBridge feeds application lifecycle into the learning dispatcher
// and bubbles the dispatcher's own events back onto the application bus,
// where the container bridge picks them up for the hosting page.
type LearningBridge struct {
	app           *Application
	dispatcher    Dispatcher
	newDispatcher DispatcherFactory
	debug         bool
}

func NewLearningBridge(f DispatcherFactory, debug bool) *LearningBridge {
	return &LearningBridge{newDispatcher: f, debug: debug}
}

func (b *LearningBridge) Name() string  { return "learning" }
func (b *LearningBridge) Priority() int { return 10 }

func (b *LearningBridge) Setup(app *Application) {
	b.app = app
	b.dispatcher = b.newDispatcher(app, b.debug)

	// Only the first config load can carry the spec; later reloads must not
	// reinstall it.
	app.Bus.Once(EventConfigLoaded, func(data any) {
		cfg, ok := asGameConfig(data)
		if !ok || cfg.Spec == "" {
			return
		}
		b.dispatcher.AddMap(cfg.SpecDictionary)
		b.dispatcher.SetSpec(cfg.Spec)
	})

	b.dispatcher.OnLearningEvent(func(data any) {
		app.Bus.Trigger(EventLearning, data)
	})

	app.Bus.Once(EventEndGame, func(data any) {
		exitType, _ := data.(string)
		b.dispatcher.EndGame(exitType)
	})

	app.Bus.Once(EventInit, func(any) {
		b.dispatcher.StartGame()
	})
}

// asGameConfig accepts the configLoaded payload by pointer or by value.
func asGameConfig(data any) (GameConfig, bool) {
	switch v := data.(type) {
	case *GameConfig:
		if v == nil {
			return GameConfig{}, false
		}
		return *v, true
	case GameConfig:
		return v, true
	default:
		return GameConfig{}, false
	}
}

func (b *LearningBridge) Preload(*Application) {}

func (b *LearningBridge) Teardown(*Application) {
	if b.dispatcher != nil {
		b.dispatcher.Destroy()
		b.dispatcher = nil
	}
}
