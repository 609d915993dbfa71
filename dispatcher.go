package springroll

// GameConfig is the payload of the configLoaded event. Spec identifies the
// learning specification for this game; SpecDictionary optionally maps event
// codes to readable names and may be nil.
type GameConfig struct {
	Spec           string
	SpecDictionary map[string]string
}

// Dispatcher abstracts the learning/analytics dispatcher the learning bridge
// drives. Implementations live outside this module.
type Dispatcher interface {
	// AddMap installs an event-code dictionary. A nil map is allowed.
	AddMap(dict map[string]string)
	// SetSpec records the learning specification identifier.
	SetSpec(spec string)
	// OnLearningEvent registers a sink for events the dispatcher produces.
	OnLearningEvent(h Handler)
	// StartGame begins session tracking.
	StartGame()
	// EndGame finalizes the session with the given exit type.
	EndGame(exitType string)
	Destroy()
}

// DispatcherFactory builds a dispatcher bound to the application. The debug
// flag turns on whatever diagnostics the dispatcher offers.
type DispatcherFactory func(app *Application, debug bool) Dispatcher
