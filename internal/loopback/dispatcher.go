package loopback

import (
	"log"
	"time"

	"github.com/google/uuid"

	springroll "github.com/naveencl/SpringRoll"
)

// LearningEvent is the record shape the loopback dispatcher produces.
type LearningEvent struct {
	EventID   string         `json:"event_id"`
	Spec      string         `json:"spec"`
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Dispatcher is an in-process learning dispatcher: it stamps events with
// uuids, resolves event codes through the installed dictionary, and hands
// every event to the registered sinks. Session boundaries are recorded as
// ordinary events with the codes below.
type Dispatcher struct {
	debug     bool
	spec      string
	dict      map[string]string
	sinks     []springroll.Handler
	destroyed bool

	started  bool
	exitType string
}

// Session boundary event codes.
const (
	CodeSessionStart = "2000"
	CodeSessionEnd   = "2010"
)

// NewDispatcher matches springroll.DispatcherFactory.
func NewDispatcher(_ *springroll.Application, debug bool) springroll.Dispatcher {
	return &Dispatcher{debug: debug}
}

func (d *Dispatcher) AddMap(dict map[string]string) {
	d.dict = dict
}

func (d *Dispatcher) SetSpec(spec string) {
	d.spec = spec
}

func (d *Dispatcher) OnLearningEvent(h springroll.Handler) {
	d.sinks = append(d.sinks, h)
}

func (d *Dispatcher) StartGame() {
	if d.started {
		return
	}
	d.started = true
	d.Record(CodeSessionStart, nil)
}

func (d *Dispatcher) EndGame(exitType string) {
	if !d.started {
		return
	}
	d.started = false
	d.exitType = exitType
	d.Record(CodeSessionEnd, map[string]any{"exit_type": exitType})
}

// Record emits one learning event to every sink. Games drive this for their
// own pedagogical events; StartGame/EndGame use it for session boundaries.
func (d *Dispatcher) Record(code string, data map[string]any) {
	if d.destroyed {
		return
	}
	ev := LearningEvent{
		EventID:   uuid.NewString(),
		Spec:      d.spec,
		Code:      code,
		Name:      d.dict[code],
		Data:      data,
		Timestamp: time.Now(),
	}
	if d.debug {
		log.Printf("learning event %s code=%s name=%s", ev.EventID, ev.Code, ev.Name)
	}
	for _, sink := range d.sinks {
		sink(ev)
	}
}

func (d *Dispatcher) Destroy() {
	d.destroyed = true
	d.sinks = nil
}

// Spec returns the installed spec identifier.
func (d *Dispatcher) Spec() string { return d.spec }

// Dict returns the installed event-code dictionary, nil when none was set.
func (d *Dispatcher) Dict() map[string]string { return d.dict }

// ExitType returns the exit type passed to EndGame, empty before end.
func (d *Dispatcher) ExitType() string { return d.exitType }

// Destroyed reports whether Destroy has run.
func (d *Dispatcher) Destroyed() bool { return d.destroyed }
