package loopback

import (
	springroll "github.com/naveencl/SpringRoll"
)

// Message is one named payload that crossed a messenger.
type Message struct {
	Name string
	Data any
}

// Messenger is one endpoint of an in-process message pair. Send delivers
// synchronously to the peer's handlers and records the message on the peer
// so tests and the demo can inspect traffic.
type Messenger struct {
	peer      *Messenger
	supported bool
	connected bool
	destroyed bool
	handlers  map[string]springroll.MessageHandler
	received  []Message
}

// NewPair returns connected game-side and container-side endpoints.
func NewPair() (game, container *Messenger) {
	game = &Messenger{supported: true, handlers: map[string]springroll.MessageHandler{}}
	container = &Messenger{supported: true, handlers: map[string]springroll.MessageHandler{}}
	game.peer = container
	container.peer = game
	return game, container
}

// NewUnsupported returns a standalone-play endpoint: no container on the
// other end, every call a no-op.
func NewUnsupported() *Messenger {
	return &Messenger{handlers: map[string]springroll.MessageHandler{}}
}

func (m *Messenger) Connect() error {
	if m.supported {
		m.connected = true
	}
	return nil
}

func (m *Messenger) Supported() bool { return m.supported }

func (m *Messenger) Send(name string, data any) error {
	if !m.supported || m.destroyed || m.peer == nil || m.peer.destroyed {
		return nil
	}
	m.peer.received = append(m.peer.received, Message{Name: name, Data: data})
	if h, ok := m.peer.handlers[name]; ok {
		h(data)
	}
	return nil
}

func (m *Messenger) On(handlers map[string]springroll.MessageHandler) {
	for name, h := range handlers {
		m.handlers[name] = h
	}
}

func (m *Messenger) Destroy() {
	m.destroyed = true
	m.connected = false
	m.handlers = map[string]springroll.MessageHandler{}
}

// Received returns every message delivered to this endpoint, in order.
func (m *Messenger) Received() []Message { return m.received }

// ReceivedNames returns just the message names, in delivery order.
func (m *Messenger) ReceivedNames() []string {
	names := make([]string, len(m.received))
	for i, msg := range m.received {
		names[i] = msg.Name
	}
	return names
}

// Connected reports whether Connect ran and Destroy has not.
func (m *Messenger) Connected() bool { return m.connected }
