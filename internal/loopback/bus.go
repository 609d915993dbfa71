// Package loopback carries in-process implementations of the collaborator
// contracts: an event bus, a paired messenger, a recording dispatcher, and
// manual visibility/unload hooks. They exist so the bridges can run in tests
// and in the demo binary without a real container page or learning service.
package loopback

import (
	springroll "github.com/naveencl/SpringRoll"
)

type subscription struct {
	fn    springroll.Handler
	once  bool
	spent bool
}

// Bus is a synchronous event bus. Handlers run in subscription order on the
// caller's goroutine; single-shot subscriptions fire at most once even when
// retriggered from inside a handler.
type Bus struct {
	subs map[string][]*subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*subscription)}
}

func (b *Bus) On(name string, h springroll.Handler) {
	b.subs[name] = append(b.subs[name], &subscription{fn: h})
}

func (b *Bus) Once(name string, h springroll.Handler) {
	b.subs[name] = append(b.subs[name], &subscription{fn: h, once: true})
}

func (b *Bus) Trigger(name string, data any) {
	// Copy so handlers can subscribe, and reentrant triggers can compact,
	// without affecting this delivery.
	current := append([]*subscription(nil), b.subs[name]...)
	for _, s := range current {
		if s.spent {
			continue
		}
		if s.once {
			s.spent = true
		}
		s.fn(data)
	}
	b.compact(name)
}

// compact drops spent single-shot subscriptions. It builds a fresh slice so
// a delivery still walking the old backing array sees stable elements.
func (b *Bus) compact(name string) {
	subs := b.subs[name]
	live := make([]*subscription, 0, len(subs))
	for _, s := range subs {
		if !s.spent {
			live = append(live, s)
		}
	}
	b.subs[name] = live
}
