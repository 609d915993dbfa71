package loopback

type unloadEntry struct {
	fn      func()
	removed bool
}

// Unload is a manually fired unload hook. Fire runs callbacks in
// registration order; a callback that removes itself mid-fire (the bridge
// does, to stay single-shot) is skipped on any repeat Fire.
type Unload struct {
	entries []*unloadEntry
}

func NewUnload() *Unload {
	return &Unload{}
}

func (u *Unload) Add(fn func()) (remove func()) {
	e := &unloadEntry{fn: fn}
	u.entries = append(u.entries, e)
	return func() { e.removed = true }
}

// Fire simulates the page unloading.
func (u *Unload) Fire() {
	for _, e := range u.entries {
		if e.removed {
			continue
		}
		e.fn()
	}
}
