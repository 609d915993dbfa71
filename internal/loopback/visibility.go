package loopback

import (
	springroll "github.com/naveencl/SpringRoll"
)

// Visibility is a manually driven visibility watcher.
type Visibility struct {
	onShow    func()
	onHide    func()
	destroyed bool
}

// VisibilityFactory tracks the most recent watcher it built so tests and the
// demo can drive it. New matches springroll.VisibilityFactory.
type VisibilityFactory struct {
	Last *Visibility
}

func (f *VisibilityFactory) New(onShow, onHide func()) springroll.VisibilityWatcher {
	f.Last = &Visibility{onShow: onShow, onHide: onHide}
	return f.Last
}

// Show reports the page becoming visible.
func (v *Visibility) Show() {
	if !v.destroyed && v.onShow != nil {
		v.onShow()
	}
}

// Hide reports the page being hidden.
func (v *Visibility) Hide() {
	if !v.destroyed && v.onHide != nil {
		v.onHide()
	}
}

func (v *Visibility) Destroy() {
	v.destroyed = true
}

// Destroyed reports whether Destroy has run.
func (v *Visibility) Destroyed() bool { return v.destroyed }
