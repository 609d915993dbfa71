package springroll

import (
	"fmt"
	"log"
)

// CaptionStyles carries the caption styling the container user picked.
type CaptionStyles struct {
	Size       string `json:"size"`
	Background string `json:"background"`
	Color      string `json:"color"`
	Edge       string `json:"edge"`
	Font       string `json:"font"`
	Align      string `json:"align"`
}

// ClassString renders the styles as the caption element's class list.
func (s CaptionStyles) ClassString() string {
	return fmt.Sprintf("size-%s bg-%s color-%s edge-%s font-%s align-%s",
		s.Size, s.Background, s.Color, s.Edge, s.Font, s.Align)
}

// ContainerBridge relays traffic between the application and the hosting
// container page: application events out through the messenger, container
// commands in as state mutations.
type ContainerBridge struct {
	app           *Application
	messenger     Messenger
	newVisibility VisibilityFactory
	visibility    VisibilityWatcher

	singlePlay  bool
	playOptions map[string]any

	removeUnload func()
}

// NewContainerBridge wires the bridge to its messenger. The visibility
// factory may be nil when the host cannot report visibility.
func NewContainerBridge(m Messenger, vf VisibilityFactory) *ContainerBridge {
	return &ContainerBridge{messenger: m, newVisibility: vf}
}

func (b *ContainerBridge) Name() string  { return "container" }
func (b *ContainerBridge) Priority() int { return 5 }

// Setup registers options, opens the messenger, and wires outbound event
// forwarding. Everything past option registration is gated on messenger
// support so standalone play degrades to a no-op bridge.
func (b *ContainerBridge) Setup(app *Application) {
	b.app = app

	app.Options.Add("singlePlay", false, false)
	app.Options.Add("playOptions", nil, false)

	app.EndGame = b.EndGame
	app.SinglePlayEnd = b.SinglePlayEnd

	if err := b.messenger.Connect(); err != nil {
		log.Printf("container connect: %v", err)
	}
	if !b.messenger.Supported() {
		return
	}

	app.Bus.On(EventLearning, func(data any) {
		b.send(MsgLearningEvent, data)
	})
	app.Bus.On(EventAnalytic, func(data any) {
		b.send(MsgAnalyticEvent, data)
	})
	app.Bus.Once(EventLoaded, func(any) {
		b.send(MsgLoadDone, nil)
	})

	if app.Unload != nil {
		b.removeUnload = app.Unload.Add(func() {
			// Clear first so the second unload hook cannot fire this again.
			b.removeUnload()
			b.removeUnload = nil
			b.EndGame(ExitLeftSite)
		})
	}
}

// Preload captures resolved options, reports features, and hands focus
// tracking to the container.
func (b *ContainerBridge) Preload(app *Application) {
	if v, ok := app.Options.Get("singlePlay").(bool); ok {
		b.singlePlay = v
	}
	if m := asMap(app.Options.Get("playOptions")); m != nil {
		b.playOptions = m
	}
	app.State.SinglePlay = b.singlePlay
	app.State.PlayOptions = b.playOptions

	if !b.messenger.Supported() {
		return
	}

	b.messenger.On(map[string]MessageHandler{
		MsgSoundMuted:     func(d any) { app.State.SoundMuted = asBool(d) },
		MsgCaptionsMuted:  func(d any) { app.State.CaptionsMuted = asBool(d) },
		MsgMusicMuted:     func(d any) { app.State.MusicMuted = asBool(d) },
		MsgVOMuted:        func(d any) { app.State.VOMuted = asBool(d) },
		MsgSFXMuted:       func(d any) { app.State.SFXMuted = asBool(d) },
		MsgCaptionsStyles: b.onCaptionsStyles,
		MsgPause:          b.onPause,
		MsgSinglePlay:     func(any) { b.onSinglePlay() },
		MsgPlayOptions:    b.onPlayOptions,
		MsgClose:          func(any) { b.EndGame(ExitClosedContainer) },
	})

	b.send(MsgFeatures, app.Features)

	// The container owns pause now; blur must not pause the game twice.
	app.State.AutoPause = false
	if b.newVisibility != nil {
		b.visibility = b.newVisibility(
			func() { b.send(MsgFocus, true) },
			func() { b.send(MsgFocus, false) },
		)
	}
}

// Teardown sends the final endGame message and releases the messenger.
func (b *ContainerBridge) Teardown(app *Application) {
	if b.visibility != nil {
		b.visibility.Destroy()
		b.visibility = nil
	}
	if b.removeUnload != nil {
		b.removeUnload()
		b.removeUnload = nil
	}
	if b.messenger != nil {
		if b.messenger.Supported() {
			b.send(MsgEndGame, nil)
		}
		b.messenger.Destroy()
		b.messenger = nil
	}
}

// EndGame announces the exit on the application bus, then destroys the
// application. An empty exitType means the game ran to completion. After the
// application is destroyed this is a no-op.
func (b *ContainerBridge) EndGame(exitType string) {
	if b.app == nil || b.app.Destroyed() {
		return
	}
	if exitType == "" {
		exitType = ExitGameCompleted
	}
	b.app.Bus.Trigger(EventEndGame, exitType)
	b.app.Destroy()
}

// SinglePlayEnd ends the game when single-play mode is on. Safe to call
// unconditionally at the end of a round.
func (b *ContainerBridge) SinglePlayEnd() {
	if b.singlePlay {
		b.EndGame("")
	}
}

func (b *ContainerBridge) onPause(data any) {
	paused := asBool(data)
	b.app.State.Paused = paused
	b.app.State.Enabled = !paused
}

func (b *ContainerBridge) onSinglePlay() {
	b.singlePlay = true
	b.app.State.SinglePlay = true
}

// onPlayOptions shallow-merges the container's options over the existing
// ones: incoming keys win, untouched keys survive.
func (b *ContainerBridge) onPlayOptions(data any) {
	incoming := asMap(data)
	if incoming == nil {
		return
	}
	if b.playOptions == nil {
		b.playOptions = make(map[string]any, len(incoming))
	}
	for k, v := range incoming {
		b.playOptions[k] = v
	}
	b.app.State.PlayOptions = b.playOptions
}

func (b *ContainerBridge) onCaptionsStyles(data any) {
	if b.app.Captions == nil {
		return
	}
	styles, ok := asCaptionStyles(data)
	if !ok {
		return
	}
	b.app.Captions.SetStyleClass(styles.ClassString())
}

func (b *ContainerBridge) send(name string, data any) {
	if b.messenger == nil {
		return
	}
	if err := b.messenger.Send(name, data); err != nil {
		log.Printf("send %s to container: %v", name, err)
	}
}

// Container message payloads arrive untyped; the helpers below coerce the
// shapes the handlers accept.

func asBool(data any) bool {
	v, _ := data.(bool)
	return v
}

func asMap(data any) map[string]any {
	m, _ := data.(map[string]any)
	return m
}

func asCaptionStyles(data any) (CaptionStyles, bool) {
	switch v := data.(type) {
	case CaptionStyles:
		return v, true
	case *CaptionStyles:
		if v == nil {
			return CaptionStyles{}, false
		}
		return *v, true
	case map[string]any:
		get := func(key string) string {
			s, _ := v[key].(string)
			return s
		}
		return CaptionStyles{
			Size:       get("size"),
			Background: get("background"),
			Color:      get("color"),
			Edge:       get("edge"),
			Font:       get("font"),
			Align:      get("align"),
		}, true
	case map[string]string:
		return CaptionStyles{
			Size:       v["size"],
			Background: v["background"],
			Color:      v["color"],
			Edge:       v["edge"],
			Font:       v["font"],
			Align:      v["align"],
		}, true
	default:
		return CaptionStyles{}, false
	}
}