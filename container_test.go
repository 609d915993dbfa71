package springroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	springroll "github.com/naveencl/SpringRoll"
	"github.com/naveencl/SpringRoll/internal/loopback"
)

type captionRecorder struct {
	classes []string
}

func (c *captionRecorder) SetStyleClass(class string) {
	c.classes = append(c.classes, class)
}

// fixture wires both bridges to loopback collaborators. Tests may adjust
// options and application fields between newFixture and start.
type fixture struct {
	app        *springroll.Application
	bus        *loopback.Bus
	opts       *springroll.Options
	game       *loopback.Messenger
	container  *loopback.Messenger
	visf       *loopback.VisibilityFactory
	unload     *loopback.Unload
	captions   *captionRecorder
	dispatcher *loopback.Dispatcher

	endGames []string
}

func newFixture() *fixture {
	f := &fixture{
		bus:      loopback.NewBus(),
		opts:     springroll.NewOptions(),
		visf:     &loopback.VisibilityFactory{},
		unload:   loopback.NewUnload(),
		captions: &captionRecorder{},
	}
	f.game, f.container = loopback.NewPair()

	f.app = springroll.NewApplication(f.bus, f.opts)
	f.app.Unload = f.unload
	f.app.Captions = f.captions
	f.app.Features = springroll.Features{Learning: true, Sound: true, Captions: true}

	f.bus.On(springroll.EventEndGame, func(data any) {
		exitType, _ := data.(string)
		f.endGames = append(f.endGames, exitType)
	})

	f.app.AddPlugin(springroll.NewContainerBridge(f.game, f.visf.New))
	f.app.AddPlugin(springroll.NewLearningBridge(
		func(a *springroll.Application, debug bool) springroll.Dispatcher {
			f.dispatcher = loopback.NewDispatcher(a, debug).(*loopback.Dispatcher)
			return f.dispatcher
		}, false))
	return f
}

func (f *fixture) start() {
	f.app.Setup()
	f.app.Preload()
}

func (f *fixture) containerMessages(name string) []loopback.Message {
	var out []loopback.Message
	for _, m := range f.container.Received() {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

func TestSinglePlayEnd(t *testing.T) {
	t.Run("after singlePlay message ends the game once", func(t *testing.T) {
		f := newFixture()
		f.start()

		require.NoError(t, f.container.Send(springroll.MsgSinglePlay, nil))
		assert.True(t, f.app.State.SinglePlay)

		f.app.SinglePlayEnd()
		require.Equal(t, []string{springroll.ExitGameCompleted}, f.endGames)
		assert.True(t, f.app.Destroyed())

		// Calling again after destruction stays a no-op.
		f.app.SinglePlayEnd()
		assert.Equal(t, []string{springroll.ExitGameCompleted}, f.endGames)
	})

	t.Run("without singlePlay is a no-op", func(t *testing.T) {
		f := newFixture()
		f.start()

		f.app.SinglePlayEnd()
		assert.Empty(t, f.endGames)
		assert.False(t, f.app.Destroyed())
	})

	t.Run("honors the singlePlay option", func(t *testing.T) {
		f := newFixture()
		f.opts.Set("singlePlay", true)
		f.start()

		f.app.SinglePlayEnd()
		assert.Equal(t, []string{springroll.ExitGameCompleted}, f.endGames)
	})
}

func TestPlayOptionsMerge(t *testing.T) {
	f := newFixture()
	f.opts.Set("playOptions", map[string]any{"a": 1})
	f.start()

	require.NoError(t, f.container.Send(springroll.MsgPlayOptions, map[string]any{"b": 2}))
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, f.app.State.PlayOptions)

	require.NoError(t, f.container.Send(springroll.MsgPlayOptions, map[string]any{"a": 3}))
	assert.Equal(t, map[string]any{"a": 3, "b": 2}, f.app.State.PlayOptions)
}

func TestPlayOptionsWithoutInitial(t *testing.T) {
	f := newFixture()
	f.start()

	require.Nil(t, f.app.State.PlayOptions)
	require.NoError(t, f.container.Send(springroll.MsgPlayOptions, map[string]any{"mode": "easy"}))
	assert.Equal(t, map[string]any{"mode": "easy"}, f.app.State.PlayOptions)
}

func TestCaptionsStyles(t *testing.T) {
	f := newFixture()
	f.start()

	require.NoError(t, f.container.Send(springroll.MsgCaptionsStyles, map[string]any{
		"size":       "lg",
		"background": "black",
		"color":      "white",
		"edge":       "none",
		"font":       "arial",
		"align":      "left",
	}))
	require.Len(t, f.captions.classes, 1)
	assert.Equal(t, "size-lg bg-black color-white edge-none font-arial align-left",
		f.captions.classes[0])
}

func TestCaptionsStylesWithoutElement(t *testing.T) {
	f := newFixture()
	f.app.Captions = nil
	f.start()

	// Must not panic, must not do anything.
	require.NoError(t, f.container.Send(springroll.MsgCaptionsStyles, map[string]any{"size": "lg"}))
}

func TestPause(t *testing.T) {
	f := newFixture()
	f.start()

	require.NoError(t, f.container.Send(springroll.MsgPause, true))
	assert.True(t, f.app.State.Paused)
	assert.False(t, f.app.State.Enabled)

	require.NoError(t, f.container.Send(springroll.MsgPause, false))
	assert.False(t, f.app.State.Paused)
	assert.True(t, f.app.State.Enabled)
}

func TestMuteFlags(t *testing.T) {
	f := newFixture()
	f.start()

	tests := []struct {
		msg  string
		flag func() bool
	}{
		{springroll.MsgSoundMuted, func() bool { return f.app.State.SoundMuted }},
		{springroll.MsgCaptionsMuted, func() bool { return f.app.State.CaptionsMuted }},
		{springroll.MsgMusicMuted, func() bool { return f.app.State.MusicMuted }},
		{springroll.MsgVOMuted, func() bool { return f.app.State.VOMuted }},
		{springroll.MsgSFXMuted, func() bool { return f.app.State.SFXMuted }},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			require.NoError(t, f.container.Send(tt.msg, true))
			assert.True(t, tt.flag())
			require.NoError(t, f.container.Send(tt.msg, false))
			assert.False(t, tt.flag())
		})
	}
}

func TestLoadDoneSentOnce(t *testing.T) {
	f := newFixture()
	f.start()

	f.bus.Trigger(springroll.EventLoaded, nil)
	f.bus.Trigger(springroll.EventLoaded, nil)
	assert.Len(t, f.containerMessages(springroll.MsgLoadDone), 1)
}

func TestFeaturesSentOnPreload(t *testing.T) {
	f := newFixture()
	f.start()

	msgs := f.containerMessages(springroll.MsgFeatures)
	require.Len(t, msgs, 1)
	features, ok := msgs[0].Data.(springroll.Features)
	require.True(t, ok)
	assert.True(t, features.Learning)
	assert.True(t, features.Captions)
	assert.False(t, features.Hints)
}

func TestPreloadDisablesAutoPause(t *testing.T) {
	f := newFixture()
	require.True(t, f.app.State.AutoPause)
	f.start()
	assert.False(t, f.app.State.AutoPause)
}

func TestFocusMessages(t *testing.T) {
	f := newFixture()
	f.start()

	require.NotNil(t, f.visf.Last)
	f.visf.Last.Show()
	f.visf.Last.Hide()

	msgs := f.containerMessages(springroll.MsgFocus)
	require.Len(t, msgs, 2)
	assert.Equal(t, true, msgs[0].Data)
	assert.Equal(t, false, msgs[1].Data)
}

func TestEventForwarding(t *testing.T) {
	f := newFixture()
	f.start()

	f.bus.Trigger(springroll.EventLearning, map[string]any{"code": "3010"})
	f.bus.Trigger(springroll.EventAnalytic, map[string]any{"action": "click"})
	f.bus.Trigger(springroll.EventAnalytic, map[string]any{"action": "click"})

	assert.Len(t, f.containerMessages(springroll.MsgLearningEvent), 1)
	assert.Len(t, f.containerMessages(springroll.MsgAnalyticEvent), 2)
}

func TestCloseMessage(t *testing.T) {
	f := newFixture()
	f.start()

	require.NoError(t, f.container.Send(springroll.MsgClose, nil))
	assert.Equal(t, []string{springroll.ExitClosedContainer}, f.endGames)
	assert.True(t, f.app.Destroyed())
}

func TestEndGameEmitsBeforeDestruction(t *testing.T) {
	f := newFixture()
	f.start()

	destroyedDuringEvent := true
	f.bus.On(springroll.EventEndGame, func(any) {
		destroyedDuringEvent = f.app.Destroyed()
	})

	f.app.EndGame("")
	assert.False(t, destroyedDuringEvent, "endGame event must fire before destruction")
	assert.True(t, f.app.Destroyed())
}

func TestTeardownSendsFinalEndGame(t *testing.T) {
	f := newFixture()
	f.start()

	f.app.EndGame(springroll.ExitGameCompleted)

	msgs := f.container.ReceivedNames()
	require.NotEmpty(t, msgs)
	assert.Equal(t, springroll.MsgEndGame, msgs[len(msgs)-1])
	assert.True(t, f.visf.Last.Destroyed())

	// The messenger is gone; nothing leaks out after destruction.
	before := len(f.container.Received())
	f.bus.Trigger(springroll.EventAnalytic, map[string]any{"late": true})
	assert.Len(t, f.container.Received(), before)
}

func TestUnloadEndsGameOnce(t *testing.T) {
	f := newFixture()
	f.start()

	f.unload.Fire()
	// Browsers fire both unload hooks; the handler must have removed itself.
	f.unload.Fire()

	assert.Equal(t, []string{springroll.ExitLeftSite}, f.endGames)
	assert.True(t, f.app.Destroyed())
}

func TestStandalonePlay(t *testing.T) {
	f := newFixture()
	standalone := loopback.NewUnsupported()
	f.app = springroll.NewApplication(f.bus, f.opts)
	f.app.AddPlugin(springroll.NewContainerBridge(standalone, f.visf.New))
	f.start()

	// No container: no features message, no visibility watcher, but the
	// endGame surface still works.
	assert.Nil(t, f.visf.Last)
	f.bus.Trigger(springroll.EventLoaded, nil)
	assert.Empty(t, standalone.Received())

	f.app.EndGame("")
	assert.True(t, f.app.Destroyed())
}
