package main

import (
	"context"
	"log"
	"time"

	springroll "github.com/naveencl/SpringRoll"
	"github.com/naveencl/SpringRoll/internal/loopback"
)

// SessionStep is one scripted action of the demo session.
type SessionStep struct {
	Name string
	Run  func()
}

// SessionDriver plays the scripted session one step per tick, standing in
// for a real player and container page.
type SessionDriver struct {
	steps    []SessionStep
	interval time.Duration
}

func NewSessionDriver(interval time.Duration, steps []SessionStep) *SessionDriver {
	return &SessionDriver{steps: steps, interval: interval}
}

func (d *SessionDriver) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for _, step := range d.steps {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Printf("session: %s", step.Name)
			step.Run()
		}
	}
}

// demoScript exercises the whole bridge surface: lifecycle events from the
// game side, commands from the container side, and a learning event in
// between.
func demoScript(app *springroll.Application, container *loopback.Messenger,
	visf *loopback.VisibilityFactory, dispatcher func() *loopback.Dispatcher, cfg Config) []SessionStep {

	containerSend := func(name string, data any) func() {
		return func() {
			if container == nil {
				return
			}
			_ = container.Send(name, data)
		}
	}

	return []SessionStep{
		{"config loaded", func() {
			app.Bus.Trigger(springroll.EventConfigLoaded, &springroll.GameConfig{
				Spec:           cfg.Learning.Spec,
				SpecDictionary: cfg.Learning.Dictionary,
			})
		}},
		{"init", func() { app.Bus.Trigger(springroll.EventInit, nil) }},
		{"loaded", func() { app.Bus.Trigger(springroll.EventLoaded, nil) }},
		{"container pauses", containerSend(springroll.MsgPause, true)},
		{"container resumes", containerSend(springroll.MsgPause, false)},
		{"container mutes sound", containerSend(springroll.MsgSoundMuted, true)},
		{"container mutes music", containerSend(springroll.MsgMusicMuted, true)},
		{"container styles captions", containerSend(springroll.MsgCaptionsStyles, map[string]any{
			"size": "md", "background": "black", "color": "white",
			"edge": "none", "font": "arial", "align": "bottom",
		})},
		{"container adjusts play options", containerSend(springroll.MsgPlayOptions, map[string]any{
			"difficulty": "hard",
		})},
		{"player hides the tab", func() {
			if visf.Last != nil {
				visf.Last.Hide()
			}
		}},
		{"player returns", func() {
			if visf.Last != nil {
				visf.Last.Show()
			}
		}},
		{"game reports analytics", func() {
			app.Bus.Trigger(springroll.EventAnalytic, map[string]any{
				"category": "gameplay", "action": "level_up", "label": "level-2",
			})
		}},
		{"game records a round", func() {
			if d := dispatcher(); d != nil {
				d.Record("3010", map[string]any{"score": 4200})
			}
		}},
		{"container requests single play", containerSend(springroll.MsgSinglePlay, nil)},
		{"round ends", func() {
			if app.SinglePlayEnd != nil {
				app.SinglePlayEnd()
			}
		}},
	}
}
