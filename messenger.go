package springroll

// Messages sent to the container.
const (
	MsgLearningEvent = "learningEvent"
	MsgAnalyticEvent = "analyticEvent"
	MsgLoadDone      = "loadDone"
	MsgFeatures      = "features"
	MsgFocus         = "focus"
	MsgEndGame       = "endGame"
)

// Messages received from the container.
const (
	MsgSoundMuted     = "soundMuted"
	MsgCaptionsMuted  = "captionsMuted"
	MsgMusicMuted     = "musicMuted"
	MsgVOMuted        = "voMuted"
	MsgSFXMuted       = "sfxMuted"
	MsgCaptionsStyles = "captionsStyles"
	MsgPause          = "pause"
	MsgSinglePlay     = "singlePlay"
	MsgPlayOptions    = "playOptions"
	MsgClose          = "close"
)

// MessageHandler receives the payload of a named container message.
type MessageHandler func(data any)

// Messenger abstracts the cross-frame message channel to the hosting page
// (iframe messaging in production, an in-process pair in tests and the demo).
// Supported is false when no container is present, e.g. standalone play; an
// unsupported messenger accepts every call and does nothing.
type Messenger interface {
	// Connect opens the channel. Harmless when unsupported.
	Connect() error
	// Supported reports whether a container is on the other end.
	Supported() bool
	// Send delivers a named message to the container.
	Send(name string, data any) error
	// On registers handlers for inbound messages by name.
	On(handlers map[string]MessageHandler)
	// Destroy closes the channel; sends after Destroy are dropped.
	Destroy()
}
