package audio

// Media is the playable-media primitive: play, pause, seek-to-start.
type Media interface {
	Play() error
	Pause() error
	Rewind() error
}

// Arbiter holds at most one active playback handle so spoken answers never
// overlap. Owned by the conversation controller; all playback goes through
// it rather than ad hoc pause/reset calls at each call site. Not safe for
// concurrent use - everything runs on the event loop.
type Arbiter struct {
	active Media
}

func NewArbiter() *Arbiter {
	return &Arbiter{}
}

// Play stops and discards any in-flight clip (pause, seek to start), then
// starts the new one. The new handle becomes the active one even when the
// old clip's teardown reported an error.
func (a *Arbiter) Play(m Media) error {
	if a.active != nil {
		_ = a.active.Pause()
		_ = a.active.Rewind()
	}

	a.active = m
	return m.Play()
}

// StopAll pauses and discards the active handle. Idempotent when nothing is
// playing.
func (a *Arbiter) StopAll() {
	if a.active == nil {
		return
	}
	_ = a.active.Pause()
	_ = a.active.Rewind()
	a.active = nil
}

// Playing reports whether a handle is currently active.
func (a *Arbiter) Playing() bool {
	return a.active != nil
}
