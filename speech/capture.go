package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	// ErrUnsupported reports that the host has no speech-recognition
	// capability. Surfaced as a blocking notice, never a chat message.
	ErrUnsupported = errors.New("speech recognition is not available on this system")

	// ErrBusy reports a start while a capture session is already listening.
	ErrBusy = errors.New("voice capture already in progress")

	// ErrStopped reports a session cancelled before a transcript was
	// finalized.
	ErrStopped = errors.New("voice capture stopped")
)

// Engine is the host speech-recognition primitive: capability-gated, one
// finalized transcript per invocation, no interim results.
type Engine interface {
	Available() bool
	Transcribe(ctx context.Context, locale string) (string, error)
}

// Capture is the session state machine: Idle -> Listening -> Idle. At most
// one utterance is captured per session, and capture is exclusive. Owned by
// the conversation controller; nothing else starts or stops it.
type Capture struct {
	engine    Engine
	locale    string
	listening bool
	cancel    context.CancelFunc
}

func NewCapture(engine Engine, locale string) *Capture {
	return &Capture{
		engine: engine,
		locale: locale,
	}
}

func (c *Capture) Listening() bool {
	return c.listening
}

// Start transitions Idle -> Listening and returns the session context. A
// missing capability or a session already in flight is rejected without any
// state change.
func (c *Capture) Start() (context.Context, error) {
	if c.engine == nil || !c.engine.Available() {
		return nil, ErrUnsupported
	}
	if c.listening {
		return nil, ErrBusy
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.listening = true
	c.cancel = cancel

	return ctx, nil
}

// Transcribe blocks until the engine delivers the single finalized
// transcript or fails. Runs inside a one-shot command goroutine.
func (c *Capture) Transcribe(ctx context.Context) (string, error) {
	text, err := c.engine.Transcribe(ctx, c.locale)
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrStopped
		}
		return "", err
	}
	return text, nil
}

// Stop cancels an active session; the pending Transcribe resumes with
// ErrStopped and no transcript is delivered. Idempotent when Idle.
func (c *Capture) Stop() {
	if c.listening && c.cancel != nil {
		c.cancel()
	}
}

// End transitions Listening -> Idle once the session's outcome (transcript,
// error or stop) has been processed.
func (c *Capture) End() {
	c.listening = false
	c.cancel = nil
}

// CommandEngine runs an external transcriber command for each capture
// session. Capability means a non-empty command whose binary is on PATH.
// The recognition locale is passed via SHOPMATE_LOCALE.
type CommandEngine struct {
	command string
}

func NewCommandEngine(command string) *CommandEngine {
	return &CommandEngine{command: command}
}

func (e *CommandEngine) Available() bool {
	fields := strings.Fields(e.command)
	if len(fields) == 0 {
		return false
	}
	_, err := exec.LookPath(fields[0])
	return err == nil
}

func (e *CommandEngine) Transcribe(ctx context.Context, locale string) (string, error) {
	fields := strings.Fields(e.command)
	if len(fields) == 0 {
		return "", ErrUnsupported
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Env = append(os.Environ(), "SHOPMATE_LOCALE="+locale)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("transcriber failed: %w", err)
	}

	transcript := strings.TrimSpace(string(output))
	if transcript == "" {
		return "", errors.New("transcriber produced no text")
	}

	return transcript, nil
}
