package audio

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrNoPlayer reports that no media player could be found on the host.
var ErrNoPlayer = errors.New("no audio player found")

// playerArgs maps known players to the flags that make them play one file
// and exit without opening a UI.
var playerArgs = map[string][]string{
	"mpv":     {"--no-video", "--really-quiet"},
	"ffplay":  {"-nodisp", "-autoexit", "-loglevel", "quiet"},
	"mplayer": {"-really-quiet"},
	"afplay":  {},
	"aplay":   {"-q"},
}

// preferredPlayers is the detection order when no player is configured.
var preferredPlayers = []string{"mpv", "ffplay", "mplayer", "afplay", "aplay"}

// DetectPlayer returns the media player command to use.
// Configured command wins; otherwise the first player found on PATH.
func DetectPlayer(configured string) (string, error) {
	if configured != "" {
		fields := strings.Fields(configured)
		if _, err := exec.LookPath(fields[0]); err != nil {
			return "", ErrNoPlayer
		}
		return configured, nil
	}

	for _, player := range preferredPlayers {
		if _, err := exec.LookPath(player); err == nil {
			return player, nil
		}
	}

	return "", ErrNoPlayer
}

// Clip plays one downloaded answer file through an external player process.
// Pause kills the process; a later Play restarts from the beginning, which
// doubles as the seek-to-start primitive for a process-backed player.
type Clip struct {
	player string
	path   string
	cmd    *exec.Cmd
}

func NewClip(player, path string) *Clip {
	return &Clip{
		player: player,
		path:   path,
	}
}

func (c *Clip) Play() error {
	fields := strings.Fields(c.player)
	name := fields[0]
	args := append([]string(nil), fields[1:]...)
	if extra, ok := playerArgs[name]; ok {
		args = append(args, extra...)
	}
	args = append(args, c.path)

	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}

	c.cmd = cmd

	// Reap the process when it finishes on its own
	go func() { _ = cmd.Wait() }()

	return nil
}

func (c *Clip) Pause() error {
	if c.cmd == nil || c.cmd.Process == nil {
		return nil
	}
	err := c.cmd.Process.Kill()
	c.cmd = nil
	if err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (c *Clip) Rewind() error {
	// Process players always start from the beginning; nothing to seek.
	return nil
}
