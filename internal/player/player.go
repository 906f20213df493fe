// Package player plays WAV files through the device speaker by shelling out
// to an external audio player (aplay on the Pi).
package player

import (
	"context"
	"fmt"
	"os/exec"
)

// Player invokes a configured playback command with a file path argument.
type Player struct {
	command string
}

// New returns a Player using the given command, defaulting to aplay.
func New(command string) *Player {
	if command == "" {
		command = "aplay"
	}
	return &Player{command: command}
}

// Play blocks until playback finishes or the context is canceled.
func (p *Player) Play(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, p.command, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %s: %w: %s", p.command, path, err, out)
	}
	return nil
}
