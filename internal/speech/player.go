package speech

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Player plays WAV data through an external program. At most one sound
// plays per Player: starting a new one kills the one in progress.
type Player struct {
	cmd  command
	proc exclusive
}

// DetectPlayer finds an audio player on PATH. override names a specific
// binary, e.g. from configuration.
func DetectPlayer(override string) (*Player, error) {
	c, ok := detect(playerCandidates(), override)
	if !ok {
		return nil, ErrNoPlayer
	}
	return &Player{cmd: c}, nil
}

// Play writes wav to a temp file and plays it, blocking until playback
// finishes, is superseded by another Play, or ctx is cancelled. A
// superseded playback returns nil.
func (p *Player) Play(ctx context.Context, wav []byte) error {
	f, err := os.CreateTemp("", "wordwhiz-*.wav")
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(wav); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio: %w", err)
	}

	args := append(append([]string{}, p.cmd.args...), f.Name())
	superseded, err := p.proc.run(exec.CommandContext(ctx, p.cmd.bin, args...))
	if superseded || ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", p.cmd.bin, err)
	}
	return nil
}

// Stop kills the sound in progress, if any.
func (p *Player) Stop() { p.proc.stop() }

// Playing reports whether a sound is in progress.
func (p *Player) Playing() bool { return p.proc.busy() }
