package speech

import (
	"context"
	"fmt"
	"os/exec"
)

// Speaker says text aloud directly, without producing a clip. A new Speak
// or a Stop cuts off the utterance in progress.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop()
}

// NativeSpeaker uses the operating system's speech tool.
type NativeSpeaker struct {
	cmd  command
	proc exclusive
}

// DetectNativeSpeaker finds say, espeak-ng, espeak or spd-say.
func DetectNativeSpeaker() (*NativeSpeaker, bool) {
	c, ok := detect(speakerCandidates(), "")
	if !ok {
		return nil, false
	}
	return &NativeSpeaker{cmd: c}, true
}

// Speak blocks until the utterance ends. An interrupted utterance
// returns nil.
func (n *NativeSpeaker) Speak(ctx context.Context, text string) error {
	args := append(append([]string{}, n.cmd.args...), text)
	superseded, err := n.proc.run(exec.CommandContext(ctx, n.cmd.bin, args...))
	if superseded || ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", n.cmd.bin, err)
	}
	return nil
}

func (n *NativeSpeaker) Stop() { n.proc.stop() }

// Speaking reports whether an utterance is in progress.
func (n *NativeSpeaker) Speaking() bool { return n.proc.busy() }
