package speech

import (
	"os/exec"
	"runtime"
	"sync"
)

// command is an external program plus its leading arguments.
type command struct {
	bin  string
	args []string
}

// exclusive runs at most one process at a time. Starting a process kills
// the one before it.
type exclusive struct {
	mu      sync.Mutex
	current *exec.Cmd
}

// run starts cmd and waits for it. superseded is true when another run or
// a stop ended it early.
func (x *exclusive) run(cmd *exec.Cmd) (superseded bool, err error) {
	x.mu.Lock()
	x.stopLocked()
	if err := cmd.Start(); err != nil {
		x.mu.Unlock()
		return false, err
	}
	x.current = cmd
	x.mu.Unlock()

	err = cmd.Wait()

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.current != cmd {
		return true, err
	}
	x.current = nil
	return false, err
}

func (x *exclusive) stop() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.stopLocked()
}

func (x *exclusive) busy() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.current != nil
}

func (x *exclusive) stopLocked() {
	if x.current != nil && x.current.Process != nil {
		x.current.Process.Kill()
	}
	x.current = nil
}

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// detect returns the first candidate found on PATH. A non-empty override
// replaces the candidate list with that single binary, keeping the known
// arguments when it matches a candidate.
func detect(candidates []command, override string) (command, bool) {
	if override != "" {
		match := command{bin: override}
		for _, c := range candidates {
			if c.bin == override {
				match = c
				break
			}
		}
		candidates = []command{match}
	}
	for _, c := range candidates {
		if path, err := lookPath(c.bin); err == nil {
			return command{bin: path, args: c.args}, true
		}
	}
	return command{}, false
}

func playerCandidates() []command {
	if runtime.GOOS == "darwin" {
		return []command{{bin: "afplay"}}
	}
	return []command{
		{bin: "paplay"},
		{bin: "pw-play"},
		{bin: "aplay", args: []string{"-q"}},
		{bin: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	}
}

func recorderCandidates(sampleRate string) []command {
	cs := []command{
		{bin: "rec", args: []string{"-q", "-r", sampleRate, "-c", "1", "-b", "16"}},
	}
	if runtime.GOOS != "darwin" {
		cs = append([]command{
			{bin: "arecord", args: []string{"-q", "-f", "S16_LE", "-r", sampleRate, "-c", "1", "-t", "wav"}},
		}, cs...)
	}
	return cs
}

func speakerCandidates() []command {
	if runtime.GOOS == "darwin" {
		return []command{{bin: "say"}}
	}
	return []command{
		{bin: "espeak-ng"},
		{bin: "espeak"},
		{bin: "spd-say", args: []string{"--wait"}},
	}
}
