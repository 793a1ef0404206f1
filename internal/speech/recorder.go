package speech

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"sync"
)

// RecordSampleRate is the capture rate for answers.
const RecordSampleRate = 16000

// RecordMIMEType is the MIME type of recorded answers.
const RecordMIMEType = "audio/wav"

// Recorder captures microphone audio to WAV with arecord or sox's rec.
type Recorder struct {
	cmd command

	mu      sync.Mutex
	running *exec.Cmd
	path    string
}

// DetectRecorder finds a recorder on PATH.
func DetectRecorder(override string) (*Recorder, bool) {
	c, ok := detect(recorderCandidates(strconv.Itoa(RecordSampleRate)), override)
	if !ok {
		return nil, false
	}
	return &Recorder{cmd: c}, true
}

// Start begins recording. It fails if a recording is already running.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running != nil {
		return fmt.Errorf("already recording")
	}

	f, err := os.CreateTemp("", "wordwhiz-rec-*.wav")
	if err != nil {
		return fmt.Errorf("create temp recording: %w", err)
	}
	f.Close()

	args := append(append([]string{}, r.cmd.args...), f.Name())
	cmd := exec.Command(r.cmd.bin, args...)
	if err := cmd.Start(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("start %s: %w", r.cmd.bin, err)
	}
	r.running = cmd
	r.path = f.Name()
	return nil
}

// Recording reports whether Start has been called without Stop.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running != nil
}

// Stop ends the recording and returns the WAV bytes. ErrNoAudio means the
// file holds no samples.
func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	cmd, path := r.running, r.path
	r.running, r.path = nil, ""
	r.mu.Unlock()

	if cmd == nil {
		return nil, fmt.Errorf("not recording")
	}
	defer os.Remove(path)

	// Both tools finalize the WAV header on SIGINT.
	cmd.Process.Signal(os.Interrupt)
	cmd.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if len(data) <= wavHeaderSize {
		return nil, ErrNoAudio
	}
	return data, nil
}
