package speech

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wordwhizkids/wordwhiz/internal/metrics"
)

// Narrator speaks prompts and feedback, trying the cache, then the TTS
// model, then the native speech tool. It never reports failure: every
// error is logged at warn level and the learner simply hears nothing.
//
// A nil *Narrator is valid and silent.
type Narrator struct {
	cache      *Cache
	tts        Synthesizer
	native     Speaker
	voice      *Player
	sfx        *Player
	sampleRate int
	logger     *zap.Logger

	mu      sync.Mutex
	effects map[Effect][]byte
}

// NarratorOption configures a Narrator.
type NarratorOption func(*Narrator)

func WithCache(c *Cache) NarratorOption { return func(n *Narrator) { n.cache = c } }

func WithSynthesizer(s Synthesizer) NarratorOption { return func(n *Narrator) { n.tts = s } }

func WithNativeSpeaker(s Speaker) NarratorOption { return func(n *Narrator) { n.native = s } }

// WithPlayers sets separate players for speech and effects so a sound
// effect never cuts off narration.
func WithPlayers(voice, sfx *Player) NarratorOption {
	return func(n *Narrator) { n.voice, n.sfx = voice, sfx }
}

func WithSampleRate(hz int) NarratorOption { return func(n *Narrator) { n.sampleRate = hz } }

func WithLogger(l *zap.Logger) NarratorOption { return func(n *Narrator) { n.logger = l } }

// NewNarrator creates a narrator. Any collaborator left unset is skipped.
func NewNarrator(opts ...NarratorOption) *Narrator {
	n := &Narrator{
		sampleRate: DefaultConfig().SampleRate,
		logger:     zap.NewNop(),
		effects:    make(map[Effect][]byte),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SynthFill adapts a Synthesizer to a cache FillFunc producing WAV.
func SynthFill(s Synthesizer) FillFunc {
	return func(ctx context.Context, text string) ([]byte, error) {
		if s == nil {
			return nil, ErrNoAudio
		}
		clip, err := s.Synthesize(ctx, text)
		if err != nil {
			return nil, err
		}
		return clip.WAV(), nil
	}
}

// Say speaks text and blocks until it finishes or is superseded.
func (n *Narrator) Say(ctx context.Context, text string) {
	if n == nil || strings.TrimSpace(text) == "" {
		return
	}
	if n.native != nil {
		n.native.Stop()
	}

	if n.voice != nil && (n.cache != nil || n.tts != nil) {
		wav, err := n.render(ctx, text)
		if err == nil {
			err = n.voice.Play(ctx, wav)
			if err == nil {
				return
			}
			n.fail("play", err)
		} else {
			n.fail("tts", err)
		}
	}

	if n.native == nil {
		return
	}
	if err := n.native.Speak(ctx, text); err != nil {
		n.fail("native", err)
	}
}

func (n *Narrator) render(ctx context.Context, text string) ([]byte, error) {
	fill := SynthFill(n.tts)
	if n.cache == nil {
		return fill(ctx, text)
	}
	wav, err := n.cache.Fetch(ctx, text, fill)
	if err != nil && wav != nil {
		// Rendered but not stored.
		n.fail("cache", err)
		return wav, nil
	}
	return wav, err
}

// Play plays a sound effect.
func (n *Narrator) Play(ctx context.Context, e Effect) {
	if n == nil || n.sfx == nil {
		return
	}
	wav, err := n.effect(e)
	if err != nil {
		n.fail("effect", err)
		return
	}
	if err := n.sfx.Play(ctx, wav); err != nil {
		n.fail("play", err)
	}
}

func (n *Narrator) effect(e Effect) ([]byte, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if wav, ok := n.effects[e]; ok {
		return wav, nil
	}
	var wav []byte
	if n.cache != nil {
		wav, _ = n.cache.Lookup(EffectKey(e))
	}
	if wav == nil {
		pcm, err := Render(e, n.sampleRate)
		if err != nil {
			return nil, err
		}
		wav = EncodeWAV(pcm, n.sampleRate)
	}
	n.effects[e] = wav
	return wav, nil
}

// Stop silences speech and effects in progress.
func (n *Narrator) Stop() {
	if n == nil {
		return
	}
	if n.voice != nil {
		n.voice.Stop()
	}
	if n.native != nil {
		n.native.Stop()
	}
	if n.sfx != nil {
		n.sfx.Stop()
	}
}

func (n *Narrator) fail(stage string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	metrics.SpeechFailures.WithLabelValues(stage).Inc()
	n.logger.Warn("speech failed", zap.String("stage", stage), zap.Error(err))
}
