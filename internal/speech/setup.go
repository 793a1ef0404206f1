package speech

import (
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Kit bundles the speech collaborators a session needs. Fields are nil
// when the matching capability is unavailable.
type Kit struct {
	Narrator    *Narrator
	Recorder    *Recorder
	Transcriber Transcriber
	Cache       *Cache
}

// Setup wires speech from cfg. client may be nil for offline use, in which
// case narration falls back to the cache and the native speech tool, and
// there is no transcriber. Problems are logged, never returned.
func Setup(cfg Config, client *genai.Client, logger *zap.Logger) Kit {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return Kit{}
	}

	var kit Kit
	opts := []NarratorOption{WithLogger(logger), WithSampleRate(cfg.SampleRate)}

	cache, err := NewCache(cfg.CacheDir, cfg.CacheVersion)
	if err != nil {
		logger.Warn("narration cache disabled", zap.Error(err))
	} else {
		kit.Cache = cache
		opts = append(opts, WithCache(cache))
	}

	if client != nil {
		opts = append(opts, WithSynthesizer(NewGeminiSynthesizer(client, cfg)))
		kit.Transcriber = NewGeminiTranscriber(client, cfg)
	}

	if sp, ok := DetectNativeSpeaker(); ok {
		opts = append(opts, WithNativeSpeaker(sp))
	}

	voice, err := DetectPlayer(cfg.Player)
	if err != nil {
		logger.Warn("audio playback disabled", zap.Error(err))
	} else {
		sfx := &Player{cmd: voice.cmd}
		opts = append(opts, WithPlayers(voice, sfx))
	}

	if rec, ok := DetectRecorder(cfg.Recorder); ok {
		kit.Recorder = rec
	}

	kit.Narrator = NewNarrator(opts...)
	return kit
}
