// Package speech turns text into audio and audio into text, plays and
// records through OS tools, and keeps a versioned on-disk narration cache.
// Every failure here is recoverable: callers log it and carry on silently.
package speech

import (
	"errors"
	"os"
	"path/filepath"
)

var (
	// ErrNoAudio is returned when a synthesis or recording produced nothing.
	ErrNoAudio = errors.New("no audio")
	// ErrNoPlayer is returned when no audio player binary is available.
	ErrNoPlayer = errors.New("no audio player available")
)

// Config holds speech settings.
type Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Voice           string `mapstructure:"voice"`
	TTSModel        string `mapstructure:"tts_model"`
	TranscribeModel string `mapstructure:"transcribe_model"`
	SampleRate      int    `mapstructure:"sample_rate"`
	CacheDir        string `mapstructure:"cache_dir"`
	CacheVersion    string `mapstructure:"cache_version"`

	// Player and Recorder override binary detection, e.g. "paplay".
	Player   string `mapstructure:"player"`
	Recorder string `mapstructure:"recorder"`
}

// DefaultConfig returns the standard speech settings.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Voice:           "Fenrir",
		TTSModel:        "gemini-2.5-flash-preview-tts",
		TranscribeModel: "gemini-2.5-flash",
		SampleRate:      24000,
		CacheDir:        defaultCacheDir(),
		CacheVersion:    "v2",
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "wordwhiz", "speech")
	}
	return filepath.Join(dir, "wordwhiz", "speech")
}
