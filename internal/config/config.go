// Package config loads wordwhiz settings from an optional config.yaml and
// WORDWHIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/llm"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "WORDWHIZ"

type Config struct {
	LLM     llm.Config    `mapstructure:"llm"`
	Speech  speech.Config `mapstructure:"speech"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`

	// DB is the telemetry database path. Empty means the default XDG path.
	DB string `mapstructure:"db"`
}

type SessionConfig struct {
	Language string `mapstructure:"language"`
	Offline  bool   `mapstructure:"offline"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type MetricsConfig struct {
	// Addr serves /metrics when set, e.g. "127.0.0.1:9464".
	Addr string `mapstructure:"addr"`
}

// Online reports whether challenges should be generated by an LLM.
func (c *Config) Online() bool {
	return !c.Session.Offline && c.LLM.HasKey()
}

// Load reads configuration. dir is searched first for config.yaml, then
// $XDG_CONFIG_HOME/wordwhiz and the working directory. A missing file is
// not an error.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	if cfgHome, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(cfgHome, "wordwhiz"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range []string{
		"llm.gemini.api_key",
		"llm.openai.api_key",
		"llm.openai.base_url",
		"llm.anthropic.api_key",
		"llm.openrouter.api_key",
		"llm.openrouter.base_url",
		"speech.player",
		"speech.recorder",
		"db",
		"metrics.addr",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.LLM, _ = cfg.LLM.Discover()
	cfg.Session.Language = normalizeLanguage(cfg.Session.Language)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Speech.SampleRate <= 0 {
		return fmt.Errorf("speech.sample_rate must be positive, got %d", c.Speech.SampleRate)
	}
	if c.LLM.HasKey() {
		if err := c.LLM.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	lc := llm.DefaultConfig()
	v.SetDefault("llm.provider", lc.Provider)
	v.SetDefault("llm.gemini.model", lc.Gemini.Model)
	v.SetDefault("llm.openai.model", lc.OpenAI.Model)
	v.SetDefault("llm.anthropic.model", lc.Anthropic.Model)
	v.SetDefault("llm.openrouter.model", lc.OpenRouter.Model)
	v.SetDefault("llm.retry.max_attempts", lc.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", lc.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", lc.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", lc.Retry.Multiplier)
	v.SetDefault("llm.timeout", lc.Timeout)
	v.SetDefault("llm.rate_per_minute", lc.RatePerMinute)

	sc := speech.DefaultConfig()
	v.SetDefault("speech.enabled", sc.Enabled)
	v.SetDefault("speech.voice", sc.Voice)
	v.SetDefault("speech.tts_model", sc.TTSModel)
	v.SetDefault("speech.transcribe_model", sc.TranscribeModel)
	v.SetDefault("speech.sample_rate", sc.SampleRate)
	v.SetDefault("speech.cache_dir", sc.CacheDir)
	v.SetDefault("speech.cache_version", sc.CacheVersion)

	v.SetDefault("session.language", challenge.DefaultLanguage)
	v.SetDefault("session.offline", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", defaultLogFile())
}

func normalizeLanguage(lang string) string {
	if lang == "" {
		return challenge.DefaultLanguage
	}
	return strings.ToUpper(lang[:1]) + strings.ToLower(lang[1:])
}

// defaultLogFile returns $XDG_STATE_HOME/wordwhiz/wordwhiz.log.
func defaultLogFile() string {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "wordwhiz.log")
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "wordwhiz", "wordwhiz.log")
}
