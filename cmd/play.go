package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/wordwhizkids/wordwhiz/internal/app"
	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/config"
	"github.com/wordwhizkids/wordwhiz/internal/llm"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
	"github.com/wordwhizkids/wordwhiz/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("offline", false, "Use only the built-in word bank")
	cmd.Flags().String("student", "", "Profile ID to sign in as (e.g. ana, guest-1)")
	cmd.Flags().Int("minutes", 0, "Session length, 20 or 30; asks when unset")
}

func runPlay(cmd *cobra.Command, args []string) error {
	offline, _ := cmd.Flags().GetBool("offline")
	student, _ := cmd.Flags().GetString("student")
	minutes, _ := cmd.Flags().GetInt("minutes")

	if err := validateMinutes(minutes); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if offline {
		cfg.Session.Offline = true
	}

	logger := newLogger(cfg, nil)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	serveMetrics(ctx, cfg, logger)

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	bank := challenge.DefaultBank()
	resolver, online := newResolver(ctx, cfg, bank, st.EventRepo(), logger)

	kit := speech.Setup(cfg.Speech, newSpeechClient(ctx, cfg, logger), logger)
	if kit.Cache != nil {
		if removed, err := kit.Cache.Activate(); err != nil {
			logger.Warn("narration cache prune failed", zap.Error(err))
		} else if len(removed) > 0 {
			logger.Info("pruned narration caches", zap.Strings("versions", removed))
		}
	}

	env := play.New(ctx, resolver, bank, kit, logger, online)
	env.Minutes = minutes
	env.Language = cfg.Session.Language

	logger.Info("starting wordwhiz",
		zap.String("version", buildVersion()),
		zap.Bool("online", online),
		zap.Bool("speech", kit.Narrator != nil),
		zap.Bool("microphone", kit.Recorder != nil),
	)

	err = app.Run(ctx, app.Options{Env: env, Student: student})

	// Let in-flight prefetches log their events before the store closes.
	cancel()
	resolver.Wait()
	return err
}

func validateMinutes(m int) error {
	switch m {
	case 0, int(session.ShortSession.Minutes()), int(session.LongSession.Minutes()):
		return nil
	}
	return fmt.Errorf("invalid --minutes %d: must be %d or %d",
		m, int(session.ShortSession.Minutes()), int(session.LongSession.Minutes()))
}

// newResolver builds the challenge resolver. Without a usable LLM
// provider every challenge comes from bank and online is false.
func newResolver(ctx context.Context, cfg *config.Config, bank *challenge.Bank, repo store.EventRepo, logger *zap.Logger) (*challenge.Resolver, bool) {
	opts := []challenge.ResolverOption{challenge.WithLogger(logger)}
	if cfg.LLM.Timeout > 0 {
		opts = append(opts, challenge.WithTimeout(cfg.LLM.Timeout))
	}

	if !cfg.Online() {
		return challenge.NewResolver(nil, bank, opts...), false
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, repo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Playing offline with the built-in word bank.")
		return challenge.NewResolver(nil, bank, opts...), false
	}

	gen := challenge.NewLLMGenerator(provider, challenge.DefaultGeneratorConfig())
	return challenge.NewResolver(gen, bank, opts...), true
}

func geminiKey(cfg *config.Config) string {
	if cfg.LLM.Gemini.APIKey != "" {
		return cfg.LLM.Gemini.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// newSpeechClient returns the Gemini client used for narration and
// transcription, or nil when offline or without a Gemini key.
func newSpeechClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) *genai.Client {
	key := geminiKey(cfg)
	if cfg.Session.Offline || !cfg.Speech.Enabled || key == "" {
		return nil
	}
	client, err := llm.NewGeminiClient(ctx, key)
	if err != nil {
		logger.Warn("gemini speech unavailable", zap.Error(err))
		return nil
	}
	return client
}
