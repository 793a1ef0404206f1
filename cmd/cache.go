package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/config"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
	"github.com/wordwhizkids/wordwhiz/internal/play"
	"github.com/wordwhizkids/wordwhiz/internal/roster"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/speech"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the narration cache",
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the active cache directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, err := openCache(cmd)
		if err != nil {
			return err
		}
		fmt.Println(c.Dir())
		return nil
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cache versions other than the active one",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, c, err := openCache(cmd)
		if err != nil {
			return err
		}
		removed, err := c.Activate()
		for _, v := range removed {
			fmt.Println("removed", v)
		}
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Printf("Nothing to prune; %s is the only version.\n", cfg.Speech.CacheVersion)
		}
		return nil
	},
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-render sound effects and fixed narration into the cache",
	Long: `Render every sound effect and the fixed narration lines (welcome lines,
praise, offline bank prompts) into the active cache version, then prune
older versions. Narration needs a Gemini key; effects are always rendered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, _ := cmd.Flags().GetDuration("timeout")

		cfg, c, err := openCache(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cfg, os.Stderr)
		defer logger.Sync()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		var synth speech.Synthesizer
		if client := newSpeechClient(ctx, cfg, logger); client != nil {
			synth = speech.NewGeminiSynthesizer(client, cfg.Speech)
		} else {
			fmt.Fprintln(os.Stderr, "No Gemini key configured: only sound effects will be cached.")
		}

		phrases := warmPhrases(challenge.DefaultBank())
		fmt.Printf("Warming %s (%d phrases)...\n", c.Dir(), len(phrases))

		var res speech.InstallResult
		if synth == nil {
			res, err = c.Install(ctx, nil, speech.SynthFill(nil), cfg.Speech.SampleRate)
		} else {
			res, err = c.Install(ctx, phrases, speech.SynthFill(synth), cfg.Speech.SampleRate)
		}
		fmt.Printf("Rendered %d, already cached %d, failed %d.\n", res.Rendered, res.Cached, len(res.Failed))
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("warm timed out after %s; run it again to continue", timeout)
			}
			return err
		}

		removed, err := c.Activate()
		if err != nil {
			return err
		}
		for _, v := range removed {
			fmt.Println("removed", v)
		}
		return nil
	},
}

func init() {
	cacheWarmCmd.Flags().Duration("timeout", 10*time.Minute, "Give up after this long")

	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheWarmCmd)
}

func openCache(cmd *cobra.Command) (*config.Config, *speech.Cache, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := speech.NewCache(cfg.Speech.CacheDir, cfg.Speech.CacheVersion)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}
	return cfg, c, nil
}

// warmPhrases lists the lines the game speaks verbatim: welcome lines,
// praise, fixed notices and the prompts for every offline bank entry.
func warmPhrases(bank *challenge.Bank) []string {
	out := []string{
		grading.SilenceSpeech,
		session.ConnectionFailed,
		grading.Result{Outcome: grading.Correct}.WithStudent("").Speech,
	}

	minutes := []int{int(session.ShortSession.Minutes()), int(session.LongSession.Minutes())}
	students := roster.All()
	for _, st := range students {
		out = append(out, grading.Result{Outcome: grading.Correct}.WithStudent(st.Name).Speech)
		for _, m := range minutes {
			out = append(out, play.WelcomeLine(st.Name, m))
		}
	}

	for _, mode := range challenge.AllModes() {
		for _, p := range bank.Entries(mode) {
			ch := challenge.New(mode, p, challenge.SourceOffline)
			if mode == challenge.ModeDigraph {
				// Digraph prompts address the learner by name.
				for _, st := range students {
					out = append(out, grading.Narration(ch, st.Name))
				}
				continue
			}
			out = append(out, grading.Narration(ch, ""))
		}
	}

	slices.Sort(out)
	return slices.Compact(out)
}
