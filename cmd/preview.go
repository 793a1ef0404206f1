package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/grading"
	"github.com/wordwhizkids/wordwhiz/internal/session"
	"github.com/wordwhizkids/wordwhiz/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer challenges for one mode on the command line (no TUI, no audio)",
	Long: `Fetch and answer challenges for a single mode in the terminal.

Prompts go through the same resolver and grader as the game but are printed
instead of spoken, and nothing is recorded. Handy for checking generated
content and the offline word bank.`,
	RunE: runPreview,
}

func init() {
	f := previewCmd.Flags()
	f.StringP("mode", "m", "", "Mode ID, e.g. digraph, spell, unit-spelling (required)")
	f.Int("unit", 1, "Spelling unit for unit-spelling (1-10)")
	f.IntP("count", "n", 5, "Number of challenges")
	f.Bool("offline", false, "Use only the built-in word bank")
	f.String("student", "Tester", "Name used in narration")
	_ = previewCmd.MarkFlagRequired("mode")
}

func runPreview(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	modeVal, _ := f.GetString("mode")
	unit, _ := f.GetInt("unit")
	count, _ := f.GetInt("count")
	offline, _ := f.GetBool("offline")
	name, _ := f.GetString("student")

	mode, err := challenge.ParseMode(modeVal)
	if err != nil {
		return err
	}
	if unit < 1 || unit > challenge.MaxUnit {
		return fmt.Errorf("invalid unit %d: must be 1-%d", unit, challenge.MaxUnit)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Session.Offline = cfg.Session.Offline || offline
	logger := newLogger(cfg, os.Stderr)
	defer logger.Sync()

	ctx := cmd.Context()
	serveMetrics(ctx, cfg, logger)

	// No event repo: preview traffic stays out of `wordwhiz llm`.
	resolver, online := newResolver(ctx, cfg, challenge.DefaultBank(), nil, logger)
	defer resolver.Wait()

	s := session.SetLanguage(session.SetUnit(session.New(name, 0, online), unit), cfg.Session.Language)
	source := "offline bank"
	if online {
		source = cfg.LLM.Provider
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Mode: %s (%s, %s)\nFetching %d challenges...\n\n", mode.Label(), source, s.Language, count)

	p := &previewer{
		in:    bufio.NewScanner(cmd.InOrStdin()),
		out:   out,
		name:  name,
		fetch: func(req challenge.Request) challenge.Challenge { return resolver.Fetch(ctx, req) },
	}
	p.run(s, mode, count)
	return nil
}

var (
	previewRight = theme.Ink(theme.Success)
	previewStep  = theme.Ink(theme.Sky)
	previewWrong = theme.Ink(theme.Error)
	previewRule  = theme.Ink(theme.TextDim)
)

// previewer is the read-answer-grade loop behind `wordwhiz preview`.
type previewer struct {
	in    *bufio.Scanner
	out   io.Writer
	name  string
	fetch func(challenge.Request) challenge.Challenge

	solved int
}

func (p *previewer) run(s session.State, mode challenge.ModeID, count int) session.State {
	defer func() {
		fmt.Fprintln(p.out, previewRule.Render(fmt.Sprintf("── Summary: %d/%d solved, %d Cuudoos ──", p.solved, count, s.Score)))
	}()

	for i := 1; i <= count; i++ {
		s = session.SelectMode(s, mode, p.fetch)
		ch, ok := session.Current(s)
		if s.Mode == "" || !ok {
			fmt.Fprintln(p.out, session.ConnectionFailed)
			return s
		}

		fmt.Fprintln(p.out, previewRule.Render(fmt.Sprintf("── Challenge %d/%d (%s) ──", i, count, ch.Source)))
		fmt.Fprintln(p.out, grading.Narration(ch, p.name))
		prompt := grading.Display(ch, 0)
		fmt.Fprintln(p.out, prompt.Main)
		if prompt.Context != "" {
			fmt.Fprintln(p.out, prompt.Context)
		}

		var closed bool
		if s, closed = p.answer(s, mode, ch); closed {
			fmt.Fprintln(p.out, "\n(input closed)")
			return s
		}
		fmt.Fprintln(p.out)
	}
	return s
}

// answer reads lines until ch is solved, revealed or the input ends.
func (p *previewer) answer(s session.State, mode challenge.ModeID, ch challenge.Challenge) (session.State, bool) {
	for {
		if step := grading.StepPrompt(ch, s.Syllable); step != "" {
			fmt.Fprintln(p.out, step)
		}
		fmt.Fprint(p.out, "\nYour answer: ")
		if !p.in.Scan() {
			return s, true
		}

		r := grading.Grade(mode, ch, s.Syllable, strings.TrimSpace(p.in.Text())).WithStudent(p.name)
		grading.Record(mode, r)
		s, _ = session.ApplyGrade(s, r)

		switch r.Outcome {
		case grading.Correct:
			p.solved++
			fmt.Fprintln(p.out, previewRight.Render("✓ "+r.Feedback))
			return s, false
		case grading.Advance:
			fmt.Fprintln(p.out, previewStep.Render("→ "+r.Feedback))
		default:
			fmt.Fprintln(p.out, previewWrong.Render("✗ "+r.Feedback))
			if session.RevealAnswer(s) {
				fmt.Fprintln(p.out, lipgloss.NewStyle().Bold(true).Render("Answer: "+ch.Answer()))
				return s, false
			}
		}
	}
}
