package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wordwhizkids/wordwhiz/internal/challenge"
	"github.com/wordwhizkids/wordwhiz/internal/llm"
	"github.com/wordwhizkids/wordwhiz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded challenge generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent challenge requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		modeFlag, _ := cmd.Flags().GetString("mode")

		opts := store.QueryOpts{Limit: limit}
		if modeFlag != "" {
			mode, err := challenge.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			opts.Purpose = "challenge-" + string(mode)
		}

		s, err := openStoreFor(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No challenge requests recorded yet.")
			return nil
		}

		tw := table(os.Stdout)
		fmt.Fprintln(tw, "ID\tTime\tMode\tModel\tIn\tOut\tMs\tOK\t")
		for _, e := range events {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\t\n",
				e.ID, e.Timestamp.Local().Format(timeLayout), modeOf(e.Purpose),
				truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, mark(e.Success))
		}
		return tw.Flush()
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStoreFor(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		tw := table(os.Stdout)
		fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
		fmt.Fprintf(tw, "Time:\t%s\n", e.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(tw, "Mode:\t%s\n", modeOf(e.Purpose))
		fmt.Fprintf(tw, "Provider:\t%s (%s)\n", e.Provider, e.Model)
		fmt.Fprintf(tw, "Tokens:\t%d in, %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(tw, "Latency:\t%dms\n", e.LatencyMs)
		if e.ErrorMessage != "" {
			fmt.Fprintf(tw, "Error:\t%s\n", e.ErrorMessage)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		section("PROMPT", e.RequestBody)
		section("REPLY", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize calls, fallbacks, tokens and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStoreFor(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No challenge requests recorded yet.")
			return nil
		}

		fmt.Println("By mode")
		tw := table(os.Stdout)
		fmt.Fprintln(tw, "Mode\tCalls\tFailed\tInput\tOutput\tAvg ms\t")
		var calls, failed, in, out int
		for _, u := range byPurpose {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n",
				modeOf(u.Purpose), u.Calls, u.Failures, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			failed += u.Failures
			in += u.InputTokens
			out += u.OutputTokens
		}
		fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t%d\t\t\n", calls, failed, in, out)
		if err := tw.Flush(); err != nil {
			return err
		}

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Println()
		fmt.Println("Estimated cost (USD)")
		tw = table(os.Stdout)
		fmt.Fprintln(tw, "Model\tCalls\tInput\tOutput\tCost\t")
		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if price := llm.LookupCost(u.Model); price != nil {
				c := price.Cost(u.InputTokens, u.OutputTokens)
				total += c
				cost = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
		}
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(tw, "%s\t\t\t\t%s\t\n", label, formatCost(total))
		if err := tw.Flush(); err != nil {
			return err
		}
		if len(unpriced) > 0 {
			fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("mode", "m", "", "Only show one mode (e.g. digraph, story)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

// openStoreFor opens the telemetry store configured for cmd.
func openStoreFor(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func section(title, body string) {
	rule := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", rule, title, rule)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

// modeOf strips the "challenge-" prefix from a purpose label.
func modeOf(purpose string) string {
	return strings.TrimPrefix(purpose, "challenge-")
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
