package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/edunova/internal/llm"
	"github.com/abhisek/edunova/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM audit log",
	Long: `Inspect the LLM calls recorded while the audit log was enabled with --db
or EDUNOVA_DB. Each call is tagged with the content type it generated and
the request id shown by "edunova history".`,
}

// openInspectStore opens the audit database for reading.
func openInspectStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.QueryOpts{}
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("type")
		opts.RequestID, _ = cmd.Flags().GetString("request")

		s, err := openInspectStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM calls recorded.")
			return nil
		}
		lipgloss.Println(eventsTable(events))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		s, err := openInspectStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no LLM call with id %d", id)
		}
		fmt.Print(describeEvent(*e))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per content type and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openInspectStore(cmd)
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
			fmt.Println("No LLM usage recorded.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Println("Usage by content type")
		lipgloss.Println(usageTable(byPurpose))

		if len(byModel) > 0 {
			costs, unpriced := costTable(byModel)
			fmt.Println("\nEstimated cost (USD)")
			lipgloss.Println(costs)
			if len(unpriced) > 0 {
				fmt.Printf("No pricing for: %s\n", strings.Join(unpriced, ", "))
			}
		}
		return nil
	},
}

func newTable(headers ...string) *table.Table {
	cell := lipgloss.NewStyle().Padding(0, 1)
	head := cell.Bold(true)
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return head
			}
			return cell
		})
}

func eventsTable(events []store.LLMEventRecord) *table.Table {
	t := newTable("ID", "Time", "Type", "Model", "In", "Out", "Ms", "OK", "Request")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		req := e.RequestID
		if len(req) > 8 {
			req = req[:8]
		}
		t.Row(
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format("01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
			req,
		)
	}
	return t
}

func usageTable(stats []store.PurposeUsage) *table.Table {
	t := newTable("Type", "Calls", "Input", "Output", "Avg ms")
	var calls, in, out int
	for _, st := range stats {
		t.Row(st.Purpose, strconv.Itoa(st.Calls), strconv.Itoa(st.InputTokens),
			strconv.Itoa(st.OutputTokens), strconv.FormatInt(st.AvgLatencyMs, 10))
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	return t.Row("total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), "")
}

// costTable prices successful calls per model. Models without a known
// price are listed separately and left out of the total.
func costTable(models []store.ModelUsage) (*table.Table, []string) {
	t := newTable("Model", "Calls", "Input", "Output", "Cost")
	var (
		total    float64
		unpriced []string
	)
	for _, mu := range models {
		cost := "?"
		usage := llm.Usage{InputTokens: mu.InputTokens, OutputTokens: mu.OutputTokens}
		if usd, ok := llm.EstimateCost(mu.Model, usage); ok {
			total += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		t.Row(truncate(mu.Model, 32), strconv.Itoa(mu.Calls),
			strconv.Itoa(mu.InputTokens), strconv.Itoa(mu.OutputTokens), cost)
	}
	label := "total"
	if len(unpriced) > 0 {
		label = "total (partial)"
	}
	return t.Row(label, "", "", "", formatCost(total)), unpriced
}

func describeEvent(e store.LLMEventRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Call %d  %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Provider  %s (%s)\n", e.Provider, e.Model)
	fmt.Fprintf(&b, "Type      %s\n", e.Purpose)
	if e.RequestID != "" {
		fmt.Fprintf(&b, "Request   %s\n", e.RequestID)
	}
	fmt.Fprintf(&b, "Tokens    %d in, %d out in %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
	if e.ErrorMessage != "" {
		fmt.Fprintf(&b, "Error     %s\n", e.ErrorMessage)
	}
	for _, part := range []struct{ title, body string }{
		{"Prompt", e.RequestBody},
		{"Reply", e.ResponseBody},
	} {
		fmt.Fprintf(&b, "\n── %s %s\n", part.title, strings.Repeat("─", 50))
		if part.body == "" {
			b.WriteString("(not captured)\n")
			continue
		}
		b.WriteString(strings.TrimRight(part.body, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("type", "t", "", "Only calls for this content type (e.g. quiz)")
	llmListCmd.Flags().StringP("request", "r", "", "Only calls made for this generation request id")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
