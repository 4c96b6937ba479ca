package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edunova/internal/screens/history"
	"github.com/abhisek/edunova/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded generations from the audit log",
	Long: `List recorded generations, newest first. Pass a request id to
"edunova llm list --request" to see the LLM calls behind one generation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openInspectStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryGenerations(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query generations: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No generations recorded.")
			return nil
		}

		fmt.Println(strings.Repeat("─", 80))
		for _, ev := range events {
			fmt.Println(history.Line(ev))
			fmt.Printf("   %s  (request %s)\n", history.Detail(ev), ev.RequestID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of generations to show")
}
