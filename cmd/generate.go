package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/export"
	"github.com/abhisek/edunova/internal/generation"
	"github.com/abhisek/edunova/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate learning content without the TUI",
	Example: `  edunova generate --type quiz --age 9-12 "The Solar System"
  edunova generate --type flashcards --out ./downloads photosynthesis`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		req := content.Request{
			AgeGroup:    cfg.UI.AgeGroup,
			ContentType: cfg.UI.ContentType,
			Topic:       strings.TrimSpace(strings.Join(args, " ")),
		}
		if v, _ := cmd.Flags().GetString("age"); v != "" {
			if req.AgeGroup, err = content.ParseAgeGroup(v); err != nil {
				return err
			}
		}
		if v, _ := cmd.Flags().GetString("type"); v != "" {
			if req.ContentType, err = content.ParseContentType(v); err != nil {
				return err
			}
		}

		log, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		st, err := openAuditStore(cfg)
		if err != nil {
			return err
		}
		var repo store.EventRepo
		if st != nil {
			defer st.Close()
			repo = st.EventRepo()
		}
		runner, err := buildRunner(ctx, cfg, log, repo, false, os.Stderr)
		if err != nil {
			return err
		}

		res, err := runner.Run(ctx, req)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		if res.Failed() {
			return fmt.Errorf("generation failed (%s): %w", generation.KindOf(res.Err), res.Err)
		}

		if dir, _ := cmd.Flags().GetString("out"); dir != "" {
			path, err := export.WriteFile(dir, req, res.Text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Saved to", path)
		}
		if cp, _ := cmd.Flags().GetBool("copy"); cp {
			if err := export.Copy(export.SystemClipboard{}, res.Text); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("age", "", "Age group (6-8 or 9-12)")
	generateCmd.Flags().String("type", "", "Content type: lesson_plan, study_guide, tutorial, flashcards or quiz")
	generateCmd.Flags().String("out", "", "Also write the result into this directory")
	generateCmd.Flags().Bool("copy", false, "Also copy the result to the clipboard")
}
