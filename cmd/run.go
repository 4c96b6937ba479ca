package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/app"
	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/export"
	"github.com/abhisek/edunova/internal/screens/generator"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("age"); v != "" {
		if cfg.UI.AgeGroup, err = content.ParseAgeGroup(v); err != nil {
			return err
		}
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		if cfg.UI.ContentType, err = content.ParseContentType(v); err != nil {
			return err
		}
	}

	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openAuditStore(cfg)
	if err != nil {
		return err
	}
	opts := app.Options{}
	if st != nil {
		defer st.Close()
		opts.EventRepo = st.EventRepo()
		log.Info("audit log enabled", zap.String("db", cfg.DBPath))
	}

	runner, err := buildRunner(ctx, cfg, log, opts.EventRepo, true, os.Stderr)
	if err != nil {
		return fmt.Errorf("set up generation: %w", err)
	}

	assistant, closeVoice := buildAssistant(ctx, cfg, log)
	defer closeVoice()

	opts.SkipWelcome, _ = cmd.Flags().GetBool("no-welcome")
	opts.Generator = generator.Options{
		Runner:      runner,
		Assistant:   assistant,
		Clipboard:   export.SystemClipboard{},
		DownloadDir: cfg.DownloadDir,
		AgeGroup:    cfg.UI.AgeGroup,
		ContentType: cfg.UI.ContentType,
		Log:         log,
	}

	return app.Run(opts)
}
