package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/server"
	"github.com/abhisek/edunova/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve content generation over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			cfg.Server.Addr = v
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

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner, err := buildRunner(ctx, cfg, log, repo, false, os.Stderr)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Runner:       runner,
			Log:          log,
			AllowOrigins: cfg.Server.AllowOrigins,
		})
		err = srv.Run(ctx, cfg.Server.Addr)
		log.Info("server stopped", zap.Error(err))
		return err
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
}
