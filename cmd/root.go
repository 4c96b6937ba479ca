package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/config"
	"github.com/abhisek/edunova/internal/logging"
	"github.com/abhisek/edunova/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "edunova",
	Short: "AI learning content for kids",
	Long:  "EduNova turns a topic into lesson plans, study guides, tutorials, flashcards and quizzes for children aged 6 to 12.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addConfigFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().String("age", "", "Initial age group (6-8 or 9-12)")
	rootCmd.Flags().String("type", "", "Initial content type")
	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(voiceCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/edunova/config.yaml)")
	fs.String("db", "", "Path to SQLite audit database; enables the LLM audit log (overrides EDUNOVA_DB)")
	fs.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	fs.String("log-file", "", "Write logs to this file")
	fs.String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads the layered configuration and applies persistent flags
// on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{Path: path})
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. When toFile is set and no log file
// is configured the default state file is used, since the terminal UI owns
// stderr.
func newLogger(cfg *config.Config, toFile bool) (*zap.Logger, error) {
	file := cfg.LogFile
	if file == "" && toFile {
		file = logging.DefaultFile()
	}
	return logging.New(logging.Options{Level: cfg.LogLevel, File: file})
}

// openAuditStore opens the audit database when one is configured. It
// returns a nil store when auditing is off.
func openAuditStore(cfg *config.Config) (*store.Store, error) {
	if cfg.DBPath == "" {
		return nil, nil
	}
	if err := store.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// resolveDBPath returns the audit database for the inspection commands:
// the configured path, else the default location.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
