// Package config loads EduNova settings from defaults, an optional YAML
// file, a .env file and EDUNOVA_* environment variables, in that order.
// Command line flags are applied on top by the cmd package.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	LLM    llm.Config   `yaml:"llm"`
	Voice  VoiceConfig  `yaml:"voice"`
	UI     UIConfig     `yaml:"ui"`
	Server ServerConfig `yaml:"server"`

	// DownloadDir receives exported results. Empty means the working
	// directory.
	DownloadDir string `yaml:"download_dir"`

	// DBPath enables the LLM audit log when set.
	DBPath string `yaml:"db_path"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// VoiceConfig configures speech input and output.
type VoiceConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Language      string   `yaml:"language"`
	Rate          float64  `yaml:"rate"`
	Pitch         float64  `yaml:"pitch"`
	Volume        float64  `yaml:"volume"`
	VoiceHint     string   `yaml:"voice_hint"`
	RecordSeconds int      `yaml:"record_seconds"`
	Recorder      []string `yaml:"recorder"`
	Player        []string `yaml:"player"`
	Credentials   string   `yaml:"credentials"`
}

// UIConfig holds the initial selections of the generator screen.
type UIConfig struct {
	AgeGroup    content.AgeGroup    `yaml:"age_group"`
	ContentType content.ContentType `yaml:"content_type"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Voice: VoiceConfig{
			Language:      "en-US",
			Rate:          0.9,
			RecordSeconds: 5,
		},
		UI: UIConfig{
			AgeGroup:    content.AgeGroupYoung,
			ContentType: content.LessonPlan,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			AllowOrigins: []string{"*"},
		},
		LogLevel: "info",
	}
}

// Options selects the files Load reads.
type Options struct {
	// Path is an explicit config file. When set the file must exist.
	Path string
	// EnvFile is the dotenv file to read. Default ".env"; a missing file
	// is not an error.
	EnvFile string
}

// Load builds the configuration. Values from the environment, including
// the dotenv file, override the config file; the dotenv file never
// overrides variables that are already set.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg.ApplyEnv()
	cfg.LLM.Discover()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/edunova/config.yaml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "edunova", "config.yaml")
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := validateDocument(data); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func configSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse config schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://edunova-config.json", doc); err != nil {
			schemaErr = fmt.Errorf("add config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://edunova-config.json")
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a YAML document against the embedded schema.
// The document is converted to JSON first so that numbers and keys have
// JSON types.
func validateDocument(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("convert yaml: %w", err)
	}

	sch, err := configSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv overlays EDUNOVA_* variables.
func (c *Config) ApplyEnv() {
	c.LLM.ApplyEnv()

	setString(&c.DownloadDir, "EDUNOVA_DOWNLOAD_DIR")
	setString(&c.DBPath, "EDUNOVA_DB")
	setString(&c.LogFile, "EDUNOVA_LOG_FILE")
	setString(&c.LogLevel, "EDUNOVA_LOG_LEVEL")
	setString(&c.Server.Addr, "EDUNOVA_SERVER_ADDR")

	if v := os.Getenv("EDUNOVA_AGE_GROUP"); v != "" {
		c.UI.AgeGroup = content.AgeGroup(v)
	}
	if v := os.Getenv("EDUNOVA_CONTENT_TYPE"); v != "" {
		c.UI.ContentType = content.ContentType(v)
	}

	if v := os.Getenv("EDUNOVA_VOICE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Voice.Enabled = b
		}
	}
	setString(&c.Voice.Language, "EDUNOVA_VOICE_LANGUAGE")
	setString(&c.Voice.VoiceHint, "EDUNOVA_VOICE_NAME")
	if c.Voice.Credentials == "" {
		setString(&c.Voice.Credentials, "GOOGLE_APPLICATION_CREDENTIALS")
	}
}

// Validate checks values that the schema cannot see, such as those set
// through the environment.
func (c *Config) Validate() error {
	ag, err := content.ParseAgeGroup(string(c.UI.AgeGroup))
	if err != nil {
		return fmt.Errorf("ui.age_group: %w", err)
	}
	ct, err := content.ParseContentType(string(c.UI.ContentType))
	if err != nil {
		return fmt.Errorf("ui.content_type: %w", err)
	}
	c.UI.AgeGroup, c.UI.ContentType = ag, ct

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
