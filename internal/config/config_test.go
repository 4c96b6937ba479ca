package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/edunova/internal/content"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EDUNOVA_LLM_PROVIDER", "EDUNOVA_GEMINI_API_KEY", "EDUNOVA_GEMINI_MODEL",
		"EDUNOVA_OPENAI_API_KEY", "EDUNOVA_ANTHROPIC_API_KEY", "EDUNOVA_OPENROUTER_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"EDUNOVA_DB", "EDUNOVA_LOG_FILE", "EDUNOVA_LOG_LEVEL", "EDUNOVA_SERVER_ADDR",
		"EDUNOVA_AGE_GROUP", "EDUNOVA_CONTENT_TYPE", "EDUNOVA_VOICE",
		"EDUNOVA_VOICE_LANGUAGE", "EDUNOVA_VOICE_NAME", "GOOGLE_APPLICATION_CREDENTIALS",
		"EDUNOVA_LLM_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, content.AgeGroupYoung, cfg.UI.AgeGroup)
	assert.Equal(t, content.LessonPlan, cfg.UI.ContentType)
	assert.Equal(t, "en-US", cfg.Voice.Language)
	assert.Empty(t, cfg.DBPath, "audit log is off by default")
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
llm:
  provider: openai
  timeout: 30s
  openai:
    api_key: sk-test
    model: gpt-4o
voice:
  enabled: true
  rate: 1.2
  recorder: [arecord, -q]
ui:
  age_group: "9-12"
  content_type: quiz
download_dir: /tmp/edunova
`)

	cfg, err := Load(Options{Path: path, EnvFile: filepath.Join(t.TempDir(), "none")})
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "gemini-flash", cfg.LLM.Gemini.Model, "untouched defaults survive")
	assert.True(t, cfg.Voice.Enabled)
	assert.Equal(t, 1.2, cfg.Voice.Rate)
	assert.Equal(t, []string{"arecord", "-q"}, cfg.Voice.Recorder)
	assert.Equal(t, content.AgeGroupOlder, cfg.UI.AgeGroup)
	assert.Equal(t, content.Quiz, cfg.UI.ContentType)
	assert.Equal(t, "/tmp/edunova", cfg.DownloadDir)
}

func TestLoad_SchemaRejects(t *testing.T) {
	clearEnv(t)
	tests := map[string]string{
		"unknown key":       "colour: blue\n",
		"bad provider":      "llm:\n  provider: cohere\n",
		"bad age group":     "ui:\n  age_group: \"3-5\"\n",
		"rate too high":     "voice:\n  rate: 10\n",
		"recorder not list": "voice:\n  recorder: arecord\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(Options{Path: writeFile(t, "c.yaml", body)})
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	clearEnv(t)
	_, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "ui:\n  content_type: quiz\nlog_level: info\n")
	t.Setenv("EDUNOVA_CONTENT_TYPE", "study-guide")
	t.Setenv("EDUNOVA_LOG_LEVEL", "debug")
	t.Setenv("EDUNOVA_VOICE", "true")

	cfg, err := Load(Options{Path: path, EnvFile: filepath.Join(t.TempDir(), "none")})
	require.NoError(t, err)
	assert.Equal(t, content.StudyGuide, cfg.UI.ContentType)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Voice.Enabled)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	const key = "EDUNOVA_DOWNLOAD_DIR"
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	envFile := writeFile(t, ".env", key+"=/srv/downloads\nEDUNOVA_AGE_GROUP=6-8\n")
	t.Setenv("EDUNOVA_AGE_GROUP", "9-12")

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "/srv/downloads", cfg.DownloadDir)
	assert.Equal(t, content.AgeGroupOlder, cfg.UI.AgeGroup, "dotenv never overrides the real environment")
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDUNOVA_CONTENT_TYPE", "poem")

	_, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "none")})
	assert.ErrorContains(t, err, "ui.content_type")
}

func TestLoad_DiscoversProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "ak")

	cfg, err := Load(Options{EnvFile: filepath.Join(t.TempDir(), "none")})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "ak", cfg.LLM.Anthropic.APIKey)
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "edunova", "config.yaml"), DefaultPath())
}
