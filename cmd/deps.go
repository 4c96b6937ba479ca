package cmd

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/config"
	"github.com/abhisek/edunova/internal/generation"
	"github.com/abhisek/edunova/internal/llm"
	"github.com/abhisek/edunova/internal/store"
	"github.com/abhisek/edunova/internal/voice"
	"github.com/abhisek/edunova/internal/voice/gcp"
)

// buildRunner wires provider, client and runner. repo may be nil. When
// lenient is set a provider that cannot be created is replaced by one that
// fails every request, and the problem is reported on warn.
func buildRunner(ctx context.Context, cfg *config.Config, log *zap.Logger, repo store.EventRepo, lenient bool, warn io.Writer) (*generation.Runner, error) {
	provider, err := llm.NewProvider(ctx, cfg.LLM, log, repo)
	if err != nil {
		if !lenient {
			return nil, err
		}
		log.Warn("llm provider unavailable", zap.Error(err))
		fmt.Fprintln(warn, "LLM provider not configured:", err)
		fmt.Fprintln(warn, "Generated content will show an error until an API key is set.")
		provider = llm.WithLogging(llm.UnavailableProvider{Err: err}, cfg.LLM.Provider, log, repo)
	}
	client := generation.NewClient(provider, cfg.LLM.Timeout)
	return generation.NewRunner(client, log, repo), nil
}

func speakOptions(v config.VoiceConfig) voice.SpeakOptions {
	return voice.SpeakOptions{
		Rate:      v.Rate,
		Pitch:     v.Pitch,
		Volume:    v.Volume,
		VoiceHint: v.VoiceHint,
	}
}

func gcpConfig(v config.VoiceConfig) gcp.Config {
	return gcp.Config{
		LanguageCode:  v.Language,
		RecordSeconds: v.RecordSeconds,
		Recorder:      v.Recorder,
		Player:        v.Player,
		Credentials:   v.Credentials,
	}
}

// buildAssistant connects the Google speech capability and probes it. The
// returned assistant is always usable; when speech cannot be set up it
// reports itself unsupported. The cleanup func releases the clients.
func buildAssistant(ctx context.Context, cfg *config.Config, log *zap.Logger) (*voice.Assistant, func()) {
	var capability voice.Capability
	cleanup := func() {}

	g, err := gcp.New(ctx, gcpConfig(cfg.Voice), log)
	if err != nil {
		log.Info("speech services unavailable", zap.Error(err))
	} else {
		capability = g
		cleanup = func() { _ = g.Close() }
	}

	a := voice.NewAssistant(capability, speakOptions(cfg.Voice), log)
	if err := a.Probe(ctx); err == nil {
		a.SetEnabled(cfg.Voice.Enabled)
	}
	return a, cleanup
}
