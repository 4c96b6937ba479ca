package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edunova/internal/voice"
	"github.com/abhisek/edunova/internal/voice/gcp"
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Voice assistant tools",
}

var voiceCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check speech services and audio tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		say, _ := cmd.Flags().GetBool("say")

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		g, err := gcp.New(ctx, gcpConfig(cfg.Voice), zap.NewNop())
		if err != nil {
			fmt.Println("✗ Google speech services:", err)
			return nil
		}
		defer g.Close()
		fmt.Println("✓ Google speech services connected")

		if err := voice.Probe(ctx, g); err != nil {
			fmt.Println("✗ Audio tools:", err)
			return nil
		}
		fmt.Println("✓ Recorder and player found")

		if say {
			if err := g.Speak(ctx, voice.PromptGreeting, speakOptions(cfg.Voice)); err != nil {
				fmt.Println("✗ Speech output:", err)
				return nil
			}
			fmt.Println("✓ Speech output played")
		}

		state := "off"
		if cfg.Voice.Enabled {
			state = "on"
		}
		fmt.Printf("Voice is %s at startup (voice.enabled or EDUNOVA_VOICE).\n", state)
		return nil
	},
}

func init() {
	voiceCheckCmd.Flags().Bool("say", false, "Also speak a short test phrase")
	voiceCmd.AddCommand(voiceCheckCmd)
}
