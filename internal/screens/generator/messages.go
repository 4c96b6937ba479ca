package generator

import (
	"github.com/abhisek/edunova/internal/generation"
	"github.com/abhisek/edunova/internal/voice"
)

// generatedMsg carries the outcome of one Runner.Run call. err is only set
// for requests that never reached the provider.
type generatedMsg struct {
	result generation.Result
	err    error
}

// copyResetMsg clears the "Copied!" confirmation unless a newer copy
// happened in the meantime.
type copyResetMsg struct {
	seq int
}

// voiceMsg is the outcome of one voice interaction.
type voiceMsg struct {
	action voice.Action
	err    error
}

// spokenMsg reports the end of a read-aloud.
type spokenMsg struct {
	err error
}
