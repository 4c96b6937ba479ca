// Package voice turns spoken commands into generator actions and reads
// results aloud through an injected speech Capability.
package voice

import (
	"context"
	"errors"
	"fmt"
)

// Alternative is one recognition hypothesis.
type Alternative struct {
	Transcript string
	Confidence float32
}

// Recognition is the result of one listen.
type Recognition struct {
	Alternatives []Alternative
}

// Best returns the highest confidence alternative. Ties keep the earlier
// one. ok is false when there is no non-empty alternative.
func (r Recognition) Best() (best Alternative, ok bool) {
	for _, a := range r.Alternatives {
		if a.Transcript == "" {
			continue
		}
		if !ok || a.Confidence > best.Confidence {
			best, ok = a, true
		}
	}
	return best, ok
}

// Transcript returns the best transcript, or "".
func (r Recognition) Transcript() string {
	b, _ := r.Best()
	return b.Transcript
}

// SpeakOptions tunes speech output. Zero values leave engine defaults.
type SpeakOptions struct {
	Rate      float64 // 1.0 is normal speed
	Pitch     float64 // semitones, -20 to 20
	Volume    float64 // gain in dB
	VoiceHint string  // preferred voice name, ignored when unavailable
}

// Capability is the speech platform: one-shot recognition and blocking
// speech output. Speak returns when playback ends.
type Capability interface {
	RecognizeOnce(ctx context.Context) (Recognition, error)
	Speak(ctx context.Context, text string, opts SpeakOptions) error
}

// Prober is implemented by capabilities that can report availability
// before first use.
type Prober interface {
	Probe(ctx context.Context) error
}

// ErrUnsupported means no speech capability is available.
var ErrUnsupported = errors.New("voice: speech capability not supported")

// ErrDisabled means voice features are switched off.
var ErrDisabled = errors.New("voice: disabled")

// ErrBusy means another voice interaction is still running.
var ErrBusy = errors.New("voice: interaction already in progress")

// CapabilityError is a runtime failure of recognition or synthesis.
type CapabilityError struct {
	Op  string // "recognize" or "speak"
	Err error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("voice %s: %v", e.Op, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }

// Probe reports whether c can be used. A nil capability is unsupported;
// capabilities that are not Probers are assumed available.
func Probe(ctx context.Context, c Capability) error {
	if c == nil {
		return ErrUnsupported
	}
	if p, ok := c.(Prober); ok {
		return p.Probe(ctx)
	}
	return nil
}
