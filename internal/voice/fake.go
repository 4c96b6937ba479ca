package voice

import (
	"context"
	"errors"
	"sync"
)

// Fake is a deterministic Capability for tests and the mock provider mode.
// Each RecognizeOnce pops the next queued utterance.
type Fake struct {
	mu          sync.Mutex
	heard       []fakeHeard
	Spoken      []string
	SpeakErr    error
	Unsupported bool
}

type fakeHeard struct {
	rec Recognition
	err error
}

// NewFake creates a Fake that will hear the given transcripts in order,
// each with confidence 0.9.
func NewFake(transcripts ...string) *Fake {
	f := &Fake{}
	for _, t := range transcripts {
		f.Hear(t)
	}
	return f
}

// Hear queues one transcript.
func (f *Fake) Hear(transcript string) {
	f.HearRecognition(Recognition{Alternatives: []Alternative{{Transcript: transcript, Confidence: 0.9}}})
}

// HearRecognition queues a full recognition result.
func (f *Fake) HearRecognition(r Recognition) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heard = append(f.heard, fakeHeard{rec: r})
}

// FailNext queues a recognition failure.
func (f *Fake) FailNext(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heard = append(f.heard, fakeHeard{err: err})
}

func (f *Fake) RecognizeOnce(ctx context.Context) (Recognition, error) {
	if err := ctx.Err(); err != nil {
		return Recognition{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.heard) == 0 {
		return Recognition{}, &CapabilityError{Op: "recognize", Err: errors.New("no speech detected")}
	}
	next := f.heard[0]
	f.heard = f.heard[1:]
	return next.rec, next.err
}

func (f *Fake) Speak(ctx context.Context, text string, _ SpeakOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Spoken = append(f.Spoken, text)
	return f.SpeakErr
}

func (f *Fake) Probe(context.Context) error {
	if f.Unsupported {
		return ErrUnsupported
	}
	return nil
}

// SpokenLines returns a copy of everything spoken so far.
func (f *Fake) SpokenLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Spoken...)
}
