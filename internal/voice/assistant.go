package voice

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// State is the assistant's observable status.
type State struct {
	Enabled   bool
	Listening bool
	Speaking  bool
	Supported bool
}

// Busy reports whether the assistant is listening or speaking.
func (s State) Busy() bool { return s.Listening || s.Speaking }

// Assistant runs voice interactions one at a time: it speaks, then listens,
// then speaks the acknowledgment, never overlapping the steps.
type Assistant struct {
	cap  Capability
	opts SpeakOptions
	log  *zap.Logger

	mu     sync.Mutex
	state  State
	active bool
}

// NewAssistant creates a disabled assistant. Call Probe once before use.
func NewAssistant(c Capability, opts SpeakOptions, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{cap: c, opts: opts, log: log}
}

// Probe checks capability availability and records it in State.Supported.
func (a *Assistant) Probe(ctx context.Context) error {
	err := Probe(ctx, a.cap)
	a.mu.Lock()
	a.state.Supported = err == nil
	a.mu.Unlock()
	if err != nil {
		a.log.Info("voice unavailable", zap.Error(err))
	}
	return err
}

// SetEnabled turns voice features on or off. Enabling an unsupported
// assistant has no effect.
func (a *Assistant) SetEnabled(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state.Enabled = on && a.state.Supported
}

// State returns a copy of the current status.
func (a *Assistant) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Assistant) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case !a.state.Supported:
		return ErrUnsupported
	case !a.state.Enabled:
		return ErrDisabled
	case a.active:
		return ErrBusy
	}
	a.active = true
	return nil
}

func (a *Assistant) end() {
	a.mu.Lock()
	a.active = false
	a.state.Listening = false
	a.state.Speaking = false
	a.mu.Unlock()
}

func (a *Assistant) setFlags(listening, speaking bool) {
	a.mu.Lock()
	a.state.Listening = listening
	a.state.Speaking = speaking
	a.mu.Unlock()
}

func (a *Assistant) speak(ctx context.Context, text string) error {
	a.setFlags(false, true)
	defer a.setFlags(false, false)
	if err := a.cap.Speak(ctx, text, a.opts); err != nil {
		return asCapabilityError("speak", err)
	}
	return nil
}

func (a *Assistant) listen(ctx context.Context) (string, error) {
	a.setFlags(true, false)
	defer a.setFlags(false, false)
	rec, err := a.cap.RecognizeOnce(ctx)
	if err != nil {
		return "", asCapabilityError("recognize", err)
	}
	return strings.TrimSpace(rec.Transcript()), nil
}

// Converse runs one voice interaction against snap: prompt, listen,
// interpret, acknowledge. When the command needs a topic it listens once
// more and applies the answer as the ask's FollowUp: a new topic, or a
// Generate action.
//
// Runtime speech failures are answered with AckNotCaught and returned as a
// *CapabilityError alongside an ActionNone.
func (a *Assistant) Converse(ctx context.Context, snap Snapshot) (Action, error) {
	if err := a.begin(); err != nil {
		return Action{}, err
	}
	defer a.end()

	if err := a.speak(ctx, PromptGreeting); err != nil {
		return a.recover(ctx, err)
	}
	heard, err := a.listen(ctx)
	if err != nil {
		return a.recover(ctx, err)
	}

	act := Interpret(heard, snap)
	a.log.Debug("voice command", zap.String("heard", heard), zap.Stringer("action", act.Kind))

	if act.Kind == ActionAskTopic {
		if err := a.speak(ctx, act.Ack); err != nil {
			return a.recover(ctx, err)
		}
		topic, err := a.listen(ctx)
		if err != nil {
			return a.recover(ctx, err)
		}
		switch {
		case topic == "":
			act = Action{Kind: ActionNone, Ack: AckNotCaught}
		case act.FollowUp == ActionSetTopic:
			act = setTopic(topic)
		default:
			act = GenerateAction(topic, snap)
		}
	}

	if err := a.speak(ctx, act.Ack); err != nil {
		a.log.Warn("voice acknowledgment failed", zap.Error(err))
	}
	return act, nil
}

// recover speaks the generic apology after a failed step.
func (a *Assistant) recover(ctx context.Context, err error) (Action, error) {
	a.log.Warn("voice interaction failed", zap.Error(err))
	if ctx.Err() == nil {
		_ = a.speak(ctx, AckNotCaught)
	}
	return Action{Kind: ActionNone, Ack: AckNotCaught}, err
}

// Say reads text aloud.
func (a *Assistant) Say(ctx context.Context, text string) error {
	if err := a.begin(); err != nil {
		return err
	}
	defer a.end()
	return a.speak(ctx, text)
}

func asCapabilityError(op string, err error) error {
	var ce *CapabilityError
	if errors.As(err, &ce) {
		return err
	}
	return &CapabilityError{Op: op, Err: err}
}
