package generation

import (
	"errors"
	"fmt"

	"github.com/abhisek/edunova/internal/prompt"
)

// Kind classifies a generation failure.
type Kind int

const (
	// KindTransport covers network failures, non-success HTTP statuses and
	// timeouts.
	KindTransport Kind = iota + 1
	// KindMalformedResponse means the API answered without candidate text.
	KindMalformedResponse
	// KindConfiguration means no prompt could be built for the request.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindMalformedResponse:
		return "malformed_response"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is returned by Client.Generate.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generation %s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err. Prompt configuration errors
// map to KindConfiguration; anything unclassified counts as transport.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	if err != nil && isConfiguration(err) {
		return KindConfiguration
	}
	return KindTransport
}

func isConfiguration(err error) bool {
	var ce *prompt.ConfigurationError
	return errors.As(err, &ce)
}
