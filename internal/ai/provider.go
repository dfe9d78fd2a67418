package ai

import (
	"fmt"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the completion contract: compose messages, get one reply.
// Implementations own their own timeouts; callers treat any error as a
// CompletionError and degrade to a safe reply.
type Provider interface {
	Generate(messages []Message) (string, error)
}

// CompletionError wraps any failure of the completion call.
type CompletionError struct {
	Provider string
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion (%s): %v", e.Provider, e.Err)
}

func (e *CompletionError) Unwrap() error { return e.Err }

// NewProvider selects a provider by engine name.
func NewProvider(engine, model string) (Provider, error) {
	switch engine {
	case "pollinations", "":
		return NewPollinationsProvider(model), nil
	case "g4f":
		return NewG4FProvider(model), nil
	default:
		return nil, fmt.Errorf("unsupported AI_PROVIDER: %s", engine)
	}
}
