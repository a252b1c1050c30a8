package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned when no provider credentials are present.
var ErrNotConfigured = errors.New("llm provider not configured")

// Unconfigured is a stand-in client used until provider credentials are set.
type Unconfigured struct{}

// Complete always returns ErrNotConfigured.
func (Unconfigured) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
