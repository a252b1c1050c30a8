package llm

import "context"

// Request carries a single completion call to a provider.
type Request struct {
	System   string
	Prompt   string
	WantJSON bool
}

// Client abstracts LLM providers for match analysis and email drafting.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
