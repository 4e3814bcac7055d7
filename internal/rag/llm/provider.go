package llm

import (
	"context"
	"fmt"
)

type Provider interface {
	Generate(ctx context.Context, query string, contextBlocks []string) (string, error)
}

// GenerationError means the generative backend failed (auth, rate limit,
// network). Surfaced to the caller as-is; retry policy is theirs, since a
// quota failure and a transient network failure want different handling.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation backend failure: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
