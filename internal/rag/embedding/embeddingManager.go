package embedding

import (
	"context"
	"fmt"
)

type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}

// EmbeddingError means the embedding backend was unreachable or answered with
// malformed vectors. Fatal for the current request; no automatic retry beyond
// the single rate-limit retry inside the client.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding backend failure: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }
