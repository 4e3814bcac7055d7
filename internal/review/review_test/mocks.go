package review_test

import (
	"context"
	"sync"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0, 0, 0}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	vectors := make([][]float32, len(chunks))
	for i := range vectors {
		vectors[i] = []float32{float32(i), 0, 0}
	}
	return vectors, nil
}

type MockLLM struct {
	OnGenerate func(ctx context.Context, query string, contextBlocks []string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, query string, contextBlocks []string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, query, contextBlocks)
	}
	return "default review", nil
}

// MockArtifactStore records saves so tests can assert on stored copies.
type MockArtifactStore struct {
	mu     sync.Mutex
	Saved  map[string]reviewModel.Artifact
	OnSave func(ctx context.Context, jobId string, artifact reviewModel.Artifact) error
}

func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{Saved: make(map[string]reviewModel.Artifact)}
}

func (m *MockArtifactStore) SaveArtifact(ctx context.Context, jobId string, artifact reviewModel.Artifact) error {
	if m.OnSave != nil {
		if err := m.OnSave(ctx, jobId, artifact); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved[jobId+":"+artifact.Name] = artifact
	return nil
}

func (m *MockArtifactStore) GetArtifact(ctx context.Context, jobId string, name string) (reviewModel.Artifact, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	artifact, found := m.Saved[jobId+":"+name]
	return artifact, found
}

func (m *MockArtifactStore) DeleteArtifacts(ctx context.Context, jobId string, names []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, name := range names {
		delete(m.Saved, jobId+":"+name)
	}
}
