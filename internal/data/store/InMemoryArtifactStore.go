package store

import (
	"context"
	"sync"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

type InMemoryArtifactStore struct {
	artifactMutex *sync.RWMutex
	artifactMap   map[string][]byte
}

func InitInMemoryArtifactStore() *InMemoryArtifactStore {
	return &InMemoryArtifactStore{
		artifactMutex: new(sync.RWMutex),
		artifactMap:   make(map[string][]byte),
	}
}

func (store *InMemoryArtifactStore) SaveArtifact(ctx context.Context, jobId string, artifact reviewModel.Artifact) error {
	store.artifactMutex.Lock()
	defer store.artifactMutex.Unlock()
	store.artifactMap[artifactKey(jobId, artifact.Name)] = artifact.Data
	inMemLogger.Debug("Saved artifact to store", "jobId", jobId, "name", artifact.Name)
	return nil
}

func (store *InMemoryArtifactStore) GetArtifact(ctx context.Context, jobId string, name string) (reviewModel.Artifact, bool) {
	store.artifactMutex.RLock()
	defer store.artifactMutex.RUnlock()
	data, found := store.artifactMap[artifactKey(jobId, name)]
	if !found {
		return reviewModel.Artifact{}, false
	}
	return reviewModel.Artifact{Name: name, Data: data}, true
}

func (store *InMemoryArtifactStore) DeleteArtifacts(ctx context.Context, jobId string, names []string) {
	store.artifactMutex.Lock()
	defer store.artifactMutex.Unlock()
	for _, name := range names {
		delete(store.artifactMap, artifactKey(jobId, name))
	}
}
