package store

import (
	"context"

	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/data/redisStore"
	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
)

// RedisArtifactStore parks annotated document bytes until the caller fetches
// them through the download endpoint. Entries share the job TTL so abandoned
// artifacts age out on their own.
type RedisArtifactStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisArtifactStore(ctx context.Context) *RedisArtifactStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisArtifactStore)
	if inner == nil {
		return nil
	}
	return &RedisArtifactStore{
		store:  inner,
		logger: logger_i.NewLogger("ArtifactStore"),
	}
}

func artifactKey(jobId string, name string) string {
	return jobId + ":" + name
}

func (s *RedisArtifactStore) SaveArtifact(ctx context.Context, jobId string, artifact reviewModel.Artifact) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "job Id", jobId)
	err := s.store.Set(ctx, artifactKey(jobId, artifact.Name), artifact.Data, config.RedisArtifactStoreTTL)
	if err != nil {
		log.Error("error saving artifact", "name", artifact.Name, "error:", err)
		return err
	}
	log.Debug("Saved artifact", "name", artifact.Name, "bytes", len(artifact.Data))
	return nil
}

func (s *RedisArtifactStore) GetArtifact(ctx context.Context, jobId string, name string) (reviewModel.Artifact, bool) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "job Id", jobId)
	data, err := s.store.GetBytes(ctx, artifactKey(jobId, name))
	if s.store.IsNil(err) {
		return reviewModel.Artifact{}, false
	} else if err != nil {
		log.Error("error getting artifact", "name", name, "error:", err)
		return reviewModel.Artifact{}, false
	}
	return reviewModel.Artifact{Name: name, Data: data}, true
}

func (s *RedisArtifactStore) DeleteArtifacts(ctx context.Context, jobId string, names []string) {
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, artifactKey(jobId, name))
	}
	if len(keys) == 0 {
		return
	}
	if err := s.store.Del(ctx, keys...); err != nil {
		s.logger.Error("error deleting artifacts", "jobId", jobId, "error:", err)
	}
}

func TestArtifactStore(store *redisStore.Store) *RedisArtifactStore {
	return &RedisArtifactStore{
		store:  store,
		logger: logger_i.NewLogger("test artifact redis"),
	}
}
