package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/intriguedcoder/ai-document-generator/internal/projects/domain"
)

const (
	projectKeyPrefix  = "doc:project:" // doc:project:{id} -> JSON record
	ownerSetKeyPrefix = "doc:user:"    // doc:user:{uid} -> set of project ids
	maxTxRetries      = 3
)

// RedisStore holds each project as a JSON string plus a per-owner id set.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	data, err := s.client.Get(ctx, projectKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return decodeProject(data)
}

func (s *RedisStore) Set(ctx context.Context, project *domain.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, projectKey(project.ID), data, 0)
	pipe.SAdd(ctx, ownerSetKey(project.OwnerID), project.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set project: %w", err)
	}
	return nil
}

// Update is an optimistic read-modify-write guarded by WATCH.
func (s *RedisStore) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	key := projectKey(id)
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		p, err := decodeProject(data)
		if err != nil {
			return err
		}
		patch.Apply(p)
		out, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal project: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to update project: %w", err)
		}
		return err
	}
	return fmt.Errorf("failed to update project %s: too much contention", id)
}

func (s *RedisStore) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	ids, err := s.client.SMembers(ctx, ownerSetKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list project ids: %w", err)
	}
	out := make([]domain.Project, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = projectKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// id left in the set after the record went away
			continue
		}
		p, err := decodeProject([]byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, projectKey(id))
	pipe.SRem(ctx, ownerSetKey(p.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func decodeProject(data []byte) (*domain.Project, error) {
	var p domain.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}
	return &p, nil
}

func projectKey(id string) string { return projectKeyPrefix + id }
func ownerSetKey(uid string) string { return ownerSetKeyPrefix + uid }
