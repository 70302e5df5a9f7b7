package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ActiveSpaceStore remembers which game space each user has selected.
type ActiveSpaceStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
	Set(ctx context.Context, userID, gameSpaceID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type activeSpaceStore struct {
	rdb    *redis.Client
	prefix string
}

func NewActiveSpaceStore(rdb *redis.Client, prefix string) ActiveSpaceStore {
	return &activeSpaceStore{rdb: rdb, prefix: prefix}
}

func (s *activeSpaceStore) key(userID uuid.UUID) string {
	return s.prefix + userID.String()
}

// Get returns nil when nothing is selected.
func (s *activeSpaceStore) Get(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	raw, err := s.rdb.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// stale garbage, treat as unselected
		_ = s.rdb.Del(ctx, s.key(userID)).Err()
		return nil, nil
	}
	return &id, nil
}

func (s *activeSpaceStore) Set(ctx context.Context, userID, gameSpaceID uuid.UUID) error {
	return s.rdb.Set(ctx, s.key(userID), gameSpaceID.String(), 0).Err()
}

func (s *activeSpaceStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.rdb.Del(ctx, s.key(userID)).Err()
}
