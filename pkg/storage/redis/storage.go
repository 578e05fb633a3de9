package redis

import (
	"context"
	"errors"
	"fmt"

	"niv-scholar-be/pkg/storage"

	goredis "github.com/redis/go-redis/v9"
)

type Storage struct {
	rdb *goredis.Client
}

var _ storage.Storage = &Storage{}

func NewStorage(rdb *goredis.Client) *Storage {
	return &Storage{rdb: rdb}
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
