package memory

import (
	"context"

	"niv-scholar-be/pkg/storage"

	"github.com/patrickmn/go-cache"
)

type Storage struct {
	cache *cache.Cache
}

var _ storage.Storage = &Storage{}

func NewStorage() *Storage {
	// Values never expire; the janitor is disabled
	return &Storage{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}
