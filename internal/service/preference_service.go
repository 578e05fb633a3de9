package service

import (
	"context"

	"niv-scholar-be/pkg/scholar/preference"
	"niv-scholar-be/pkg/storage"
)

type IPreferenceService interface {
	Get(ctx context.Context, clientID string) (preference.Preferences, error)
	Update(ctx context.Context, clientID string, prefs preference.Preferences) (preference.Preferences, error)
}

type preferenceService struct {
	storage storage.Storage
}

func NewPreferenceService(s storage.Storage) IPreferenceService {
	return &preferenceService{storage: s}
}

func (s *preferenceService) Get(ctx context.Context, clientID string) (preference.Preferences, error) {
	return preference.Load(ctx, storage.WithPrefix(s.storage, clientID))
}

func (s *preferenceService) Update(ctx context.Context, clientID string, prefs preference.Preferences) (preference.Preferences, error) {
	scoped := storage.WithPrefix(s.storage, clientID)
	if err := preference.Store(ctx, scoped, prefs); err != nil {
		return nil, err
	}
	return preference.Load(ctx, scoped)
}
