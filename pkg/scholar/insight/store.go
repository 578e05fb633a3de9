package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"niv-scholar-be/pkg/scholar/verse"
	"niv-scholar-be/pkg/storage"
)

const (
	StorageKey  = "niv-scholar-insights"
	TypeInsight = "insight"
)

// Insight is an excerpt the user chose to keep. Once stored it is never changed.
type Insight struct {
	ID           int64          `json:"id"`
	Content      string         `json:"content"`
	Timestamp    string         `json:"timestamp"`
	VerseContext *verse.Context `json:"verseContext"`
	Type         string         `json:"type"`
}

// New derives the id from the creation time and snapshots vc.
func New(content string, vc *verse.Context, now time.Time) Insight {
	var snapshot *verse.Context
	if vc != nil {
		c := *vc
		snapshot = &c
	}
	return Insight{
		ID:           now.UnixMilli(),
		Content:      content,
		Timestamp:    now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		VerseContext: snapshot,
		Type:         TypeInsight,
	}
}

// Store appends insights to one storage key by rewriting the whole list.
// Concurrent writers on the same key race; the last write wins.
type Store struct {
	storage storage.Storage
}

func NewStore(s storage.Storage) *Store {
	return &Store{storage: s}
}

func (s *Store) LoadAll(ctx context.Context) ([]Insight, error) {
	raw, ok, err := s.storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Insight{}, nil
	}

	var insights []Insight
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	if insights == nil {
		insights = []Insight{}
	}
	return insights, nil
}

// Save appends ins and returns what was stored. Saving an insight that is
// already present (same id and content) writes nothing. An id taken by a
// different insight is moved past the current maximum.
func (s *Store) Save(ctx context.Context, ins Insight) (Insight, error) {
	insights, err := s.LoadAll(ctx)
	if err != nil {
		return Insight{}, err
	}

	var maxID int64
	taken := false
	for _, existing := range insights {
		if existing.ID == ins.ID {
			if existing.Content == ins.Content {
				return existing, nil
			}
			taken = true
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	if taken {
		ins.ID = maxID + 1
	}
	if ins.Type == "" {
		ins.Type = TypeInsight
	}

	insights = append(insights, ins)
	data, err := json.Marshal(insights)
	if err != nil {
		return Insight{}, fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	if err := s.storage.Set(ctx, StorageKey, string(data)); err != nil {
		return Insight{}, err
	}
	return ins, nil
}
