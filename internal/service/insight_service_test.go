package service

import (
	"context"
	"encoding/json"
	"testing"

	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/pkg/scholar/verse"
	"niv-scholar-be/pkg/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestInsightServiceSaveAndList(t *testing.T) {
	ctx := context.Background()
	pub := &capturingPublisher{}
	svc := NewInsightService(memory.NewStorage(), pub, logger.NewNopLogger())

	saved, err := svc.Save(ctx, "reader", &dto.SaveInsightRequest{
		Content:      "The Word became flesh.",
		VerseContext: &verse.Context{Book: "John", Chapter: 1, Verse: 14},
	})
	require.NoError(t, err)
	assert.Equal(t, "insight", saved.Type)

	list, err := svc.List(ctx, "reader")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)

	require.Len(t, pub.payloads, 1)
	var msg dto.InsightSavedMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, "reader", msg.ClientID)
	assert.Equal(t, saved.ID, msg.InsightID)
	assert.Equal(t, "John 1:14", msg.Verse)
}

func TestInsightServiceIsolatesClients(t *testing.T) {
	ctx := context.Background()
	svc := NewInsightService(memory.NewStorage(), nil, logger.NewNopLogger())

	_, err := svc.Save(ctx, "a", &dto.SaveInsightRequest{Content: "mine"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, list)
}
