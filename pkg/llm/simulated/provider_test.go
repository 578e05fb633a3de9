package simulated

import (
	"context"
	"testing"
	"time"

	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/canned"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedChatUsesPinnedResponse(t *testing.T) {
	pool := canned.NewPool(canned.SimulatedResponses, canned.Fixed(0))
	p := NewSimulatedProvider(pool, func() time.Duration { return 0 })

	got, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "the Exodus"},
	})

	require.NoError(t, err)
	assert.Contains(t, got, "That's a fascinating question about the Exodus.")
	assert.True(t, p.Simulated())
}

func TestSimulatedChatHonoursCancellation(t *testing.T) {
	p := NewSimulatedProvider(nil, func() time.Duration { return time.Hour })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Chat(ctx, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestJitterDelayStaysInRange(t *testing.T) {
	d := JitterDelay(10*time.Millisecond, 5*time.Millisecond)
	for i := 0; i < 50; i++ {
		got := d()
		assert.GreaterOrEqual(t, got, 10*time.Millisecond)
		assert.Less(t, got, 15*time.Millisecond)
	}
	assert.Equal(t, time.Second, JitterDelay(time.Second, 0)())
}
