package simulated

import (
	"context"
	"math/rand/v2"
	"time"

	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/canned"
)

// SimulatedProvider answers from a canned pool after a delay, without any
// network access. It is used for offline and demo runs.
type SimulatedProvider struct {
	responses *canned.Pool
	delay     func() time.Duration
}

var (
	_ llm.LLMProvider = &SimulatedProvider{}
	_ llm.Simulator   = &SimulatedProvider{}
)

// JitterDelay waits between base and base+jitter.
func JitterDelay(base, jitter time.Duration) func() time.Duration {
	return func() time.Duration {
		if jitter <= 0 {
			return base
		}
		return base + rand.N(jitter)
	}
}

func NewSimulatedProvider(responses *canned.Pool, delay func() time.Duration) *SimulatedProvider {
	if responses == nil {
		responses = canned.NewPool(canned.SimulatedResponses, canned.Random)
	}
	if delay == nil {
		delay = JitterDelay(1500*time.Millisecond, time.Second)
	}
	return &SimulatedProvider{responses: responses, delay: delay}
}

func (p *SimulatedProvider) Simulated() bool {
	return true
}

func (p *SimulatedProvider) Chat(ctx context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	timer := time.NewTimer(p.delay())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	return canned.Fill(p.responses.Next(), map[string]string{
		canned.VarMessage: lastUserContent(history),
	}), nil
}

func lastUserContent(history []llm.Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == llm.RoleUser {
			return history[i].Content
		}
	}
	return ""
}
