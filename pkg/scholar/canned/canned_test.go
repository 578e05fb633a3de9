package canned

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolWrapsIndexes(t *testing.T) {
	p := NewPool([]string{"a", "b", "c"}, nil)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "a", p.NextCanned(0))
	assert.Equal(t, "b", p.NextCanned(4))
	assert.Equal(t, "c", p.NextCanned(-1))
}

func TestPoolNextUsesIndexFunc(t *testing.T) {
	p := NewPool(FallbackMessages, Fixed(1))

	assert.Equal(t, FallbackMessages[1], p.Next())
	assert.Equal(t, FallbackMessages[1], p.Next())
}

func TestPoolRandomStaysInRange(t *testing.T) {
	p := NewPool(WelcomeMessages, Random)
	for i := 0; i < 50; i++ {
		assert.Contains(t, WelcomeMessages, p.Next())
	}
}

func TestEmptyPool(t *testing.T) {
	p := NewPool(nil, nil)

	assert.Empty(t, p.Next())
	assert.Empty(t, p.NextCanned(3))
}

func TestFill(t *testing.T) {
	got := Fill(SimulatedResponses[0], map[string]string{VarMessage: "grace"})
	assert.Contains(t, got, "question about grace.")

	assert.Equal(t, "Let's explore John 1:1 together.", Fill("Let's explore {reference} together.", map[string]string{VarReference: "John 1:1"}))
	assert.Equal(t, "{unknown}", Fill("{unknown}", nil))
}
