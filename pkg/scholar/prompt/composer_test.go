package prompt

import (
	"strings"
	"testing"

	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/verse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	john := &verse.Context{Book: "John", Chapter: 3, Verse: 16}

	tests := []struct {
		name    string
		history []llm.Message
		prompt  string
		verse   *verse.Context
		want    []llm.Message
	}{
		{
			name:   "empty history",
			prompt: "What does grace mean?",
			want: []llm.Message{
				{Role: llm.RoleUser, Content: "What does grace mean?"},
			},
		},
		{
			name: "malformed entries dropped in order",
			history: []llm.Message{
				{Role: llm.RoleUser, Content: "first"},
				{Role: "", Content: "no role"},
				{Role: llm.RoleAssistant, Content: ""},
				{Role: llm.RoleAssistant, Content: "second"},
			},
			prompt: "third",
			want: []llm.Message{
				{Role: llm.RoleUser, Content: "first"},
				{Role: llm.RoleAssistant, Content: "second"},
				{Role: llm.RoleUser, Content: "third"},
			},
		},
		{
			name:   "verse context prefixes the prompt",
			prompt: "who is speaking?",
			verse:  john,
			want: []llm.Message{
				{Role: llm.RoleUser, Content: "In the context of John 3:16, who is speaking?"},
			},
		},
		{
			name:    "absent prompt adds no user turn",
			history: []llm.Message{{Role: llm.RoleUser, Content: "hello"}},
			verse:   john,
			want: []llm.Message{
				{Role: llm.RoleUser, Content: "hello"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.history, tt.prompt, tt.verse)

			require.NotEmpty(t, got)
			assert.Equal(t, Persona(), got[0])
			assert.Equal(t, tt.want, got[1:])
		})
	}
}

func TestComposeLastTurnEndsWithPrompt(t *testing.T) {
	prompts := []string{"a", "Why did Paul write Romans?", "  spaced  "}
	contexts := []*verse.Context{nil, {Book: "Romans", Chapter: 5, Verse: 8}}

	for _, p := range prompts {
		for _, vc := range contexts {
			got := Compose(nil, p, vc)
			last := got[len(got)-1]
			assert.Equal(t, llm.RoleUser, last.Role)
			assert.True(t, strings.HasSuffix(last.Content, p))
			if vc == nil {
				assert.Equal(t, p, last.Content)
			}
		}
	}
}

func TestComposeIsIdempotent(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "q"},
		{Role: llm.RoleAssistant, Content: "a"},
	}
	vc := &verse.Context{Book: "Genesis", Chapter: 1, Verse: 1}

	first := Compose(history, "next", vc)
	second := Compose(history, "next", vc)

	assert.Equal(t, first, second)
}

func TestComposeDoesNotAliasHistory(t *testing.T) {
	history := []llm.Message{{Role: llm.RoleUser, Content: "q"}}
	got := Compose(history, "", nil)
	got[1].Content = "changed"

	assert.Equal(t, "q", history[0].Content)
}

func TestPersonaConventions(t *testing.T) {
	p := Persona()
	assert.Equal(t, llm.RoleSystem, p.Role)
	assert.Contains(t, p.Content, "clickable links")
	assert.Contains(t, p.Content, "Hebrew/Greek")
}
