package prompt

import (
	"fmt"

	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/verse"
)

const personaInstruction = `You are NIV Scholar, a wise and knowledgeable biblical scholar with expertise in:
- Historical context of biblical times
- Hebrew and Greek word studies
- Archaeological discoveries and their significance
- Textual criticism and manuscript traditions
- Theological themes and their development
- Cross-references and biblical interpretation

Your personality is:
- Scholarly yet approachable
- Respectful of diverse theological perspectives
- Thorough in explanations but not overly technical
- Contemplative and thoughtful in responses
- Passionate about helping others understand scripture

Always format biblical references as clickable links (e.g., John 3:16).
When discussing original languages, provide both Hebrew/Greek terms and their meanings.
Include relevant historical context and cultural background.
Suggest related passages for further study.
Avoid dogmatic statements; instead, present scholarly consensus and different viewpoints.`

// Persona returns the system turn. A fresh value is built on every call.
func Persona() llm.Message {
	return llm.Message{Role: llm.RoleSystem, Content: personaInstruction}
}

// UserPrompt annotates prompt with the active verse context, if any.
func UserPrompt(prompt string, vc *verse.Context) string {
	if vc == nil {
		return prompt
	}
	return fmt.Sprintf("In the context of %s %d:%d, %s", vc.Book, vc.Chapter, vc.Verse, prompt)
}

// Compose builds the message list sent to the completion backend:
// persona, then the valid history entries in order, then the new user turn.
// History entries missing a role or content are dropped. An empty prompt adds
// no user turn.
func Compose(history []llm.Message, prompt string, vc *verse.Context) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, Persona())

	for _, m := range history {
		if !m.Valid() {
			continue
		}
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	if prompt != "" {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: UserPrompt(prompt, vc)})
	}

	return messages
}
