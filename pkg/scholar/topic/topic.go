package topic

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTopic = errors.New("unknown study topic")

type Topic struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Prompt is the message sent when the topic is picked.
func (t Topic) Prompt() string {
	return fmt.Sprintf(`I'm interested in "%s". %s. Please guide me through this topic with historical context, key scriptures, and scholarly insights.`, t.Title, t.Description)
}

var topics = []Topic{
	{Title: "Historical Context of Romans", Description: "Explore the cultural and political background of Paul's letter to the Romans", Icon: "🏛️"},
	{Title: "Greek Word Studies", Description: "Deep dive into the original Greek terms and their nuanced meanings", Icon: "📜"},
	{Title: "The Theme of Exile", Description: "Understanding exile as a recurring biblical motif throughout Scripture", Icon: "🌅"},
	{Title: "Archaeological Evidence", Description: "Recent discoveries that illuminate our understanding of biblical events", Icon: "🏺"},
	{Title: "Covenant Theology", Description: "The development and significance of covenant relationships in Scripture", Icon: "🤝"},
	{Title: "Prophetic Literature", Description: "Understanding the structure and message of biblical prophecy", Icon: "🔥"},
	{Title: "Wisdom Literature", Description: "Exploring the poetic and philosophical depth of biblical wisdom", Icon: "💎"},
	{Title: "Textual Criticism", Description: "How scholars work with ancient manuscripts to understand the original text", Icon: "🔍"},
}

// All returns the study topics in display order.
func All() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// Find matches a title case-insensitively.
func Find(title string) (Topic, error) {
	title = strings.TrimSpace(title)
	for _, t := range topics {
		if strings.EqualFold(t.Title, title) {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("%w: %q", ErrUnknownTopic, title)
}
