package dto

import "niv-scholar-be/pkg/scholar/verse"

type SaveInsightRequest struct {
	Content      string         `json:"content" validate:"required"`
	VerseContext *verse.Context `json:"verseContext,omitempty"`
}

// InsightSavedMessage travels on the in-process event bus.
type InsightSavedMessage struct {
	ClientID  string `json:"client_id"`
	InsightID int64  `json:"insight_id"`
	Content   string `json:"content"`
	Verse     string `json:"verse,omitempty"`
	Timestamp string `json:"timestamp"`
}
