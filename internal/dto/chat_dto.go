package dto

import (
	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/verse"
)

type ChatRequest struct {
	Prompt       string         `json:"prompt" validate:"required"`
	History      []llm.Message  `json:"history"`
	VerseContext *verse.Context `json:"verseContext,omitempty"`
}

type ChatResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
