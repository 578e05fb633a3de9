package dto

import "niv-scholar-be/pkg/scholar/verse"

// Inbound frame types.
const (
	FrameSend        = "send"
	FrameSelectVerse = "select_verse"
	FrameLookup      = "lookup"
	FrameTopic       = "topic"
	FrameSave        = "save"
	FrameReset       = "reset"
)

// Outbound frame types.
const (
	FrameTurn            = "turn"
	FrameEntryStarted    = "entry_started"
	FrameReveal          = "reveal"
	FrameReference       = "reference"
	FrameEntryCompleted  = "entry_completed"
	FrameErrorEntry      = "error_entry"
	FrameInsightSaved    = "insight_saved"
	FrameNotification    = "notification"
	FrameTyping          = "typing"
	FrameError           = "error"
	FrameNotebookUpdated = "notebook_updated"
)

type WSInbound struct {
	Type      string         `json:"type" validate:"required,oneof=send select_verse lookup topic save reset"`
	Prompt    string         `json:"prompt,omitempty"`
	Verse     *verse.Context `json:"verse,omitempty"`
	Reference string         `json:"reference,omitempty"`
	Topic     string         `json:"topic,omitempty"`
	EntryID   string         `json:"entry_id,omitempty"`
}

type WSOutbound struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type ErrorEntryData struct {
	EntryID  string `json:"entry_id"`
	Error    string `json:"error"`
	Fallback string `json:"fallbackMessage,omitempty"`
}
