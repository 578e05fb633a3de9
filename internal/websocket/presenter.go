package websocket

import (
	"niv-scholar-be/internal/dto"
	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/reference"
	"niv-scholar-be/pkg/scholar/render"
)

// Presenter streams transcript events of one session to its connection.
type Presenter struct {
	client *Client
}

var _ render.Presenter = &Presenter{}

func NewPresenter(c *Client) *Presenter {
	return &Presenter{client: c}
}

func (p *Presenter) TurnAppended(turn llm.Message) {
	p.client.sendFrame(dto.FrameTurn, turn)
}

func (p *Presenter) EntryStarted(entryID string, kind render.Kind) {
	p.client.sendFrame(dto.FrameEntryStarted, map[string]interface{}{"entry_id": entryID, "kind": kind})
}

func (p *Presenter) RevealTick(tick render.Tick) {
	p.client.sendFrame(dto.FrameReveal, tick)
}

func (p *Presenter) ReferenceFound(entryID string, ref reference.Reference) {
	p.client.sendFrame(dto.FrameReference, map[string]interface{}{"entry_id": entryID, "reference": ref})
}

func (p *Presenter) EntryCompleted(entryID string, segments []reference.Segment) {
	p.client.sendFrame(dto.FrameEntryCompleted, map[string]interface{}{"entry_id": entryID, "segments": segments})
}

func (p *Presenter) ErrorEntry(entryID string, message, fallback string) {
	p.client.sendFrame(dto.FrameErrorEntry, dto.ErrorEntryData{EntryID: entryID, Error: message, Fallback: fallback})
}

func (p *Presenter) InsightSaved(entryID string, ins insight.Insight) {
	p.client.sendFrame(dto.FrameInsightSaved, map[string]interface{}{"entry_id": entryID, "insight": ins})
}

func (p *Presenter) Notify(message string) {
	p.client.sendFrame(dto.FrameNotification, map[string]string{"message": message})
}

func (p *Presenter) TypingChanged(typing bool) {
	p.client.sendFrame(dto.FrameTyping, map[string]bool{"typing": typing})
}
