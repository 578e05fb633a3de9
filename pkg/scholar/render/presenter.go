package render

import (
	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/reference"
)

type Kind string

const (
	KindScholar Kind = "scholar"
	KindError   Kind = "error"
)

// Tick is one step of a reveal.
type Tick struct {
	EntryID string `json:"entry_id"`
	Unit    string `json:"unit"`
	Prefix  string `json:"-"`
}

// Presenter is the UI side of the transcript. Implementations must be safe for
// concurrent use because every entry reveals on its own goroutine.
type Presenter interface {
	TurnAppended(turn llm.Message)
	EntryStarted(entryID string, kind Kind)
	RevealTick(tick Tick)
	ReferenceFound(entryID string, ref reference.Reference)
	EntryCompleted(entryID string, segments []reference.Segment)
	ErrorEntry(entryID string, message, fallback string)
	InsightSaved(entryID string, ins insight.Insight)
	Notify(message string)
	TypingChanged(typing bool)
}

// NopPresenter ignores every event.
type NopPresenter struct{}

var _ Presenter = NopPresenter{}

func (NopPresenter) TurnAppended(llm.Message) {}
func (NopPresenter) EntryStarted(string, Kind) {}
func (NopPresenter) RevealTick(Tick) {}
func (NopPresenter) ReferenceFound(string, reference.Reference) {}
func (NopPresenter) EntryCompleted(string, []reference.Segment) {}
func (NopPresenter) ErrorEntry(string, string, string) {}
func (NopPresenter) InsightSaved(string, insight.Insight) {}
func (NopPresenter) Notify(string) {}
func (NopPresenter) TypingChanged(bool) {}
