// Package rendertest provides a Presenter that records what it is shown.
package rendertest

import (
	"sync"

	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/reference"
	"niv-scholar-be/pkg/scholar/render"
)

// Event is one recorded presenter call.
type Event struct {
	Name      string
	EntryID   string
	Kind      render.Kind
	Text      string
	Fallback  string
	Turn      llm.Message
	Reference reference.Reference
	Segments  []reference.Segment
	Insight   insight.Insight
	Typing    bool
}

type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ render.Presenter = &Recorder{}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named filters Events by method name.
func (r *Recorder) Named(name string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Revealed joins the tick units of one entry.
func (r *Recorder) Revealed(entryID string) string {
	var s string
	for _, e := range r.Named("RevealTick") {
		if e.EntryID == entryID {
			s += e.Text
		}
	}
	return s
}

func (r *Recorder) TurnAppended(turn llm.Message) {
	r.add(Event{Name: "TurnAppended", Turn: turn})
}

func (r *Recorder) EntryStarted(entryID string, kind render.Kind) {
	r.add(Event{Name: "EntryStarted", EntryID: entryID, Kind: kind})
}

func (r *Recorder) RevealTick(tick render.Tick) {
	r.add(Event{Name: "RevealTick", EntryID: tick.EntryID, Text: tick.Unit})
}

func (r *Recorder) ReferenceFound(entryID string, ref reference.Reference) {
	r.add(Event{Name: "ReferenceFound", EntryID: entryID, Reference: ref})
}

func (r *Recorder) EntryCompleted(entryID string, segments []reference.Segment) {
	r.add(Event{Name: "EntryCompleted", EntryID: entryID, Segments: segments})
}

func (r *Recorder) ErrorEntry(entryID string, message, fallback string) {
	r.add(Event{Name: "ErrorEntry", EntryID: entryID, Kind: render.KindError, Text: message, Fallback: fallback})
}

func (r *Recorder) InsightSaved(entryID string, ins insight.Insight) {
	r.add(Event{Name: "InsightSaved", EntryID: entryID, Insight: ins})
}

func (r *Recorder) Notify(message string) {
	r.add(Event{Name: "Notify", Text: message})
}

func (r *Recorder) TypingChanged(typing bool) {
	r.add(Event{Name: "TypingChanged", Typing: typing})
}
