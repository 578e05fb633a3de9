package render

import (
	"errors"
	"sync"

	"niv-scholar-be/pkg/scholar/reference"
)

// State is where a transcript entry is in its lifecycle.
type State int

const (
	Idle State = iota
	Revealing
	Linkified
	SaveArmed
	Saved
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Revealing:
		return "revealing"
	case Linkified:
		return "linkified"
	case SaveArmed:
		return "save_armed"
	case Saved:
		return "saved"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadySaved  = errors.New("entry already saved")
	ErrNotSavable    = errors.New("entry is not ready to be saved")
	ErrRevealPending = errors.New("entry is still revealing")
	ErrBadTransition = errors.New("invalid entry state transition")
	ErrUnknownEntry  = errors.New("unknown transcript entry")

	ErrPipelineClosed = errors.New("render pipeline is closed")
)

// Entry is one scholar response in the transcript. It moves strictly through
// Idle → Revealing → Linkified → SaveArmed → Saved.
type Entry struct {
	mu       sync.Mutex
	id       string
	text     string
	runes    []rune
	revealed int
	state    State
	segments []reference.Segment
}

func NewEntry(id, text string) *Entry {
	return &Entry{
		id:    id,
		text:  text,
		runes: []rune(text),
	}
}

func (e *Entry) ID() string {
	return e.id
}

// Text is the full plain text, independent of how much has been revealed.
func (e *Entry) Text() string {
	return e.text
}

func (e *Entry) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Prefix is the text revealed so far.
func (e *Entry) Prefix() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.runes[:e.revealed])
}

// Segments is nil until the entry is linkified.
func (e *Entry) Segments() []reference.Segment {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.segments
}

// Advance reveals one more rune and returns it with the revealed prefix.
// done is true once nothing is left to reveal; further calls reveal nothing.
func (e *Entry) Advance() (unit string, prefix string, done bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Idle {
		e.state = Revealing
	}
	if e.state != Revealing || e.revealed >= len(e.runes) {
		return "", string(e.runes[:e.revealed]), true
	}

	unit = string(e.runes[e.revealed])
	e.revealed++
	return unit, string(e.runes[:e.revealed]), e.revealed == len(e.runes)
}

// Linkify marks the citations of the fully revealed text.
func (e *Entry) Linkify() ([]reference.Segment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Idle && len(e.runes) == 0 {
		e.state = Revealing
	}
	if e.state != Revealing {
		return nil, ErrBadTransition
	}
	if e.revealed < len(e.runes) {
		return nil, ErrRevealPending
	}

	e.segments = reference.Segments(e.text)
	e.state = Linkified
	return e.segments, nil
}

// Arm exposes the save action.
func (e *Entry) Arm() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Linkified {
		return ErrBadTransition
	}
	e.state = SaveArmed
	return nil
}

// claimSave moves SaveArmed → Saved. Only one caller can win.
func (e *Entry) claimSave() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case SaveArmed:
		e.state = Saved
		return nil
	case Saved:
		return ErrAlreadySaved
	default:
		return ErrNotSavable
	}
}

// releaseSave re-arms the entry after a failed write.
func (e *Entry) releaseSave() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Saved {
		e.state = SaveArmed
	}
}
