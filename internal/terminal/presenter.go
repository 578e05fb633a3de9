// Package terminal renders a scholar session on a text console.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/reference"
	"niv-scholar-be/pkg/scholar/render"

	"github.com/fatih/color"
)

// Presenter writes reveal ticks as they arrive and lists the linked references
// once an entry completes.
type Presenter struct {
	mu  sync.Mutex
	out io.Writer

	user      *color.Color
	scholar   *color.Color
	reference *color.Color
	failure   *color.Color
	notice    *color.Color
	faint     *color.Color
}

var _ render.Presenter = &Presenter{}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{
		out:       out,
		user:      color.New(color.FgGreen, color.Bold),
		scholar:   color.New(color.FgCyan, color.Bold),
		reference: color.New(color.FgYellow, color.Underline),
		failure:   color.New(color.FgRed),
		notice:    color.New(color.FgMagenta),
		faint:     color.New(color.Faint),
	}
}

func (p *Presenter) TurnAppended(turn llm.Message) {
	if turn.Role != llm.RoleUser {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.user.Fprint(p.out, "You: ")
	fmt.Fprintln(p.out, turn.Content)
}

func (p *Presenter) EntryStarted(string, render.Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scholar.Fprint(p.out, "NIV Scholar: ")
}

func (p *Presenter) RevealTick(tick render.Tick) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.out, tick.Unit)
}

func (p *Presenter) ReferenceFound(string, reference.Reference) {}

func (p *Presenter) EntryCompleted(_ string, segments []reference.Segment) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)

	var labels []string
	for _, s := range segments {
		if s.Reference != nil {
			labels = append(labels, p.reference.Sprint(s.Reference.Label))
		}
	}
	if len(labels) > 0 {
		p.faint.Fprint(p.out, "References: ")
		fmt.Fprintln(p.out, strings.Join(labels, ", "))
	}
}

func (p *Presenter) ErrorEntry(_ string, message, fallback string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failure.Fprintf(p.out, "Sorry, I encountered an issue: %s\n", message)
	if fallback != "" {
		p.faint.Fprintln(p.out, fallback)
	}
}

func (p *Presenter) InsightSaved(_ string, ins insight.Insight) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faint.Fprintf(p.out, "Saved insight #%d\n", ins.ID)
}

func (p *Presenter) Notify(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notice.Fprintf(p.out, "» %s\n", message)
}

func (p *Presenter) TypingChanged(typing bool) {
	if !typing {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faint.Fprintln(p.out, "NIV Scholar is reflecting...")
}
