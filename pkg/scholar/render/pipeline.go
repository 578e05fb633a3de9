package render

import (
	"context"
	"sync"
	"time"

	"niv-scholar-be/pkg/scholar/gateway"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/verse"

	"github.com/google/uuid"
)

const (
	// DefaultInterval is the reveal speed of one rune.
	DefaultInterval = 20 * time.Millisecond

	// DefaultRetention is how many recent entries stay addressable for saving.
	DefaultRetention = 200
)

// Saver persists insights; *insight.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, ins insight.Insight) (insight.Insight, error)
}

// Pipeline turns completion results into transcript entries.
type Pipeline struct {
	presenter Presenter
	interval  time.Duration
	retention int
	newID     func() string

	mu      sync.Mutex
	entries map[string]*Entry
	order   []string // entry ids, oldest first
	closed  bool
	wg      sync.WaitGroup
}

// NewPipeline reveals one rune per interval. A non-positive interval reveals
// without waiting, which is what tests use.
func NewPipeline(presenter Presenter, interval time.Duration) *Pipeline {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &Pipeline{
		presenter: presenter,
		interval:  interval,
		retention: DefaultRetention,
		newID:     uuid.NewString,
		entries:   make(map[string]*Entry),
	}
}

// WithRetention keeps only the n most recent entries; older ones can no longer
// be saved. n < 1 is ignored.
func (p *Pipeline) WithRetention(n int) *Pipeline {
	if n > 0 {
		p.mu.Lock()
		p.retention = n
		p.prune()
		p.mu.Unlock()
	}
	return p
}

// Render shows res. A successful result starts revealing a new entry in the
// background and is returned with a channel closed once the entry is armed
// (or the reveal was cancelled). A failed result becomes an error entry with
// no save action; the returned entry is nil and the channel already closed.
func (p *Pipeline) Render(ctx context.Context, res *gateway.Result) (*Entry, <-chan struct{}) {
	if res == nil || !res.Success {
		msg, fallback := "unknown error", ""
		if res != nil {
			msg, fallback = res.Error, res.Fallback
		}
		p.presenter.ErrorEntry(p.newID(), msg, fallback)
		done := make(chan struct{})
		close(done)
		return nil, done
	}
	return p.Show(ctx, res.Message)
}

// Show reveals text as a scholar entry. Canned messages use it directly. Once
// the pipeline is closed it renders nothing and returns a nil entry.
func (p *Pipeline) Show(ctx context.Context, text string) (*Entry, <-chan struct{}) {
	done := make(chan struct{})

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		close(done)
		return nil, done
	}
	e := p.registerLocked(text)
	p.wg.Add(1)
	p.mu.Unlock()

	p.presenter.EntryStarted(e.ID(), KindScholar)
	go func() {
		defer p.wg.Done()
		defer close(done)
		p.Reveal(ctx, e)
	}()
	return e, done
}

// Begin registers an entry without revealing it.
func (p *Pipeline) Begin(text string) (*Entry, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPipelineClosed
	}
	e := p.registerLocked(text)
	p.mu.Unlock()

	p.presenter.EntryStarted(e.ID(), KindScholar)
	return e, nil
}

func (p *Pipeline) registerLocked(text string) *Entry {
	e := NewEntry(p.newID(), text)
	p.entries[e.ID()] = e
	p.order = append(p.order, e.ID())
	p.prune()
	return e
}

// prune drops the oldest entries beyond the retention limit. p.mu is held.
func (p *Pipeline) prune() {
	for len(p.order) > p.retention {
		delete(p.entries, p.order[0])
		p.order = p.order[1:]
	}
}

// Reveal drives e to SaveArmed on the calling goroutine. It returns early,
// leaving e unsaveable, if ctx is cancelled.
func (p *Pipeline) Reveal(ctx context.Context, e *Entry) {
	var tick <-chan time.Time
	if p.interval > 0 {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return
		}

		unit, prefix, done := e.Advance()
		if unit != "" {
			p.presenter.RevealTick(Tick{EntryID: e.ID(), Unit: unit, Prefix: prefix})
		}
		if done {
			break
		}
	}

	_ = p.Finish(e)
}

// Finish linkifies a fully revealed entry and arms its save action. The entry
// is already saveable when the presenter hears EntryCompleted.
func (p *Pipeline) Finish(e *Entry) error {
	segments, err := e.Linkify()
	if err != nil {
		return err
	}
	for _, s := range segments {
		if s.Reference != nil {
			p.presenter.ReferenceFound(e.ID(), *s.Reference)
		}
	}
	if err := e.Arm(); err != nil {
		return err
	}
	p.presenter.EntryCompleted(e.ID(), segments)
	return nil
}

// Entry looks up a rendered entry.
func (p *Pipeline) Entry(id string) (*Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.entries[id]
	return e, ok
}

// Save stores the entry's text as an insight tagged with vc, the verse context
// at the moment of saving. It succeeds at most once per entry; later calls
// return ErrAlreadySaved.
func (p *Pipeline) Save(ctx context.Context, entryID string, vc *verse.Context, now time.Time, saver Saver) (insight.Insight, error) {
	e, ok := p.Entry(entryID)
	if !ok {
		return insight.Insight{}, ErrUnknownEntry
	}
	if err := e.claimSave(); err != nil {
		return insight.Insight{}, err
	}

	stored, err := saver.Save(ctx, insight.New(e.Text(), vc, now))
	if err != nil {
		e.releaseSave()
		return insight.Insight{}, err
	}

	p.presenter.InsightSaved(e.ID(), stored)
	return stored, nil
}

// Wait blocks until every background reveal has returned.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Close refuses new entries and waits for the running reveals. Callers cancel
// the reveal context first if they do not want to wait for the full text.
func (p *Pipeline) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
}
