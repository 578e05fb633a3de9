// Package session routes one reader's UI events through the composer, the
// completion gateway, the render pipeline and the insight store.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/canned"
	"niv-scholar-be/pkg/scholar/conversation"
	"niv-scholar-be/pkg/scholar/gateway"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/prompt"
	"niv-scholar-be/pkg/scholar/reference"
	"niv-scholar-be/pkg/scholar/render"
	"niv-scholar-be/pkg/scholar/topic"
	"niv-scholar-be/pkg/scholar/verse"

	"github.com/google/uuid"
)

const (
	SavedNotice = "Insight saved to your study notebook"

	module = "ScholarSession"
)

var (
	ErrBusy        = errors.New("a response is still being prepared")
	ErrEmptyPrompt = errors.New("prompt is empty")
	ErrClosed      = errors.New("session is closed")
)

// Config wires a session. Gateway is required; everything else has a default.
type Config struct {
	Gateway   gateway.Completer
	Presenter render.Presenter
	Insights  render.Saver
	Logger    logger.ILogger

	RevealInterval time.Duration
	WelcomeDelay   time.Duration
	Options        []llm.Option

	Welcome    *canned.Pool
	VerseIntro *canned.Pool
	Lookup     *canned.Pool
	Fallback   *canned.Pool

	Now func() time.Time
}

// Reply is what a UI action produced. Entry is nil when an error entry was
// rendered instead. Done closes once the entry's save action is armed.
type Reply struct {
	Result *gateway.Result
	Entry  *render.Entry
	Done   <-chan struct{}
}

type Session struct {
	id        string
	gateway   gateway.Completer
	presenter render.Presenter
	insights  render.Saver
	logger    logger.ILogger
	pipeline  *render.Pipeline
	history   *conversation.Store
	options   []llm.Option

	welcomeDelay time.Duration
	welcome      *canned.Pool
	verseIntro   *canned.Pool
	lookup       *canned.Pool
	fallback     *canned.Pool
	now          func() time.Time

	// ctx bounds every reveal; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	typing bool
	verse  *verse.Context
	closed bool
}

func New(cfg Config) *Session {
	if cfg.Presenter == nil {
		cfg.Presenter = render.NopPresenter{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNopLogger()
	}
	if cfg.Welcome == nil {
		cfg.Welcome = canned.NewPool(canned.WelcomeMessages, nil)
	}
	if cfg.VerseIntro == nil {
		cfg.VerseIntro = canned.NewPool(canned.VerseIntroMessages, nil)
	}
	if cfg.Lookup == nil {
		cfg.Lookup = canned.NewPool(canned.LookupMessages, nil)
	}
	if cfg.Fallback == nil {
		cfg.Fallback = canned.NewPool(canned.FallbackMessages, nil)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:           uuid.NewString(),
		gateway:      cfg.Gateway,
		presenter:    cfg.Presenter,
		insights:     cfg.Insights,
		logger:       cfg.Logger,
		pipeline:     render.NewPipeline(cfg.Presenter, cfg.RevealInterval),
		history:      conversation.NewStore(),
		options:      cfg.Options,
		welcomeDelay: cfg.WelcomeDelay,
		welcome:      cfg.Welcome,
		verseIntro:   cfg.VerseIntro,
		lookup:       cfg.Lookup,
		fallback:     cfg.Fallback,
		now:          cfg.Now,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (s *Session) ID() string {
	return s.id
}

// History returns the stored user and assistant turns.
func (s *Session) History() []llm.Message {
	return s.history.Turns()
}

// VerseContext returns a copy of the active verse, or nil.
func (s *Session) VerseContext() *verse.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verseLocked()
}

func (s *Session) verseLocked() *verse.Context {
	if s.verse == nil {
		return nil
	}
	c := *s.verse
	return &c
}

func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// SendMessage appends the user turn, asks the gateway once and renders the
// outcome. A gateway failure is rendered as an error entry, not returned.
// ErrBusy is returned while a previous send is still waiting for its result.
func (s *Session) SendMessage(ctx context.Context, text string) (*Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyPrompt
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.typing {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.typing = true
	messages := prompt.Compose(s.history.Turns(), text, s.verseLocked())
	userTurn := messages[len(messages)-1]
	if err := s.history.Append(userTurn); err != nil {
		s.typing = false
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	s.presenter.TurnAppended(userTurn)
	s.presenter.TypingChanged(true)
	defer s.setTyping(false)

	res, err := s.gateway.Complete(ctx, messages, s.options...)
	if err != nil {
		s.logger.Warn(module, "rendering failed completion", map[string]interface{}{
			"session_id": s.id,
			"error":      err.Error(),
		})
		res = gateway.Failed(err, s.fallback.Next(), s.now())
	}

	entry, done := s.pipeline.Render(s.ctx, res)
	if res.Success {
		assistant := llm.Message{Role: llm.RoleAssistant, Content: res.Message}
		if err := s.history.Append(assistant); err != nil {
			return nil, err
		}
		s.presenter.TurnAppended(assistant)
	}

	return &Reply{Result: res, Entry: entry, Done: done}, nil
}

func (s *Session) setTyping(typing bool) {
	s.mu.Lock()
	s.typing = typing
	s.mu.Unlock()
	s.presenter.TypingChanged(typing)
}

// SetVerseContext replaces the active verse. Past turns keep the verse they
// were composed with.
func (s *Session) SetVerseContext(vc verse.Context) error {
	if err := vc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.verse = &vc
	s.mu.Unlock()

	s.presenter.Notify("Now discussing " + vc.String())
	return nil
}

// SelectVerse sets the verse and reveals a canned introduction to it.
func (s *Session) SelectVerse(vc verse.Context) (*Reply, error) {
	if err := s.SetVerseContext(vc); err != nil {
		return nil, err
	}
	return s.showCanned(s.verseIntro, vc.String())
}

// LookUpReference follows a reference marker such as "1 John 4:9".
func (s *Session) LookUpReference(label string) (*Reply, error) {
	ref, err := reference.Parse(label)
	if err != nil {
		return nil, err
	}
	if err := s.SetVerseContext(ref.Context()); err != nil {
		return nil, err
	}
	return s.showCanned(s.lookup, ref.Label)
}

// SelectTopic sends the prompt of a study topic.
func (s *Session) SelectTopic(ctx context.Context, title string) (*Reply, error) {
	t, err := topic.Find(title)
	if err != nil {
		return nil, err
	}
	return s.SendMessage(ctx, t.Prompt())
}

// Welcome reveals a greeting after the configured delay.
func (s *Session) Welcome(ctx context.Context) (*Reply, error) {
	if s.welcomeDelay > 0 {
		timer := time.NewTimer(s.welcomeDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.ctx.Done():
			return nil, ErrClosed
		case <-timer.C:
		}
	}
	return s.showCanned(s.welcome, "")
}

func (s *Session) showCanned(pool *canned.Pool, ref string) (*Reply, error) {
	if s.isClosed() {
		return nil, ErrClosed
	}
	text := canned.Fill(pool.Next(), map[string]string{canned.VarReference: ref})
	entry, done := s.pipeline.Show(s.ctx, text)
	return &Reply{
		Result: &gateway.Result{Success: true, Message: text, Timestamp: s.now().UTC().Format(gateway.TimestampLayout)},
		Entry:  entry,
		Done:   done,
	}, nil
}

// Save stores a rendered entry as an insight tagged with the verse active now.
func (s *Session) Save(ctx context.Context, entryID string) (insight.Insight, error) {
	if s.insights == nil {
		return insight.Insight{}, errors.New("insight storage is not configured")
	}

	stored, err := s.pipeline.Save(ctx, entryID, s.VerseContext(), s.now(), s.insights)
	if err != nil {
		if !errors.Is(err, render.ErrAlreadySaved) {
			s.logger.Error(module, "failed to save insight", map[string]interface{}{
				"session_id": s.id,
				"entry_id":   entryID,
				"error":      err.Error(),
			})
		}
		return insight.Insight{}, err
	}

	s.presenter.Notify(SavedNotice)
	return stored, nil
}

// Reset clears the conversation. The verse context is kept.
func (s *Session) Reset() {
	s.history.Reset()
}

// Wait blocks until every reveal has finished.
func (s *Session) Wait() {
	s.pipeline.Wait()
}

// Close stops every reveal still running. Calling it again is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.pipeline.Close()
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
