package service

import (
	"context"
	"errors"
	"time"

	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/internal/repository/memory"
	"niv-scholar-be/internal/websocket"
	"niv-scholar-be/pkg/llm"
	"niv-scholar-be/pkg/scholar/gateway"
	"niv-scholar-be/pkg/scholar/render"
	"niv-scholar-be/pkg/scholar/session"
)

var ErrVerseRequired = errors.New("verse is required")

type SessionOptions struct {
	RevealInterval time.Duration
	WelcomeDelay   time.Duration
	LLMOptions     []llm.Option
}

type ISessionService interface {
	// Open starts a session for a new websocket connection and greets it.
	Open(clientID string, presenter render.Presenter) (websocket.Dispatcher, error)
	Active() int
}

type sessionService struct {
	completer gateway.Completer
	insights  IInsightService
	repo      *memory.SessionRepository
	opts      SessionOptions
	logger    logger.ILogger
}

func NewSessionService(
	completer gateway.Completer,
	insights IInsightService,
	repo *memory.SessionRepository,
	opts SessionOptions,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		completer: completer,
		insights:  insights,
		repo:      repo,
		opts:      opts,
		logger:    log,
	}
}

func (s *sessionService) Open(clientID string, presenter render.Presenter) (websocket.Dispatcher, error) {
	sess := session.New(session.Config{
		Gateway:        s.completer,
		Presenter:      presenter,
		Insights:       s.insights.Saver(clientID),
		Logger:         s.logger,
		RevealInterval: s.opts.RevealInterval,
		WelcomeDelay:   s.opts.WelcomeDelay,
		Options:        s.opts.LLMOptions,
	})
	s.repo.Save(sess)

	s.logger.Info("SESSION", "Session opened", map[string]interface{}{
		"session_id": sess.ID(),
		"client_id":  clientID,
	})

	go func() {
		if _, err := sess.Welcome(context.Background()); err != nil && !errors.Is(err, session.ErrClosed) {
			s.logger.Warn("SESSION", "Welcome failed", map[string]interface{}{"session_id": sess.ID(), "error": err.Error()})
		}
	}()

	return &sessionConn{svc: s, id: sess.ID()}, nil
}

func (s *sessionService) Active() int {
	return s.repo.Count()
}

// sessionConn routes one connection's frames to its session.
type sessionConn struct {
	svc *sessionService
	id  string
}

func (c *sessionConn) Dispatch(ctx context.Context, frame dto.WSInbound) error {
	sess, ok := c.svc.repo.Get(c.id)
	if !ok {
		return session.ErrClosed
	}

	var err error
	switch frame.Type {
	case dto.FrameSend:
		_, err = sess.SendMessage(ctx, frame.Prompt)
	case dto.FrameSelectVerse:
		if frame.Verse == nil {
			return ErrVerseRequired
		}
		_, err = sess.SelectVerse(*frame.Verse)
	case dto.FrameLookup:
		_, err = sess.LookUpReference(frame.Reference)
	case dto.FrameTopic:
		_, err = sess.SelectTopic(ctx, frame.Topic)
	case dto.FrameSave:
		_, err = sess.Save(ctx, frame.EntryID)
	case dto.FrameReset:
		sess.Reset()
	default:
		err = errors.New("unsupported frame type: " + frame.Type)
	}
	return err
}

func (c *sessionConn) Close() {
	if sess, ok := c.svc.repo.Get(c.id); ok {
		c.svc.repo.Delete(c.id)
		sess.Close()
	}
	c.svc.logger.Info("SESSION", "Session closed", map[string]interface{}{"session_id": c.id})
}
