package service

import (
	"context"
	"encoding/json"
	"time"

	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/pkg/events"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/render"
	"niv-scholar-be/pkg/storage"
)

type IInsightService interface {
	List(ctx context.Context, clientID string) ([]insight.Insight, error)
	Save(ctx context.Context, clientID string, req *dto.SaveInsightRequest) (*insight.Insight, error)
	// Saver persists to clientID's notebook; sessions save through it.
	Saver(clientID string) render.Saver
}

type insightService struct {
	storage   storage.Storage
	publisher IPublisherService
	logger    logger.ILogger
	now       func() time.Time
}

func NewInsightService(s storage.Storage, publisher IPublisherService, log logger.ILogger) IInsightService {
	return &insightService{
		storage:   s,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *insightService) store(clientID string) *insight.Store {
	return insight.NewStore(storage.WithPrefix(s.storage, clientID))
}

func (s *insightService) List(ctx context.Context, clientID string) ([]insight.Insight, error) {
	return s.store(clientID).LoadAll(ctx)
}

func (s *insightService) Save(ctx context.Context, clientID string, req *dto.SaveInsightRequest) (*insight.Insight, error) {
	stored, err := s.Saver(clientID).Save(ctx, insight.New(req.Content, req.VerseContext, s.now()))
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *insightService) Saver(clientID string) render.Saver {
	return &clientSaver{svc: s, clientID: clientID}
}

type clientSaver struct {
	svc      *insightService
	clientID string
}

func (c *clientSaver) Save(ctx context.Context, ins insight.Insight) (insight.Insight, error) {
	stored, err := c.svc.store(c.clientID).Save(ctx, ins)
	if err != nil {
		return insight.Insight{}, err
	}

	c.svc.logger.Info("INSIGHT", "Insight saved", map[string]interface{}{
		"client_id":  c.clientID,
		"insight_id": stored.ID,
	})
	c.svc.announce(ctx, c.clientID, stored)
	return stored, nil
}

// announce is best effort; the insight is already stored.
func (s *insightService) announce(ctx context.Context, clientID string, ins insight.Insight) {
	if s.publisher == nil {
		return
	}
	evt := events.NewInsightSaved(clientID, ins, s.now())
	payload, err := json.Marshal(evt.Payload())
	if err == nil {
		err = s.publisher.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Warn("INSIGHT", "Failed to publish insight event", map[string]interface{}{
			"insight_id": ins.ID,
			"error":      err.Error(),
		})
	}
}
