package service

import (
	"context"
	"encoding/json"
	"time"

	"niv-scholar-be/internal/dto"
	"niv-scholar-be/internal/pkg/logger"
	"niv-scholar-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Notifier pushes a frame to every open connection of a browser client.
type Notifier interface {
	Send(clientID string, frame dto.WSOutbound)
}

// EventForwarder republishes bus events outside the process.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	notifier   Notifier
	forwarder  EventForwarder
	logger     logger.ILogger
}

// NewConsumerService fans insight-saved events out to the client's open tabs
// and, when forwarder is non-nil, to the external bus.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	notifier Notifier,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		notifier:   notifier,
		forwarder:  forwarder,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.InsightSavedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack()
		return
	}

	cs.notifier.Send(payload.ClientID, dto.WSOutbound{Type: dto.FrameNotebookUpdated, Data: payload})

	if cs.forwarder != nil {
		var data map[string]interface{}
		_ = json.Unmarshal(msg.Payload, &data)
		evt := events.BaseEvent{Type: events.TypeInsightSaved, Data: data, OccurredAt: time.Now()}
		if err := cs.forwarder.Publish(ctx, evt); err != nil {
			cs.logger.Warn("CONSUMER", "Failed to forward event", map[string]interface{}{
				"insight_id": payload.InsightID,
				"error":      err.Error(),
			})
		}
	}

	cs.logger.Info("CONSUMER", "Insight event delivered", map[string]interface{}{
		"client_id":  payload.ClientID,
		"insight_id": payload.InsightID,
	})
	msg.Ack()
}
