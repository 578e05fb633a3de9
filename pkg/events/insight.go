package events

import (
	"time"

	"niv-scholar-be/pkg/scholar/insight"
)

const TypeInsightSaved = "INSIGHT_SAVED"

// NewInsightSaved describes a notebook write by one browser client.
func NewInsightSaved(clientID string, ins insight.Insight, at time.Time) BaseEvent {
	data := map[string]interface{}{
		"client_id":  clientID,
		"insight_id": ins.ID,
		"content":    ins.Content,
		"timestamp":  ins.Timestamp,
	}
	if ins.VerseContext != nil {
		data["verse"] = ins.VerseContext.String()
	}
	return BaseEvent{Type: TypeInsightSaved, Data: data, OccurredAt: at}
}
