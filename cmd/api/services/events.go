package services

import (
	"context"
	"time"

	"portfolio-api/eventbus"
	"portfolio-api/internal/logger"
	"portfolio-api/internal/trace"
)

// publishTimeout bounds how long a request waits for the broker.
var publishTimeout = 2 * time.Second

// publish emits a domain event. A failure is logged and never returned: the
// write it describes has already succeeded. The wait is cut off after
// publishTimeout and does not follow the caller's cancellation.
func publish(ctx context.Context, pub eventbus.Publisher, topic eventbus.Topic, eventType string, payload any) {
	if pub == nil {
		return
	}
	evt, err := eventbus.NewJSONEvent(eventType, payload, 0)
	if err == nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		err = pub.Publish(pctx, topic.Base(), evt)
		cancel()
	}
	if err != nil {
		logger.ErrorWithFields("failed to publish event", logger.Fields{
			"topic":      topic.Base(),
			"event_type": eventType,
			"request_id": trace.RequestIDFromContext(ctx),
			"error":      err.Error(),
		})
		return
	}
	logger.DebugWithFields("event published", logger.Fields{
		"topic":      topic.Base(),
		"event_type": eventType,
		"event_id":   evt.ID,
		"request_id": trace.RequestIDFromContext(ctx),
	})
}
