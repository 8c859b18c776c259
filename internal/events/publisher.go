// Package events announces domain events to downstream subscribers over
// Redis pub/sub. Delivery is fire-and-forget: no acknowledgement, no retry,
// no persistence of missed messages.
package events

import (
	"context"
	"encoding/json"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/Javets70/url-shortner-backend/internal/logger"
	"github.com/Javets70/url-shortner-backend/internal/metrics"
	"github.com/redis/go-redis/v9"
)

type Publisher struct {
	client *redis.Client
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serializes the event and sends it to its channel. Transport faults
// never propagate to the caller; notification delivery is advisory and stays
// off the critical path of creates, redirects and visit recording.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) bool {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.FromContext(ctx).Warn("event publish skipped: marshal failed",
			"channel", event.Channel(), "error", err)
		metrics.EventsPublished.WithLabelValues(event.Channel(), "failed").Inc()
		return false
	}

	if err := p.client.Publish(ctx, event.Channel(), payload).Err(); err != nil {
		logger.FromContext(ctx).Warn("event publish failed",
			"channel", event.Channel(), "error", err)
		metrics.EventsPublished.WithLabelValues(event.Channel(), "failed").Inc()
		return false
	}

	metrics.EventsPublished.WithLabelValues(event.Channel(), "delivered").Inc()
	return true
}
