package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestPublisher(t *testing.T) (*Publisher, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return NewPublisher(client), client
}

func TestPublish_DeliversToChannel(t *testing.T) {
	publisher, client := setupTestPublisher(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, domain.ChannelVisitThresholdReached)
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	delivered := publisher.Publish(ctx, domain.VisitThresholdReachedEvent{
		URLID:      42,
		ShortCode:  "abc123",
		VisitCount: 100,
		OwnerID:    7,
	})
	assert.True(t, delivered)

	select {
	case msg := <-sub.Channel():
		var event domain.VisitThresholdReachedEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, int64(42), event.URLID)
		assert.Equal(t, "abc123", event.ShortCode)
		assert.Equal(t, int64(100), event.VisitCount)
	case <-time.After(time.Second):
		t.Fatal("expected a message on the channel")
	}
}

func TestPublish_EachEventUsesItsOwnChannel(t *testing.T) {
	assert.Equal(t, "url_created", domain.URLCreatedEvent{}.Channel())
	assert.Equal(t, "visit_threshold_reached", domain.VisitThresholdReachedEvent{}.Channel())
	assert.Equal(t, "url_expiring_soon", domain.URLExpiringSoonEvent{}.Channel())
}

func TestPublish_AbsorbsTransportFault(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	mr.Close()
	t.Cleanup(func() { client.Close() })

	publisher := NewPublisher(client)
	delivered := publisher.Publish(context.Background(), domain.URLCreatedEvent{URLID: 1, ShortCode: "abc123"})

	assert.False(t, delivered, "a transport fault must degrade to delivered=false, never an error")
}
