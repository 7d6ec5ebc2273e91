package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicNames(t *testing.T) {
	topic := NewTopic("portfolio.contact.events")

	assert.Equal(t, "portfolio.contact.events.dlq", topic.DLQ())
	retries := topic.GetRetryTopics()
	require.Len(t, retries, len(RetryDelays))
	assert.Equal(t, "portfolio.contact.events.retry.1", retries[0])

	name, err := topic.GetRetryTopic(2)
	require.NoError(t, err)
	assert.Equal(t, "portfolio.contact.events.retry.2", name)

	_, err = topic.GetRetryTopic(len(RetryDelays) + 1)
	assert.ErrorIs(t, err, ErrMaxRetryExceeded)
	_, err = topic.GetRetryTopic(0)
	assert.ErrorIs(t, err, ErrMaxRetryExceeded)
}

func TestRetryTopicsRoundTripThroughParser(t *testing.T) {
	for i, name := range TopicNewsletterEvents.GetRetryTopics() {
		d, ok := ParseRetryDelayFromTopicName(name)
		require.True(t, ok, name)
		assert.Equal(t, RetryDelays[i], d)
	}

	for _, bad := range []string{"x", "x.retry.", "x.retry.abc", "x.retry.0", "x.retry.99"} {
		_, ok := ParseRetryDelayFromTopicName(bad)
		assert.False(t, ok, bad)
	}
}

func TestNewJSONEventAndDecode(t *testing.T) {
	evt, err := NewJSONEvent(TypeContactSubmitted, ContactSubmitted{ID: "1", Name: "Ada"}, 0)
	require.NoError(t, err)

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, TypeContactSubmitted, evt.Type)
	assert.Equal(t, len(RetryDelays), evt.MaxRetry)
	assert.WithinDuration(t, time.Now(), evt.OccurredAt, time.Minute)

	got, err := DecodeJSON[ContactSubmitted](evt)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	_, err = DecodeJSON[ContactSubmitted](Event{Payload: []byte("{")})
	assert.Error(t, err)
}

type stubBus struct {
	Noop
	events []Event
}

func (s *stubBus) Subscribe(ctx context.Context, _ string, _ Topic, handler EventHandler) error {
	for _, e := range s.events {
		if err := handler(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubBus) StartRetryReinjector(context.Context, string, Topic) error { return nil }
func (s *stubBus) Close()                                                   {}

func TestSubscribeJSONDecodesPayload(t *testing.T) {
	evt, err := NewJSONEvent(TypeNewsletterSubscribed, NewsletterSubscribed{Email: "a@b.dev"}, 1)
	require.NoError(t, err)
	bus := &stubBus{events: []Event{evt}}

	var seen []string
	err = SubscribeJSON(context.Background(), bus, "g", TopicNewsletterEvents,
		func(_ context.Context, p NewsletterSubscribed, meta Event) error {
			seen = append(seen, p.Email+"/"+meta.Type)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.dev/newsletter.subscribed"}, seen)
}
