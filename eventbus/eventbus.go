package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RetryDelays lists the fixed delay per retry attempt (1-based).
var RetryDelays = []time.Duration{
	10 * time.Second,
	30 * time.Second,
	1 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// Topic derives the retry and DLQ topic names from a base name.
type Topic struct {
	base string
}

func NewTopic(base string) Topic {
	return Topic{base: base}
}

func (t Topic) Base() string {
	return t.base
}

// DLQ returns the dead-letter topic, e.g. portfolio.contact.events.dlq.
func (t Topic) DLQ() string {
	return t.base + ".dlq"
}

// GetRetryTopics returns every retry topic name in attempt order.
func (t Topic) GetRetryTopics() []string {
	topics := make([]string, len(RetryDelays))
	for i := range RetryDelays {
		topics[i] = fmt.Sprintf("%s.retry.%d", t.base, i+1)
	}
	return topics
}

// GetRetryTopic returns the topic for the given retry attempt (1-based).
func (t Topic) GetRetryTopic(retryCount int) (string, error) {
	if retryCount <= 0 || retryCount > len(RetryDelays) {
		return "", ErrMaxRetryExceeded
	}
	return fmt.Sprintf("%s.retry.%d", t.base, retryCount), nil
}

// Event is the JSON envelope written to Kafka.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
	Retry      int             `json:"retry"`
	MaxRetry   int             `json:"max_retry"`
	LastError  string          `json:"last_error,omitempty"`
}

type EventHandler func(ctx context.Context, event Event) error

// Publisher is the write side used by the API.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

// EventBus adds consumption on top of Publisher.
type EventBus interface {
	Publisher
	// Subscribe runs handler for each event on the base topic, routing failures
	// to retry topics and finally the DLQ.
	Subscribe(ctx context.Context, groupID string, topic Topic, handler EventHandler) error
	// StartRetryReinjector moves due events from retry topics back to the base topic.
	StartRetryReinjector(ctx context.Context, groupID string, topic Topic) error
	Close()
}

// Noop discards every event. It is used when events are disabled.
type Noop struct{}

func (Noop) Publish(context.Context, string, Event) error { return nil }

var ErrMaxRetryExceeded = errors.New("max retry exceeded")

var ErrRetryScheduleFailed = errors.New("failed to schedule retry or DLQ publish")
