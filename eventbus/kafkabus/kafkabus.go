package kafkabus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"portfolio-api/eventbus"
	"portfolio-api/internal/logger"
)

// KafkaEventBus implements eventbus.EventBus on confluent-kafka-go.
type KafkaEventBus struct {
	Producer *kafka.Producer
	Brokers  string
}

var _ eventbus.EventBus = (*KafkaEventBus)(nil)

func NewKafkaEventBus(brokers string) (*KafkaEventBus, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": brokers,
		"acks":              "all",
		"retries":           5,
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	// delivery reports for messages produced without a delivery channel
	go func() {
		for e := range p.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					logger.Log.Errorf("kafka delivery failed %v: %v", ev.TopicPartition, ev.TopicPartition.Error)
				}
			case kafka.Error:
				logger.Log.Errorf("kafka error: %v", ev)
			}
		}
	}()

	return &KafkaEventBus{
		Producer: p,
		Brokers:  brokers,
	}, nil
}

// Close flushes for up to 5s and closes the producer.
func (k *KafkaEventBus) Close() {
	if k.Producer == nil {
		return
	}
	if remaining := k.Producer.Flush(5000); remaining > 0 {
		logger.Log.Warnf("%d kafka messages still queued after flush", remaining)
	}
	k.Producer.Close()
	logger.Log.Info("kafka producer closed")
}

// Publish produces event to topic and waits for its delivery report.
func (k *KafkaEventBus) Publish(ctx context.Context, topic string, event eventbus.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)

	err = k.Producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          data,
		Key:            []byte(event.ID),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver to %s: %w", topic, m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	return nil
}

func (k *KafkaEventBus) newConsumer(groupID string) (*kafka.Consumer, error) {
	return kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":             k.Brokers,
		"group.id":                      groupID,
		"auto.offset.reset":             "earliest",
		"enable.auto.commit":            false,
		"partition.assignment.strategy": "range",
	})
}

// Subscribe consumes the base topic. A failing handler sends the event to the next
// retry topic, or to the DLQ once RetryDelays is exhausted. Offsets are committed
// only after the event was handled or rescheduled.
func (k *KafkaEventBus) Subscribe(ctx context.Context, groupID string, topic eventbus.Topic, handler eventbus.EventHandler) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("create kafka consumer: %w", err)
	}
	defer c.Close()

	if err := c.SubscribeTopics([]string{topic.Base()}, nil); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic.Base(), err)
	}
	logger.Log.Infof("consumer %s subscribed to %s", groupID, topic.Base())

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("consumer stopping")
			return ctx.Err()
		default:
		}

		msg, err := c.ReadMessage(100 * time.Millisecond)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) && kerr.IsFatal() {
				return fmt.Errorf("consumer fatal error: %w", err)
			}
			continue
		}

		var evt eventbus.Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Log.Errorf("bad event payload on %s: %v; skipping", *msg.TopicPartition.Topic, err)
			_, _ = c.CommitMessage(msg)
			continue
		}
		if evt.MaxRetry <= 0 || evt.MaxRetry > len(eventbus.RetryDelays) {
			evt.MaxRetry = len(eventbus.RetryDelays)
		}

		if err := handler(ctx, evt); err != nil {
			if scheduleErr := k.reschedule(ctx, topic, evt, err); scheduleErr != nil {
				logger.Log.Errorf("%v: %v; offset not committed", eventbus.ErrRetryScheduleFailed, scheduleErr)
				continue
			}
		}

		if _, err := c.CommitMessage(msg); err != nil {
			logger.Log.Errorf("commit offset: %v", err)
		}
	}
}

func (k *KafkaEventBus) reschedule(ctx context.Context, topic eventbus.Topic, evt eventbus.Event, cause error) error {
	evt.LastError = cause.Error()
	next := evt.Retry + 1
	retryTopic, err := topic.GetRetryTopic(next)
	if next > evt.MaxRetry || errors.Is(err, eventbus.ErrMaxRetryExceeded) {
		logger.Log.Errorf("event %s exhausted retries, sending to %s: %v", evt.ID, topic.DLQ(), cause)
		return k.Publish(ctx, topic.DLQ(), evt)
	}
	if err != nil {
		return err
	}
	evt.Retry = next
	logger.Log.Warnf("event %s failed, retry %d/%d scheduled on %s", evt.ID, evt.Retry, evt.MaxRetry, retryTopic)
	return k.Publish(ctx, retryTopic, evt)
}

// StartRetryReinjector consumes every retry topic of topic and republishes events
// to the base topic once their delay has elapsed.
func (k *KafkaEventBus) StartRetryReinjector(ctx context.Context, groupID string, topic eventbus.Topic) error {
	c, err := k.newConsumer(groupID)
	if err != nil {
		return fmt.Errorf("create retry consumer: %w", err)
	}
	defer c.Close()

	retryTopics := topic.GetRetryTopics()
	if err := c.SubscribeTopics(retryTopics, nil); err != nil {
		return fmt.Errorf("subscribe retry topics: %w", err)
	}
	logger.Log.Infof("retry reinjector %s subscribed to %s", groupID, strings.Join(retryTopics, ", "))

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("retry reinjector stopping")
			return ctx.Err()
		default:
		}

		msg, err := c.ReadMessage(100 * time.Millisecond)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) {
				if kerr.Code() == kafka.ErrTimedOut {
					continue
				}
				if kerr.IsFatal() {
					return fmt.Errorf("retry reinjector fatal error: %w", err)
				}
			}
			logger.Log.Errorf("retry reinjector read: %v", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		topicName := *msg.TopicPartition.Topic
		delay, ok := eventbus.ParseRetryDelayFromTopicName(topicName)
		if !ok {
			logger.Log.Errorf("unparseable retry topic %s; skipping", topicName)
			_, _ = c.CommitMessage(msg)
			continue
		}

		if wait := time.Until(msg.Timestamp.Add(delay)); wait > 0 {
			// not due yet: rewind so the message is read again
			time.Sleep(min(max(wait, 50*time.Millisecond), 500*time.Millisecond))
			if err := c.Seek(msg.TopicPartition, 0); err != nil {
				logger.Log.Errorf("seek %s: %v", topicName, err)
			}
			continue
		}

		var evt eventbus.Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Log.Errorf("bad event payload on %s: %v; skipping", topicName, err)
			_, _ = c.CommitMessage(msg)
			continue
		}

		logger.Log.Infof("reinjecting event %s from %s into %s (retry %d)", evt.ID, topicName, topic.Base(), evt.Retry)
		if err := k.Publish(ctx, topic.Base(), evt); err != nil {
			logger.Log.Errorf("reinject event %s: %v; offset not committed", evt.ID, err)
			continue
		}
		if _, err := c.CommitMessage(msg); err != nil {
			logger.Log.Errorf("commit after reinject: %v", err)
		}
	}
}
