package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// StoryEventsExchange is the fanout exchange carrying story social events.
const StoryEventsExchange = "story_events"

// StoryEventPublisher defines the interface for publishing story social events.
type StoryEventPublisher interface {
	PublishStoryEvent(ctx context.Context, event StoryEvent) error
}

// rabbitMQPublisher implements StoryEventPublisher for RabbitMQ.
type rabbitMQPublisher struct {
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// Compile-time check
var _ StoryEventPublisher = (*rabbitMQPublisher)(nil)

// NewRabbitMQStoryEventPublisher opens a channel and declares the story
// events fanout exchange. The channel is owned by the publisher until the
// connection closes.
func NewRabbitMQStoryEventPublisher(conn *amqp.Connection, logger *zap.Logger) (StoryEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("story event publisher: failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		StoryEventsExchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("story event publisher: failed to declare exchange %q: %w", StoryEventsExchange, err)
	}

	return &rabbitMQPublisher{
		channel:  ch,
		exchange: StoryEventsExchange,
		logger:   logger.Named("StoryEventPublisher"),
	}, nil
}

// PublishStoryEvent marshals and publishes the event with a short retry loop.
func (p *rabbitMQPublisher) PublishStoryEvent(ctx context.Context, event StoryEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal story event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logFields := []zap.Field{
		zap.String("eventType", string(event.EventType)),
		zap.String("storyID", event.StoryID),
	}

	for attempt := 1; attempt <= 3; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			p.exchange,
			"",    // routing key (fanout ignores it)
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        "storyweaver-server",
			},
		)
		if err == nil {
			p.logger.Debug("Story event published", append(logFields, zap.Int("attempt", attempt))...)
			return nil
		}
		p.logger.Warn("Failed to publish story event", append(logFields, zap.Int("attempt", attempt), zap.Error(err))...)
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	return fmt.Errorf("failed to publish story event after retries: %w", err)
}
