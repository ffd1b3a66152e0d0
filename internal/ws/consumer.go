package ws

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"storyweaver-server/internal/messaging"
)

// Consumer drains story events from the broker and pushes each one to the
// websocket connection of the story's owner.
type Consumer struct {
	conn        *amqp.Connection
	manager     *ConnectionManager
	queueName   string
	stopChannel chan struct{}
	logger      *zap.Logger
}

// NewConsumer creates a story event consumer.
func NewConsumer(conn *amqp.Connection, manager *ConnectionManager, queueName string, logger *zap.Logger) *Consumer {
	return &Consumer{
		conn:        conn,
		manager:     manager,
		queueName:   queueName,
		stopChannel: make(chan struct{}),
		logger:      logger.Named("StoryEventConsumer"),
	}
}

// StartConsuming declares the queue, binds it to the story events exchange
// and blocks delivering messages until Stop is called or the channel closes.
// Run it in its own goroutine.
func (c *Consumer) StartConsuming() error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open AMQP channel: %w", err)
	}
	defer ch.Close()

	// Exchange parameters must match the publisher's declaration.
	if err := ch.ExchangeDeclare(messaging.StoryEventsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %q: %w", messaging.StoryEventsExchange, err)
	}

	q, err := ch.QueueDeclare(c.queueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue %q: %w", c.queueName, err)
	}

	if err := ch.QueueBind(q.Name, "", messaging.StoryEventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %q: %w", q.Name, err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "storyweaver-ws-consumer", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Consumer started", zap.String("queue", q.Name))

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				c.logger.Warn("AMQP delivery channel closed")
				return nil
			}
			c.handleDelivery(d)

		case <-c.stopChannel:
			c.logger.Info("Consumer stop requested")
			return nil
		}
	}
}

func (c *Consumer) handleDelivery(d amqp.Delivery) {
	var event messaging.StoryEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		c.logger.Error("Failed to decode story event, dropping", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	// Owners are not notified about their own actions.
	if event.OwnerID == "" || event.OwnerID == event.ActorID {
		_ = d.Ack(false)
		return
	}

	if c.manager.SendToUser(event.OwnerID, d.Body) {
		c.logger.Debug("Event delivered",
			zap.String("eventType", string(event.EventType)),
			zap.String("ownerID", event.OwnerID),
		)
	}
	// Offline owners just miss the notification.
	_ = d.Ack(false)
}

// Stop shuts the consumer loop down.
func (c *Consumer) Stop() {
	close(c.stopChannel)
}
