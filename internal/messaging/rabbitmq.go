// Package messaging carries complaint events from the outbox table to
// RabbitMQ and from RabbitMQ into citizen notifications.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"complaint-portal/config"
	"complaint-portal/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName    = "portal.complaints"
	DLXExchangeName = "portal.complaints.dlx"

	QueueComplaintCreated = "queue.complaint_created"
	QueueStatusUpdates    = "queue.status_updates"
	QueueResponses        = "queue.responses"

	reconnectDelay = 5 * time.Second
	publishTimeout = 5 * time.Second
	prefetchCount  = 10
	dlqMessageTTL  = int64(24 * time.Hour / time.Millisecond)
)

var errNoChannel = errors.New("channel not available")

type QueueConfig struct {
	QueueName     string
	RoutingKey    string
	DLQName       string
	DLQRoutingKey string
}

var QueueConfigs = []QueueConfig{
	{
		QueueName:     QueueComplaintCreated,
		RoutingKey:    model.RoutingKeyComplaintCreated,
		DLQName:       QueueComplaintCreated + ".dlq",
		DLQRoutingKey: "dlq.complaint_created",
	},
	{
		QueueName:     QueueStatusUpdates,
		RoutingKey:    model.RoutingKeyStatusUpdate,
		DLQName:       QueueStatusUpdates + ".dlq",
		DLQRoutingKey: "dlq.status_updates",
	},
	{
		QueueName:     QueueResponses,
		RoutingKey:    model.RoutingKeyResponseAdded,
		DLQName:       QueueResponses + ".dlq",
		DLQRoutingKey: "dlq.responses",
	},
}

// RabbitMQ owns one connection and channel and replaces both when the broker
// drops them. Publishers and consumers share it.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	url     string
	mu      sync.RWMutex
	done    chan struct{}
}

func NewRabbitMQ(cfg config.RabbitMQConfig) (*RabbitMQ, error) {
	rmq := &RabbitMQ{
		url:  cfg.URL(),
		done: make(chan struct{}),
	}

	if err := rmq.connect(); err != nil {
		return nil, err
	}

	go rmq.handleReconnect()

	return rmq, nil
}

func (r *RabbitMQ) connect() error {
	conn, err := amqp.Dial(r.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return err
	}

	r.conn = conn
	r.channel = ch
	log.Println("rabbitmq: connected")
	return nil
}

// declareTopology sets up the exchanges and every queue with its dead
// letter queue. Declarations are idempotent.
func declareTopology(ch *amqp.Channel) error {
	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	for _, name := range []string{ExchangeName, DLXExchangeName} {
		if err := ch.ExchangeDeclare(name, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("exchange declare %s: %w", name, err)
		}
	}

	for _, qc := range QueueConfigs {
		_, err := ch.QueueDeclare(qc.DLQName, true, false, false, false, amqp.Table{
			"x-message-ttl": dlqMessageTTL,
		})
		if err != nil {
			return fmt.Errorf("dlq declare %s: %w", qc.DLQName, err)
		}
		if err := ch.QueueBind(qc.DLQName, qc.DLQRoutingKey, DLXExchangeName, false, nil); err != nil {
			return fmt.Errorf("dlq bind %s: %w", qc.DLQName, err)
		}

		_, err = ch.QueueDeclare(qc.QueueName, true, false, false, false, amqp.Table{
			"x-dead-letter-exchange":    DLXExchangeName,
			"x-dead-letter-routing-key": qc.DLQRoutingKey,
		})
		if err != nil {
			return fmt.Errorf("queue declare %s: %w", qc.QueueName, err)
		}
		if err := ch.QueueBind(qc.QueueName, qc.RoutingKey, ExchangeName, false, nil); err != nil {
			return fmt.Errorf("bind %s->%s: %w", qc.QueueName, qc.RoutingKey, err)
		}
	}
	return nil
}

func (r *RabbitMQ) handleReconnect() {
	for {
		r.mu.RLock()
		closed := r.conn.NotifyClose(make(chan *amqp.Error, 1))
		r.mu.RUnlock()

		select {
		case <-r.done:
			return
		case err := <-closed:
			if err != nil {
				log.Printf("rabbitmq: disconnected: %v", err)
			}

			r.mu.Lock()
			for {
				select {
				case <-r.done:
					r.mu.Unlock()
					return
				default:
				}
				if err := r.connect(); err != nil {
					log.Printf("rabbitmq: reconnect failed: %v", err)
					time.Sleep(reconnectDelay)
					continue
				}
				break
			}
			r.mu.Unlock()
		}
	}
}

// Publish sends a persistent JSON message. messageID lets consumers drop
// redeliveries.
func (r *RabbitMQ) Publish(ctx context.Context, messageID, routingKey string, body []byte) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.channel == nil {
		return errNoChannel
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := r.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Body:         body,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (r *RabbitMQ) ConsumeQueue(queueName string) (<-chan amqp.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.channel == nil {
		return nil, errNoChannel
	}

	msgs, err := r.channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queueName, err)
	}
	return msgs, nil
}

func (r *RabbitMQ) Close() {
	close(r.done)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		r.conn.Close()
	}
	log.Println("rabbitmq: closed")
}
