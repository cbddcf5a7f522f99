package messaging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"complaint-portal/internal/model"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	maxRetryAttempts = 3
	initialDelay     = 1 * time.Second
	maxDelay         = 30 * time.Second
	resubscribeDelay = 5 * time.Second
)

// NotificationStore persists notifications and remembers which broker
// messages were already handled.
type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	IsMessageProcessed(ctx context.Context, messageID string) (bool, error)
	MarkMessageProcessed(ctx context.Context, messageID string) error
}

// Notifier pushes a stored notification to live streams.
type Notifier interface {
	SendToUser(n *model.Notification)
}

type QueueSource interface {
	ConsumeQueue(queueName string) (<-chan amqp.Delivery, error)
}

type handlerFunc func(ctx context.Context, msg amqp.Delivery) error

// NotificationConsumer turns complaint events into citizen notifications.
type NotificationConsumer struct {
	source        QueueSource
	notifications NotificationStore
	notifier      Notifier
	done          chan struct{}
	wg            sync.WaitGroup
	now           func() time.Time
}

// NewNotificationConsumer creates a new NotificationConsumer
func NewNotificationConsumer(source QueueSource, notifications NotificationStore, notifier Notifier) *NotificationConsumer {
	return &NotificationConsumer{
		source:        source,
		notifications: notifications,
		notifier:      notifier,
		done:          make(chan struct{}),
		now:           time.Now,
	}
}

func (c *NotificationConsumer) Start() {
	queues := map[string]handlerFunc{
		QueueComplaintCreated: c.handleComplaintCreated,
		QueueStatusUpdates:    c.handleStatusUpdate,
		QueueResponses:        c.handleResponseAdded,
	}
	c.wg.Add(len(queues))
	for name, handler := range queues {
		go c.consumeQueue(name, handler)
	}
	log.Println("consumers started")
}

func (c *NotificationConsumer) consumeQueue(queueName string, handler handlerFunc) {
	defer c.wg.Done()

	for {
		select {
		case <-c.done:
			log.Printf("consumer %s: stopping", queueName)
			return
		default:
		}

		msgs, err := c.source.ConsumeQueue(queueName)
		if err != nil {
			log.Printf("consumer %s: %v, retrying in %v", queueName, err, resubscribeDelay)
			select {
			case <-c.done:
				return
			case <-time.After(resubscribeDelay):
			}
			continue
		}

		log.Printf("consumer %s: listening", queueName)
		c.processQueue(queueName, msgs, handler)
	}
}

func (c *NotificationConsumer) processQueue(queueName string, msgs <-chan amqp.Delivery, handler handlerFunc) {
	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Printf("consumer %s: channel closed, resubscribing", queueName)
				return
			}
			c.process(context.Background(), queueName, msg, handler)
		}
	}
}

// messageKey identifies a delivery for the processed-message table. Without a
// MessageId the whole body is hashed, since events for one complaint share a
// long common prefix.
func messageKey(msg amqp.Delivery) string {
	if msg.MessageId != "" {
		return msg.MessageId
	}
	sum := sha256.Sum256(msg.Body)
	return hex.EncodeToString(sum[:])
}

// process runs handler with backoff. Messages already handled are acked
// without side effects; messages that keep failing go to the dead letter
// queue.
func (c *NotificationConsumer) process(ctx context.Context, queueName string, msg amqp.Delivery, handler handlerFunc) {
	messageID := messageKey(msg)

	processed, err := c.notifications.IsMessageProcessed(ctx, messageID)
	if err != nil {
		log.Printf("%s: idempotency check failed: %v", queueName, err)
	}
	if processed {
		log.Printf("%s: %s already processed", queueName, messageID)
		msg.Ack(false)
		return
	}

	err = retry.Do(
		func() error { return handler(ctx, msg) },
		retry.Attempts(maxRetryAttempts),
		retry.Delay(initialDelay),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("%s: retry %d: %v", queueName, n+1, err)
		}),
	)
	if err != nil {
		log.Printf("%s: failed, sending to DLQ: %v", queueName, err)
		msg.Nack(false, false)
		return
	}

	if err := c.notifications.MarkMessageProcessed(ctx, messageID); err != nil {
		log.Printf("%s: mark processed failed: %v", queueName, err)
	}
	msg.Ack(false)
}

// deliver stores a notification for userID and pushes it to open streams.
// Malformed ids are dropped: retrying cannot fix them.
func (c *NotificationConsumer) deliver(ctx context.Context, userID, complaintID, title, message string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		log.Printf("notification: bad user id %q", userID)
		return nil
	}

	n := &model.Notification{
		ID:        uuid.New(),
		UserID:    uid,
		Title:     title,
		Message:   message,
		CreatedAt: c.now(),
	}
	if cid, err := uuid.Parse(complaintID); err == nil {
		n.ComplaintID = &cid
	}

	if err := c.notifications.Create(ctx, n); err != nil {
		return err
	}
	c.notifier.SendToUser(n)
	return nil
}

func (c *NotificationConsumer) handleComplaintCreated(ctx context.Context, msg amqp.Delivery) error {
	var created model.ComplaintCreatedMessage
	if err := json.Unmarshal(msg.Body, &created); err != nil {
		log.Printf("complaint_created: bad json: %v", err)
		return nil
	}

	log.Printf("complaint_created: %s in %s by %s", created.ComplaintID, created.Category, created.CitizenID)
	return nil
}

func (c *NotificationConsumer) handleStatusUpdate(ctx context.Context, msg amqp.Delivery) error {
	var update model.StatusUpdateMessage
	if err := json.Unmarshal(msg.Body, &update); err != nil {
		log.Printf("status_update: bad json: %v", err)
		return nil
	}

	return c.deliver(ctx, update.CitizenID, update.ComplaintID,
		"Complaint status updated",
		fmt.Sprintf("Your complaint %q is now %s", update.ComplaintTitle, update.NewStatus),
	)
}

func (c *NotificationConsumer) handleResponseAdded(ctx context.Context, msg amqp.Delivery) error {
	var added model.ResponseAddedMessage
	if err := json.Unmarshal(msg.Body, &added); err != nil {
		log.Printf("response_added: bad json: %v", err)
		return nil
	}

	// no notification for replying to your own complaint
	if added.ResponderID == added.CitizenID {
		return nil
	}

	title := "New response on your complaint"
	if added.IsOfficial {
		title = "Official response on your complaint"
	}
	return c.deliver(ctx, added.CitizenID, added.ComplaintID, title,
		fmt.Sprintf("%s responded to %q", added.ResponderName, added.ComplaintTitle),
	)
}

func (c *NotificationConsumer) Stop() {
	close(c.done)
	c.wg.Wait()
	log.Println("consumers stopped")
}
