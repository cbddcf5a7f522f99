package messaging

import (
	"context"
	"log"
	"sync"
	"time"

	"complaint-portal/internal/repository"
)

const (
	workerInterval     = 1 * time.Second
	batchSize          = 50
	cleanupInterval    = 1 * time.Hour
	publishedRetention = 24 * time.Hour
)

type OutboxStore interface {
	DrainPending(ctx context.Context, limit int, publish func(repository.OutboxMessage) error) (int, error)
	DeletePublished(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Publisher interface {
	Publish(ctx context.Context, messageID, routingKey string, body []byte) error
}

// OutboxWorker moves committed events from the outbox table to the broker.
type OutboxWorker struct {
	outbox    OutboxStore
	publisher Publisher
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewOutboxWorker creates a new OutboxWorker
func NewOutboxWorker(outbox OutboxStore, publisher Publisher) *OutboxWorker {
	return &OutboxWorker{
		outbox:    outbox,
		publisher: publisher,
		done:      make(chan struct{}),
	}
}

// Start begins the outbox worker
func (w *OutboxWorker) Start() {
	w.wg.Add(2)
	go w.loop(workerInterval, w.ProcessPending)
	go w.loop(cleanupInterval, w.Cleanup)
	log.Println("outbox: started")
}

func (w *OutboxWorker) loop(every time.Duration, fn func(context.Context)) {
	defer w.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			fn(context.Background())
		}
	}
}

// ProcessPending publishes one batch of pending messages.
func (w *OutboxWorker) ProcessPending(ctx context.Context) {
	_, err := w.outbox.DrainPending(ctx, batchSize, func(m repository.OutboxMessage) error {
		if err := w.publisher.Publish(ctx, m.ID.String(), m.RoutingKey, m.Payload); err != nil {
			log.Printf("outbox: publish %s: %v", m.ID, err)
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("outbox: drain: %v", err)
	}
}

// Cleanup deletes published messages past their retention.
func (w *OutboxWorker) Cleanup(ctx context.Context) {
	deleted, err := w.outbox.DeletePublished(ctx, publishedRetention)
	if err != nil {
		log.Printf("outbox: cleanup: %v", err)
	} else if deleted > 0 {
		log.Printf("outbox: cleaned %d old messages", deleted)
	}
}

// Stop stops the outbox worker and waits for both loops to exit
func (w *OutboxWorker) Stop() {
	close(w.done)
	w.wg.Wait()
	log.Println("outbox: stopped")
}
