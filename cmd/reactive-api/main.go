package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complaint-portal/config"
	"complaint-portal/internal/attachment"
	"complaint-portal/internal/auth"
	"complaint-portal/internal/document"
	"complaint-portal/internal/reactive"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig("config/config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	client, store, err := document.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	log.Println("Connected to MongoDB")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	blobs, err := attachment.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to open upload dir: %v", err)
	}
	attachments := attachment.NewService(
		attachment.NewTickets(rdb, cfg.Uploads.TicketTTL()),
		blobs,
		cfg.Uploads.PublicBaseURL,
		cfg.Uploads.MaxBytes,
	)

	tokens := auth.NewTokenIssuer(cfg.JWT)
	procs := reactive.NewAPI(store, tokens, attachments).Procedures()
	changes := reactive.NewChanges(rdb)
	live := reactive.NewLiveServer(procs, store)

	pubsub, err := changes.Subscribe(ctx)
	if err != nil {
		log.Fatalf("Failed to subscribe to changes: %v", err)
	}
	defer pubsub.Close()
	go live.Run(ctx, pubsub.Channel())

	router := reactive.NewRouter(reactive.Deps{
		Procedures:  procs,
		Tokens:      tokens,
		Roles:       store,
		Changes:     changes,
		Live:        live,
		Attachments: attachments,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Server.Port), Handler: router}
	go func() {
		log.Printf("Reactive API starting on %s (%d procedures)", srv.Addr, len(procs))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received...")

	stop()
	live.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	log.Println("Reactive API stopped")
}
