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
	"complaint-portal/internal/auth"
	"complaint-portal/internal/database"
	"complaint-portal/internal/handler"
	"complaint-portal/internal/messaging"
	"complaint-portal/internal/repository"
	"complaint-portal/internal/service"
)

func main() {
	cfg, err := config.LoadConfig("config/config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sqlDB, db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Connected to database")

	rmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()
	log.Println("Connected to RabbitMQ (with DLQ configuration)")

	sseHub := messaging.NewSSEHub()
	go sseHub.Run()

	notificationRepo := repository.NewNotificationRepository(sqlDB)

	consumer := messaging.NewNotificationConsumer(rmq, notificationRepo, sseHub)
	consumer.Start()
	log.Println("Notification consumers started")

	router := handler.NewNotificationRouter(handler.NotificationDeps{
		Tokens:        auth.NewTokenIssuer(cfg.JWT),
		Roles:         service.NewRoleResolver(repository.NewOfficialRepository(db), repository.NewAdminRepository(db)),
		Notifications: service.NewNotificationService(notificationRepo),
		Hub:           sseHub,
		CORSOrigins:   cfg.Server.CORSOrigins,
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Server.Port), Handler: router}
	go func() {
		log.Printf("Notification service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received...")

	consumer.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	sseHub.Stop()
	log.Println("Notification service stopped gracefully")
}
