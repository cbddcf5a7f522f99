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
	"complaint-portal/internal/database"
	"complaint-portal/internal/handler"
	"complaint-portal/internal/messaging"
	"complaint-portal/internal/repository"
	"complaint-portal/internal/service"

	"github.com/redis/go-redis/v9"
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
	log.Println("Connected to RabbitMQ")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
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

	outboxRepo := repository.NewOutboxRepository(sqlDB)
	citizenRepo := repository.NewCitizenRepository(db)
	complaintRepo := repository.NewComplaintRepository(db, outboxRepo)
	categoryRepo := repository.NewCategoryRepository(db)
	officialRepo := repository.NewOfficialRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	worker := messaging.NewOutboxWorker(outboxRepo, rmq)
	worker.Start()
	log.Println("Outbox worker started")

	tokens := auth.NewTokenIssuer(cfg.JWT)
	router := handler.NewAPIRouter(handler.APIDeps{
		Tokens:      tokens,
		Roles:       service.NewRoleResolver(officialRepo, adminRepo),
		Citizens:    service.NewCitizenService(citizenRepo, tokens),
		Complaints:  service.NewComplaintService(complaintRepo),
		Admin:       service.NewAdminService(citizenRepo, categoryRepo, officialRepo, adminRepo),
		Attachments: attachments,
		Outbox:      outboxRepo,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Server.Port), Handler: router}
	go func() {
		log.Printf("Complaint API starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	worker.Stop()
	log.Println("Complaint API stopped")
}
