package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"fitstream/internal/services"
	"fitstream/internal/tasks"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Worker started. Waiting for next tick...")

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down worker...")
		cancel()
	}()

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	// Run once at startup, then on every tick.
	sweepSubscriptions(ctx, db)

	for {
		select {
		case <-ticker.C:
			sweepSubscriptions(ctx, db)
		case <-ctx.Done():
			return
		}
	}
}

func sweepSubscriptions(ctx context.Context, db *gorm.DB) {
	log.Println("Checking for lapsed subscriptions...")

	count, err := tasks.ExpireLapsedSubscriptions(ctx, db)
	if err != nil {
		log.Printf("Error expiring lapsed subscriptions: %v", err)
		return
	}

	if count == 0 {
		log.Println("No lapsed subscriptions found.")
	}
}
