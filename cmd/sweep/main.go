package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Filichkin/SA-RAG/internal/app"
	"github.com/Filichkin/SA-RAG/internal/config"
)

// One-shot sweeper for expired two-factor codes, meant to run from cron.
// Rows past their TTL are dead weight only; correctness never depends on
// this running.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	container, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer container.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := container.AuthSvc.CleanupExpiredCodes(ctx)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}
	log.Printf("sweep: removed %d expired codes", removed)
}
