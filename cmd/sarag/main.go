package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Filichkin/SA-RAG/internal/app"
	"github.com/Filichkin/SA-RAG/internal/config"
)

func main() {
	// .env is optional; secrets may come from the real environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
