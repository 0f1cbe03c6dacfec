package main

import (
	"log"

	"github.com/deadloked8999/e-bar/internal/app"
	"github.com/deadloked8999/e-bar/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
