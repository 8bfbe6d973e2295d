package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"gohaz/internal/config"
	"gohaz/internal/container"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to wire dependencies: %v", err)
	}
	defer c.Close()

	addr := ":" + cfg.Server.Port
	c.Logger.Info("[API] hazard service listening on %s", addr)
	if err := http.ListenAndServe(addr, c.Server.Handler()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
