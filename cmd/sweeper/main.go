// Command sweeper runs a single sweep cycle (expiry cleanup plus stale-term
// prefetch) and exits. Meant for cron or manual operation when the long-lived
// server's scheduler is disabled.
package main

import (
	"context"
	"log"
	"time"

	"job-scout/internal/app"
	"job-scout/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	c.Scheduler.RunOnce(ctx)
}
