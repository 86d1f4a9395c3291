package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mindwel-be/internal/config"
	"mindwel-be/internal/pkg/logger"
	"mindwel-be/pkg/events"
	"mindwel-be/pkg/nats"
)

// Audit worker: consumes handoff events from the NATS bus and writes them to
// the durable handoff log. Runs separately from the API so the audit trail
// survives API restarts and crashes.
func main() {
	cfg := config.Load()

	auditLog := logger.NewIsolatedLogger(cfg.App.HandoffLogFilePath)
	defer auditLog.Sync()

	subscriber, err := nats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer subscriber.Close()

	err = subscriber.Subscribe("events.HANDOFF_REQUESTED", "handoff-audit", func(ctx context.Context, event events.Event) error {
		auditLog.Info("HandoffAudit", "Handoff requested", event.Payload())
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	log.Println("Handoff audit worker running...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down audit worker")
}
