package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"portfolio-api/config"
	"portfolio-api/eventbus"
	"portfolio-api/eventbus/kafkabus"
	"portfolio-api/internal/logger"
	"portfolio-api/mailer"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokers := cfg.Events.Brokers
	for _, t := range eventbus.AllTopics {
		if err := kafkabus.EnsureTopics(brokers, t, 3); err != nil {
			logger.Log.Errorf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
		}
	}

	bus, err := kafkabus.NewKafkaEventBus(brokers)
	if err != nil {
		logger.Log.Errorf("failed to create event bus: %v", err)
		os.Exit(1)
	}
	defer bus.Close()

	owner := cfg.SMTP.To
	if owner == "" {
		owner = cfg.SMTP.From
	}
	n := NewNotifier(mailer.New(cfg.SMTP), owner)
	groupID := cfg.Events.GroupID + "-notifier"

	logger.Log.Info("starting notifier service with eventbus...")

	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
				logger.Log.Errorf("%s consumer stopped: %v", name, err)
			}
		}()
	}
	run("contact", func() error {
		return eventbus.SubscribeJSON(ctx, bus, groupID, eventbus.TopicContactEvents, n.HandleContactSubmitted)
	})
	run("newsletter", func() error {
		return eventbus.SubscribeJSON(ctx, bus, groupID, eventbus.TopicNewsletterEvents, n.HandleNewsletterSubscribed)
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down notifier service...")

	cancel()
	wg.Wait()

	logger.Log.Info("notifier service stopped")
}
