package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/cmd/api/router"
	"portfolio-api/cmd/api/services"
	"portfolio-api/config"
	"portfolio-api/db"
	"portfolio-api/docs"
	"portfolio-api/eventbus"
	"portfolio-api/eventbus/kafkabus"
	"portfolio-api/internal/logger"
	"portfolio-api/repositories"
)

// @title           Portfolio API
// @version         1.0
// @description     Blog posts, contact submissions and newsletter subscriptions for the portfolio site
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)
	docs.SwaggerInfo.BasePath = cfg.Server.BasePath

	// the connection is opened by the first request; a failure there is retried on the next one
	mongo := db.Default()

	var publisher eventbus.Publisher = eventbus.Noop{}
	if cfg.Events.Enabled {
		for _, t := range eventbus.AllTopics {
			if err := kafkabus.EnsureTopics(cfg.Events.Brokers, t, 3); err != nil {
				logger.Log.Warnf("failed to ensure eventbus topics for %s: %v", t.Base(), err)
			}
		}
		bus, err := kafkabus.NewKafkaEventBus(cfg.Events.Brokers)
		if err != nil {
			logger.Log.Errorf("failed to create event bus: %v", err)
			os.Exit(1)
		}
		defer bus.Close()
		publisher = bus
	}

	engine := router.New(router.Deps{
		Blog:       services.NewBlogService(repositories.NewBlogPostRepository(mongo)),
		Contact:    services.NewContactService(repositories.NewContactSubmissionRepository(mongo), publisher),
		Newsletter: services.NewNewsletterService(repositories.NewNewsletterSubscriberRepository(mongo), publisher),
		DB:         mongo,
		BasePath:   cfg.Server.BasePath,
		Feed:       cfg.Feed,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router.Handler(engine, cfg.CORS),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.InfoWithFields("api listening", logger.Fields{
			"addr":      cfg.Server.Addr,
			"base_path": cfg.Server.BasePath,
			"events":    cfg.Events.Enabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("http server error: %v", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Log.Info("received shutdown signal, shutting down api...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Errorf("http server shutdown: %v", err)
	}
	if err := mongo.Disconnect(ctx); err != nil {
		logger.Log.Errorf("mongo disconnect: %v", err)
	}
	logger.Log.Info("api stopped")
}
