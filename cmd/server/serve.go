package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/radyatamaa/myfuel-transaction-processor/docs"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/audit"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/cache"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/config"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/database"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/events"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/handlers"
	mW "github.com/radyatamaa/myfuel-transaction-processor/internal/middleware"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository/postgres"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/services"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.LoadProcessorConfig()

	db, err := database.InitDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if viper.GetBool("database.auto_migrate") {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisClient := database.InitRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer closePublisher()

	data := postgres.NewDataServices(db, cfg.LockWaitTimeout)
	lookup := cache.NewLookup(
		cache.NewRedisCache(redisClient, cfg.CacheKeyPrefix),
		data.Cards(),
		data.Organizations(),
		cfg.CardCacheTTL,
		cfg.OrganizationCacheTTL,
	)
	effects := services.NewSideEffectDispatcher(publisher, lookup, data.RejectionLogs(), cfg.SideEffectTimeout)
	processor := services.NewTransactionProcessor(data, lookup, effects, audit.NewAuditLogger(nil))
	webhookHandler := handlers.NewWebhookHandler(processor)

	port := viper.GetString("server.port")
	docs.SwaggerInfo.Host = "localhost:" + port

	r := chi.NewRouter()

	r.Use(mW.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", mW.APIKeyHeader, mW.RequestIDHeader},
		ExposedHeaders: []string{mW.RequestIDHeader},
		MaxAge:         86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/webhooks", func(r chi.Router) {
			r.Use(mW.WebhookAPIKey(viper.GetString("security.webhook_api_key")))

			r.Post("/transactions", webhookHandler.HandleTransaction)
			r.Get("/status", webhookHandler.WebhookStatus)
		})
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// newPublisher picks the event sink named by EVENT_SINK. The returned func releases it.
func newPublisher(cfg *config.ProcessorConfig) (events.Publisher, func(), error) {
	switch cfg.EventSink {
	case "kafka":
		var brokers []string
		for _, b := range strings.Split(viper.GetString("kafka.brokers"), ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		if len(brokers) == 0 {
			return nil, nil, fmt.Errorf("EVENT_SINK=kafka requires KAFKA_BROKERS")
		}

		publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
			Brokers:       brokers,
			ApprovedTopic: cfg.KafkaApprovedTopic,
			RejectedTopic: cfg.KafkaRejectedTopic,
			MaxRetries:    cfg.KafkaMaxRetries,
		})
		if err != nil {
			return nil, nil, err
		}
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				log.Printf("[EVENTS] Failed to close Kafka producer: %v", err)
			}
		}, nil
	case "none":
		return events.NoopPublisher{}, func() {}, nil
	default:
		return events.NewLogPublisher(nil), func() {}, nil
	}
}
