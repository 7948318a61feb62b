package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/Rowdraraz100/RazNotes/internal/adapters/cache"
	adapterHTTP "github.com/Rowdraraz100/RazNotes/internal/adapters/handler/http"
	"github.com/Rowdraraz100/RazNotes/internal/adapters/metrics"
	"github.com/Rowdraraz100/RazNotes/internal/adapters/repository"
	"github.com/Rowdraraz100/RazNotes/internal/config"
	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
	"github.com/Rowdraraz100/RazNotes/internal/core/services"
	"github.com/Rowdraraz100/RazNotes/internal/core/workers"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Critical: Invalid configuration: %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var rdb *redis.Client
	if cfg.NeedsRedis() {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	}

	store, closeStore, err := repository.Open(ctx, cfg, rdb)
	if err != nil {
		log.Fatalf("Critical: Failed to open state store: %v", err)
	}
	defer closeStore()

	engine, err := services.NewEngine(ctx, domain.DefaultCatalog(), store)
	if err != nil {
		log.Fatalf("Critical: Failed to load habit state: %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)
	collector.Observe(services.Event{Kind: services.EventLoaded, Snapshot: engine.Snapshot()})
	engine.Subscribe(collector.Observe)

	rollover := workers.NewRolloverWorker(engine, cfg.RolloverInterval)
	rollover.Start(ctx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler: adapterHTTP.NewHabitHandler(engine),
		StatsHandler: adapterHTTP.NewStatsHandler(services.NewStatsService(engine)),
		StateHandler: adapterHTTP.NewStateHandler(engine),
		LiveHandler:  adapterHTTP.NewLiveHandler(engine),
		Store:        store,
		Metrics:      metrics.Handler(reg),
		Redis:        rdb,
		RateLimit:    cfg.RateLimit,
		StartTime:    startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("RazNotes habit engine running on http://localhost:%s (store: %s)", cfg.Port, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
