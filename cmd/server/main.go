package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/campsite-reservation/internal/cache"
	"github.com/iliyamo/campsite-reservation/internal/config"
	"github.com/iliyamo/campsite-reservation/internal/database"
	"github.com/iliyamo/campsite-reservation/internal/handler"
	"github.com/iliyamo/campsite-reservation/internal/middleware"
	"github.com/iliyamo/campsite-reservation/internal/repository"
	"github.com/iliyamo/campsite-reservation/internal/router"
	"github.com/iliyamo/campsite-reservation/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis backs the availability cache and the rate limiter; both
	// degrade gracefully when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, caching and rate limiting disabled")
	}
	var availCache service.AvailabilityCache
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled && rdb != nil {
		availCache = cache.New(rdb, cacheCfg)
	}

	store := repository.NewReservationRepo(db)
	svc := service.NewReservationService(store, availCache)
	h := handler.NewReservationHandler(svc)

	e := echo.New()
	limiter := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, h, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
