package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/wallywood/poster-api/internal/config"
	"github.com/wallywood/poster-api/internal/database"
	"github.com/wallywood/poster-api/internal/handler"
	"github.com/wallywood/poster-api/internal/middleware"
	"github.com/wallywood/poster-api/internal/queue"
	"github.com/wallywood/poster-api/internal/repository"
	"github.com/wallywood/poster-api/internal/router"
	"github.com/wallywood/poster-api/internal/service/cartevents"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	posters := repository.NewPosterRepo(db)
	genres := repository.NewGenreRepo(db)
	rels := repository.NewGenrePosterRepo(db)
	ratings := repository.NewRatingRepo(db)
	carts := repository.NewCartlineRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.JWTSecret)
	router.RegisterCatalog(e,
		handler.NewPosterHandler(posters),
		handler.NewGenreHandler(genres),
		handler.NewGenrePosterHandler(rels),
		handler.NewRatingHandler(ratings),
		cfg.JWTSecret, cacheMW)
	router.RegisterCartlines(e,
		handler.NewCartlineHandler(carts, &cartevents.Publisher{}),
		cfg.JWTSecret)

	// The consumer reconnects forever in the background; broker downtime
	// never takes the API down.
	go func() {
		if err := queue.StartCartConsumer(); err != nil {
			log.Printf("cart consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
