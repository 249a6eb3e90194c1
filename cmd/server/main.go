package main // Entry point package

import (
	"context"
	"errors"
	"log" // Logging library
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	"github.com/iliyamo/hotel-booking/internal/config"   // Internal config loader
	"github.com/iliyamo/hotel-booking/internal/database" // MySQL connection, schema and seed
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router" // Internal router setup
	"github.com/iliyamo/hotel-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db, database.DialectMySQL); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.SeedHotels {
		res, err := database.Seed(ctx, db, cfg.BcryptCost)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("seed: demo user created=%v, hotels created=%d", res.UserCreated, res.HotelsCreated)
	}

	// Redis is optional; without it rate limiting and caching are skipped.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limit and cache disabled")
	} else {
		defer rdb.Close()
	}

	qcfg := config.LoadQueueConfig()
	var events service.EventPublisher = queue.NopPublisher{}
	if qcfg.Enabled {
		pub := queue.NewPublisher(qcfg.URL, qcfg.Queue)
		defer pub.Close()
		events = pub
		if qcfg.ConsumerEnabled {
			go func() {
				if err := queue.StartBookingConsumer(ctx, qcfg.URL, qcfg.Queue, qcfg.LogDir); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("booking-consumer stopped: %v", err)
				}
			}()
		}
	}

	users := repository.NewUserRepo(db)
	hotels := repository.NewHotelRepo(db)
	bookings := repository.NewBookingRepo(db)

	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	catalog := service.NewCatalogService(hotels)
	reservations := service.NewBookingService(bookings, hotels, events)

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	if cfg.IsProd() {
		e.Logger.SetLevel(glog.INFO)
	} else {
		e.Logger.SetLevel(glog.DEBUG)
	}
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomw.BodyLimit("1M"))

	router.Register(e, router.Deps{
		Auth:      handler.NewAuthHandler(auth),
		Hotels:    handler.NewHotelHandler(catalog),
		Bookings:  handler.NewBookingHandler(reservations),
		Verifier:  auth,
		RateLimit: middleware.NewLoginThrottle(config.LoadRateLimitConfig(), rdb),
		Cache:     middleware.NewCatalogCache(config.LoadCacheConfig(), rdb),
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) { // Start HTTP server
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
