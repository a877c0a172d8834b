package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hotelease/backend/config"
	repository "github.com/hotelease/backend/internal/database/postgres"
	rediscache "github.com/hotelease/backend/internal/database/redis"
	"github.com/hotelease/backend/internal/service"
	"github.com/hotelease/backend/internal/transport"
	"github.com/hotelease/backend/internal/worker"
	"github.com/hotelease/backend/pkg/postgres"
	"github.com/hotelease/backend/pkg/redis"
	"github.com/hotelease/backend/pkg/scheduler"
	"github.com/hotelease/backend/pkg/telegram"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	bookingRepo := repository.NewBookingRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Initialize cache
	var cacheRepo *rediscache.CacheRepository
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Warnf("Redis unavailable, caching disabled: %v", err)
	} else {
		cacheRepo = rediscache.NewCacheRepository(redisClient, cfg.Cache.TTL)
		logrus.Info("Redis cache initialized")
	}

	// Initialize Telegram bot
	var notifier service.ConciergeNotifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		notifier = telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		logrus.Info("Telegram bot initialized")
	} else {
		logrus.Warn("Telegram bot token not provided, staff notifications disabled")
	}

	// Initialize services
	bookingService := service.NewBookingService(bookingRepo, roomRepo, cacheRepo, notifier)
	roomService := service.NewRoomService(roomRepo, cacheRepo)
	reviewService := service.NewReviewService(reviewRepo, cacheRepo)
	contactService := service.NewContactService(contactRepo, notifier)
	serviceCatalog := service.NewServiceCatalog(serviceRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize and start availability reconciler
	reconciler := scheduler.NewScheduler(bookingService, cfg.Worker.ReconcileInterval)
	go reconciler.Start(ctx)

	// Initialize follow-up worker
	followUpWorker := worker.NewFollowUpWorker(bookingService, notifier, cfg.Worker.FollowUpInterval)
	go followUpWorker.Start(ctx)

	// Initialize handlers
	bookingHandler := transport.NewBookingHandler(bookingService)
	roomHandler := transport.NewRoomHandler(roomService)
	reviewHandler := transport.NewReviewHandler(reviewService)
	contactHandler := transport.NewContactHandler(contactService, serviceCatalog)
	dashboardHandler := transport.NewDashboardHandler(bookingService)

	// Setup HTTP server
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		router := transport.InitRoutes(
			bookingHandler,
			roomHandler,
			reviewHandler,
			contactHandler,
			dashboardHandler,
			cfg.Staff.Token,
		)
		if err := srv.Run(cfg, router); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	followUpWorker.Stop()
	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
