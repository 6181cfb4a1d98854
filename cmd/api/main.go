package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aslanbek/stayhub/internal/auth"
	"github.com/aslanbek/stayhub/internal/booking"
	"github.com/aslanbek/stayhub/internal/config"
	"github.com/aslanbek/stayhub/internal/event"
	"github.com/aslanbek/stayhub/internal/logger"
	"github.com/aslanbek/stayhub/internal/media"
	"github.com/aslanbek/stayhub/internal/room"
	"github.com/aslanbek/stayhub/internal/selection"
	"github.com/aslanbek/stayhub/internal/server"
	"github.com/aslanbek/stayhub/internal/storage"
)

func main() {
	_ = godotenv.Load()

	zlog, err := logger.Init()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		zlog.Fatal("connect minio", zap.Error(err))
	}

	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		zlog.Fatal("ensure bucket", zap.Error(err))
	}

	authRepo := auth.NewRepository(dbPool)
	authService := auth.NewService(authRepo, cfg.Auth)

	schemes := media.DefaultSchemes()
	mediaStore := media.NewStore(minioClient, cfg.MinIO.Bucket, cfg.Media.PresignTTL)
	classifier := media.NewClassifier(mediaStore, schemes)
	ingestor := media.NewIngestor(mediaStore, schemes, cfg.Media.MaxFileSize, cfg.Media.UploadWorkers, classifier)

	selections := selection.NewRegistry()

	roomRepo := room.NewRepository(dbPool)
	roomDeleter := media.NewDeleter(media.DeleterOptions{
		Scope:       room.Scope,
		Folder:      "hotel-rooms",
		Rows:        room.RowAdapter{Repo: roomRepo},
		Objects:     mediaStore,
		Selections:  selections,
		Invalidator: classifier,
	})
	roomService := room.NewService(roomRepo, ingestor, mediaStore, roomDeleter)

	eventRepo := event.NewRepository(dbPool)
	eventDeleter := media.NewDeleter(media.DeleterOptions{
		Scope:       event.Scope,
		Folder:      "events",
		Rows:        event.RowAdapter{Repo: eventRepo},
		Objects:     mediaStore,
		Selections:  selections,
		Invalidator: classifier,
	})
	eventService := event.NewService(eventRepo, ingestor, mediaStore, eventDeleter)

	bookingRepo := booking.NewRepository(dbPool)
	bookingService := booking.NewService(bookingRepo, selections)

	router := server.NewRouter(server.Dependencies{
		Config:         cfg,
		Logger:         zlog,
		DB:             dbPool,
		ObjectStore:    minioClient,
		AuthService:    authService,
		Classifier:     classifier,
		Ingestor:       ingestor,
		MediaStore:     mediaStore,
		Selections:     selections,
		RoomService:    roomService,
		EventService:   eventService,
		BookingService: bookingService,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("stayhub API listening", zap.String("addr", cfg.Server.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	zlog.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}
