package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/certificate-validator/config"
	"github.com/ikkim/certificate-validator/internal/app/controller"
	"github.com/ikkim/certificate-validator/internal/app/repository"
	"github.com/ikkim/certificate-validator/internal/app/service"
	"github.com/ikkim/certificate-validator/internal/app/view"
	"github.com/ikkim/certificate-validator/internal/db"
	"github.com/ikkim/certificate-validator/internal/router"
	"github.com/ikkim/certificate-validator/internal/scheduler"
	"github.com/ikkim/certificate-validator/internal/storage"
	"github.com/ikkim/certificate-validator/internal/websocket"
	"github.com/ikkim/certificate-validator/pkg/clock"
	"github.com/ikkim/certificate-validator/pkg/logger"
	"github.com/ikkim/certificate-validator/pkg/redis"
	"github.com/ikkim/certificate-validator/pkg/util"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting certificate validator", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
		"db_driver":   cfg.Database.Driver,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	hub := websocket.NewHub()
	hub.SetAllowedOrigins(cfg.CORS.AllowedOrigins)
	go hub.Run()
	defer hub.Stop()

	clk := clock.New()
	rnd := util.DefaultRand()

	// Upload busy flag: shared through Redis when several instances run
	var locker service.UploadLocker
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer redis.Close()
		locker = redis.NewUploadLock(redis.GetClient(), "", 0)
	} else {
		locker = service.NewMemoryLocker()
	}

	var (
		archive service.DocumentArchive
		backups service.BackupStore
	)
	if cfg.S3.Enabled() {
		s3Storage := storage.NewS3Storage(cfg.S3)
		archive = s3Storage
		backups = s3Storage
		logger.Info("S3 archive enabled", map[string]interface{}{
			"bucket": cfg.S3.Bucket,
		})
	}

	// Initialize repositories
	certRepo := repository.NewCertificateRepository(db.GetDB())
	verificationRepo := repository.NewVerificationRepository(db.GetDB())

	// Initialize services
	notificationService := service.NewNotificationService(service.NotificationOptions{
		MaxVisible:    cfg.Notification.MaxVisible,
		EntranceDelay: cfg.Notification.EntranceDelay,
		DismissAfter:  cfg.Notification.DismissAfter,
		ExitDuration:  cfg.Notification.ExitDuration,
	}, clk, hub)
	verificationService := service.NewVerificationService(certRepo, verificationRepo, rnd, clk, hub)
	certificateService := service.NewCertificateService(certRepo, notificationService, rnd, clk, hub)
	shareService := service.NewShareService(service.ShareOptions{
		Secret:  cfg.Share.Secret,
		Expiry:  cfg.Share.Expiry,
		BaseURL: cfg.Server.PublicBaseURL,
	}, certRepo, certificateService, notificationService)
	exportService := service.NewExportService(certRepo, verificationRepo, notificationService, backups, clk)
	uploadService := service.NewUploadService(service.UploadOptions{
		MaxBytes:         cfg.Upload.MaxBytes,
		StageDelayMin:    cfg.Upload.StageDelayMin,
		StageDelayJitter: cfg.Upload.StageDelayJitter,
		Rand:             rnd,
	},
		service.NewKeywordExtractor(rnd),
		verificationService,
		notificationService,
		locker,
		archive,
		clk,
		hub,
	)
	tabService := service.NewTabService(
		controller.TabSetups(verificationService, uploadService, certificateService),
		notificationService,
		hub,
	)

	templates, err := view.Templates()
	if err != nil {
		logger.Fatal("Failed to parse templates", err)
	}

	// Initialize controllers
	pageController := controller.NewPageController(tabService, verificationService, uploadService, certificateService, notificationService, clk)
	tabController := controller.NewTabController(tabService)
	dashboardController := controller.NewDashboardController(verificationService)
	uploadController := controller.NewUploadController(uploadService, cfg.Upload.MaxBytes)
	verificationController := controller.NewVerificationController(verificationService)
	certificateController := controller.NewCertificateController(certificateService, shareService)
	exportController := controller.NewExportController(exportService)
	notificationController := controller.NewNotificationController(notificationService, hub)

	hub.SetHandler(tabController.HandleSocketMessage)

	// Setup router
	r := router.NewRouter(
		pageController,
		tabController,
		dashboardController,
		uploadController,
		verificationController,
		certificateController,
		exportController,
		notificationController,
		templates,
		cfg,
	)
	engine := r.Setup()

	// 정기 백업은 백업 저장소가 있을 때만
	if cfg.Export.CronSpec != "" && backups != nil {
		exportScheduler := scheduler.NewExportScheduler(cfg.Export.CronSpec, exportService)
		if err := exportScheduler.Start(); err != nil {
			logger.Warn("Export scheduler disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer exportScheduler.Stop()
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	// let running pipelines finish before the database closes
	uploadService.Wait()

	logger.Info("Server stopped successfully")
}
