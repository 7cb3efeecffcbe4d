// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dangerclosesec/onboarding/internal/auth"
	"github.com/dangerclosesec/onboarding/internal/config"
	"github.com/dangerclosesec/onboarding/internal/crm"
	"github.com/dangerclosesec/onboarding/internal/database"
	"github.com/dangerclosesec/onboarding/internal/email"
	"github.com/dangerclosesec/onboarding/internal/handler"
	"github.com/dangerclosesec/onboarding/internal/metrics"
	"github.com/dangerclosesec/onboarding/internal/middleware"
	"github.com/dangerclosesec/onboarding/internal/otpstore"
	"github.com/dangerclosesec/onboarding/internal/repository"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/dangerclosesec/onboarding/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.App.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	// Initialize repositories
	submissionRepo := repository.NewSubmissionRepository(db, cfg.Site.BasePath)
	pillarRepo := repository.NewPillarRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize cache service
	cacheService := service.NewCacheService(service.CacheConfig{
		TTL:         5 * time.Minute,
		CleanupFreq: 1 * time.Minute,
	})
	defer cacheService.Close()

	pillarService := service.NewPillarService(pillarRepo, cacheService)
	if n, err := pillarService.Seed(ctx); err != nil {
		return fmt.Errorf("seeding pillar descriptions: %w", err)
	} else if n > 0 {
		logger.Info("seeded pillar descriptions", "count", n)
	}

	images, err := storage.NewLocalStorage(cfg.Media.Root, cfg.Media.URL, cfg.Media.MaxUploadMB<<20)
	if err != nil {
		return err
	}

	otpStore, closeStore, err := setupOTPStore(ctx, cfg, cacheService)
	if err != nil {
		return err
	}
	defer closeStore()

	// CRM mirroring is optional; without it texts are only logged.
	var (
		syncer service.Syncer
		texts  service.TextSender = service.NewLogTextSender(logger)
	)
	if cfg.CRM.Enabled {
		client := crm.NewClient(crmConfig(cfg))
		syncer = service.NewMirrorSync(client, submissionRepo, images, logger)
		texts = service.NewCRMTextSender(client)
		logger.Info("crm mirroring enabled", "base_url", cfg.CRM.BaseURL)
	}

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, email.Provider(cfg.Email.Provider))
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryPeriod)
	auditLogService := service.NewAuditLogService(auditRepo, logger)

	submissionService := service.NewSubmissionService(submissionRepo, pillarService, images, service.SubmissionServiceConfig{
		DefaultPassword: cfg.Site.DefaultPassword,
		SyncTimeout:     cfg.CRM.SyncTimeout,
		Sync:            syncer,
		Mailer:          emailService,
	}, logger)
	otpService := service.NewOTPService(otpStore, auth.NewHasher(), texts, submissionRepo, service.OTPConfig{
		TTL:          cfg.OTP.TTL,
		MaxAttempts:  cfg.OTP.MaxAttempts,
		MaxPerMinute: cfg.OTP.MaxPerMinute,
	}, logger)

	// Initialize handlers
	handlers := &handler.Handlers{
		Submission: handler.NewSubmissionHandler(submissionService, cfg.Media.MaxUploadMB<<20),
		Mirror:     handler.NewMirrorHandler(service.NewMirrorService(submissionRepo)),
		OTP:        handler.NewOTPHandler(otpService),
		Share:      handler.NewShareHandler(service.NewShareService(submissionRepo, texts, emailService, logger)),
		Pillar:     handler.NewPillarHandler(pillarService),
		Admin:      handler.NewAdminHandler(service.NewAdminService(submissionRepo, syncer), pillarService, auditLogService),
		AuditLog:   handler.NewAuditLogHandler(auditLogService),
	}

	if syncer != nil && cfg.CRM.ReconcileInterval > 0 {
		reconciler := service.NewMirrorReconciler(submissionRepo, syncer, cfg.CRM.ReconcileInterval, logger)
		reconciler.Start()
		defer reconciler.Stop()
	}

	go reportDBStats(ctx, db)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(metrics.PrometheusMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.Ping(db); err != nil {
			logger.Warn("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle(cfg.Media.URL+"/*", http.StripPrefix(cfg.Media.URL, http.FileServer(http.Dir(images.Root()))))

	// API routes
	r.Mount("/api", handlers.Routes(middleware.AdminMiddleware(tokenManager)))

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown started")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(shutdownCtx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// setupOTPStore picks the OTP session store. The returned func releases it.
func setupOTPStore(ctx context.Context, cfg *config.Config, cacheService *service.CacheService) (otpstore.Store, func(), error) {
	switch cfg.OTP.Store {
	case "redis":
		client := otpstore.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		store := otpstore.NewRedisStore(client)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store, func() { client.Close() }, nil
	case "memory", "":
		return otpstore.NewMemoryStore(cacheService.Backend()), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported otp store: %s", cfg.OTP.Store)
	}
}

func crmConfig(cfg *config.Config) crm.Config {
	return crm.Config{
		BaseURL:           cfg.CRM.BaseURL,
		APIVersion:        cfg.CRM.APIVersion,
		AgencyToken:       cfg.CRM.AgencyToken,
		LocationToken:     cfg.CRM.LocationToken,
		ContactLocationID: cfg.CRM.ContactLocation,
		CompanyID:         cfg.CRM.CompanyID,
		Timeout:           cfg.CRM.Timeout,
		SchemaTTL:         cfg.CRM.SchemaTTL,
		UpsertRetryCount:  cfg.CRM.UpsertRetryCount,
		UpsertRetryWait:   cfg.CRM.UpsertRetryWait,
	}
}

func reportDBStats(ctx context.Context, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		metrics.UpdateDBConnections(sqlDB.Stats())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
