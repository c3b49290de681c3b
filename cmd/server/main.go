// @title KYC Portal API
// @version 1.0
// @description Document collection and verification for the customer portal.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"kycportal/internal/config"
	"kycportal/internal/email/noop"
	sesemail "kycportal/internal/email/ses"
	"kycportal/internal/handler"
	"kycportal/internal/kyc"
	"kycportal/internal/logger"
	"kycportal/internal/metrics"
	"kycportal/internal/port"
	"kycportal/internal/repository/postgres"
	"kycportal/internal/router"
	"kycportal/internal/service"
	"kycportal/internal/storage/remote"
	s3storage "kycportal/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewRecorder(prometheus.NewRegistry())
	log.AddHook(recorder.LogHook())

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	catalog, err := loadCatalog(&cfg.KYC)
	if err != nil {
		return err
	}

	// Initialize repositories
	kycRepo := postgres.NewKYCDocumentRepo(db)

	// Initialize storage
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return err
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = sesemail.NewSESSender(ctx, &cfg.Email)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(cfg.Email.FrontendURL)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	kycSvc := service.NewKYCService(catalog, kycRepo, storage, emailSender, recorder, &cfg.KYC, cfg.Storage.PresignExpiry)

	// Initialize handlers
	kycH := handler.NewKYCHandler(kycSvc, cfg.Server.MaxUploadMB<<20)
	adminH := handler.NewAdminHandler(kycSvc)
	healthH := handler.NewHealthHandler(postgres.NewPinger(db))

	// Setup router
	r := router.Setup(cfg, recorder, authSvc, kycH, adminH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func loadCatalog(cfg *config.KYCConfig) (*kyc.Catalog, error) {
	reqs := kyc.DefaultRequirements()
	if cfg.CatalogFile != "" {
		var err error
		reqs, err = config.LoadRequirements(cfg.CatalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load requirement catalog: %w", err)
		}
	}
	catalog, err := kyc.NewCatalog(reqs)
	if err != nil {
		return nil, fmt.Errorf("invalid requirement catalog: %w", err)
	}
	log.WithFields(log.Fields{
		"required": len(catalog.ListRequired()),
		"optional": len(catalog.ListOptional()),
	}).Info("requirement catalog loaded")
	return catalog, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (port.DocumentStorage, error) {
	switch cfg.Storage.Provider {
	case "remote":
		return remote.NewClient(&cfg.Remote), nil
	default:
		storage, err := s3storage.NewS3Storage(ctx, &cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		return storage, nil
	}
}
