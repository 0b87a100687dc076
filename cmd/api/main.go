package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juaenergy/solar-platform/cmd/mainconfig"
	"github.com/juaenergy/solar-platform/internal/api/router"
	appconfig "github.com/juaenergy/solar-platform/internal/config"
	"github.com/juaenergy/solar-platform/internal/consultation"
	"github.com/juaenergy/solar-platform/internal/notify"
	"github.com/juaenergy/solar-platform/internal/observability/metrics"
	"github.com/juaenergy/solar-platform/internal/schedule"
	"github.com/juaenergy/solar-platform/internal/talent"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

func main() {
	// Load .env in development; ignored when the file is absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.NewWithFormat(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting solar-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"email_provider", cfg.EmailProvider,
	)

	formMetrics := metrics.NewFormMetrics(nil)

	// AWS config is needed for the SES sender and the S3 résumé store only.
	var awsCfg aws.Config
	if cfg.EmailProvider == "ses" || cfg.ResumeBucket != "" {
		loaded, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		awsCfg = loaded
	}

	var sender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		sg := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
		if sg == nil {
			logger.Warn("sendgrid selected but no API key set, falling back to stub sender")
			sender = notify.NewStubEmailSender(logger)
		} else {
			sender = sg
		}
	case "ses":
		sender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
	default:
		sender = notify.NewStubEmailSender(logger)
	}

	notifier := notify.NewService(sender, notify.Config{
		StaffRecipients: cfg.StaffEmails,
		TestMode:        cfg.EmailTestMode,
		TestRecipient:   cfg.EmailTestRecipient,
	}, formMetrics, logger)

	businessZone, err := time.LoadLocation(cfg.BusinessTimezone)
	if err != nil {
		logger.Warn("invalid business timezone, using fixed EAT offset",
			"timezone", cfg.BusinessTimezone, "error", err)
		businessZone = time.FixedZone("EAT", 3*60*60)
	}

	hours := schedule.Config{
		ExcludeDays: []time.Weekday{time.Saturday, time.Sunday},
		StartTime:   cfg.BusinessStartTime,
		EndTime:     cfg.BusinessEndTime,
		Interval:    cfg.SlotInterval,
		Location:    businessZone,
	}

	consultationHandler := consultation.NewHandler(
		consultation.NewInMemoryStore(), notifier, hours, formMetrics, logger)

	var resumes talent.ResumeStore
	if cfg.ResumeBucket != "" {
		resumes = talent.NewS3ResumeStore(s3.NewFromConfig(awsCfg), cfg.ResumeBucket, logger)
	} else {
		logger.Warn("no resume bucket configured, storing resumes in memory")
		resumes = talent.NewInMemoryResumeStore()
	}
	talentHandler := talent.NewHandler(
		talent.NewInMemoryStore(), resumes, notifier, formMetrics, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		ConsultationHandler: consultationHandler,
		TalentHandler:       talentHandler,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerSecond:  cfg.RateLimitPerSecond,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
