package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-api/config"
	"github.com/healthhub/healthhub-api/internal/email"
	appointmentHandler "github.com/healthhub/healthhub-api/internal/handler/appointment"
	authHandler "github.com/healthhub/healthhub-api/internal/handler/auth"
	doctorHandler "github.com/healthhub/healthhub-api/internal/handler/doctor"
	documentHandler "github.com/healthhub/healthhub-api/internal/handler/document"
	healthHandler "github.com/healthhub/healthhub-api/internal/handler/health"
	resetHandler "github.com/healthhub/healthhub-api/internal/handler/passwordreset"
	patientHandler "github.com/healthhub/healthhub-api/internal/handler/patient"
	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/internal/otp"
	"github.com/healthhub/healthhub-api/internal/repository/postgres"
	"github.com/healthhub/healthhub-api/internal/router"
	appointmentService "github.com/healthhub/healthhub-api/internal/service/appointment"
	authService "github.com/healthhub/healthhub-api/internal/service/auth"
	doctorService "github.com/healthhub/healthhub-api/internal/service/doctor"
	documentService "github.com/healthhub/healthhub-api/internal/service/document"
	resetService "github.com/healthhub/healthhub-api/internal/service/passwordreset"
	patientService "github.com/healthhub/healthhub-api/internal/service/patient"
	"github.com/healthhub/healthhub-api/pkg/auth"
	"github.com/healthhub/healthhub-api/pkg/logger"
	"github.com/healthhub/healthhub-api/pkg/metrics"
	"github.com/healthhub/healthhub-api/pkg/security"
)

const otpTTL = 5 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics(cfg.Metrics.Namespace)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	recordRepo := postgres.NewPatientRecordRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	documentRepo := postgres.NewDocumentRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	hasher := security.NewBcryptHasher(10)
	otpStore := newOTPStore(cfg.OTP)
	sender := email.NewSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	authSvc := authService.NewService(userRepo, jwtSvc, hasher, cfg.Auth.DoctorEmailDomain)
	appointmentSvc := appointmentService.NewService(appointmentRepo, documentRepo)
	doctorSvc := doctorService.NewService(userRepo, doctorRepo, recordRepo, patientRepo)
	patientSvc := patientService.NewService(userRepo, patientRepo, documentRepo)
	documentSvc := documentService.NewService(documentRepo)
	resetSvc := resetService.NewService(userRepo, otpStore, sender, hasher, m)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	handlers := router.Handlers{
		Auth:          authHandler.NewHandler(authSvc),
		Appointment:   appointmentHandler.NewHandler(appointmentSvc),
		Doctor:        doctorHandler.NewHandler(doctorSvc),
		Patient:       patientHandler.NewHandler(patientSvc, documentSvc),
		Document:      documentHandler.NewHandler(documentSvc, m),
		PasswordReset: resetHandler.NewHandler(resetSvc),
		Health:        healthHandler.NewHandler(db),
	}

	r := router.New(authMiddleware, handlers, m, router.Config{
		RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst: cfg.RateLimit.Burst,
		RequestTimeout: cfg.Server.RequestTimeout,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		CORS:           middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// newOTPStore picks the reset-code store backend. Redis survives
// restarts; the in-process cache does not.
func newOTPStore(cfg config.OTPConfig) otp.Store {
	if cfg.Backend != "redis" {
		return otp.NewMemoryStore(otpTTL)
	}

	opts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid redis URL")
	}
	return otp.NewRedisStore(goredis.NewClient(opts))
}
