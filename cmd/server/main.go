package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management-api/internal/config"
	"hospital-management-api/internal/database"
	"hospital-management-api/internal/handler"
	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/report"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-api",
		Short: "Multi-tenant hospital management API",
	}
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log)

			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return logger.Level(level)
}

func runServer() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log)

	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to database")
		return err
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	// Repositories
	hospitalRepo := repository.NewHospitalRepo(db)
	workerRepo := repository.NewWorkerRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	drugRepo := repository.NewDrugRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	labTestRepo := repository.NewLabTestRepo(db)
	diagnosisRepo := repository.NewDiagnosisRepo(db)
	appointmentRepo := repository.NewAppointmentRepo(db)
	labRequestRepo := repository.NewLabRequestRepo(db)
	labResultRepo := repository.NewLabResultRepo(db)
	prescriptionRepo := repository.NewPrescriptionRepo(db)
	billingRepo := repository.NewBillingRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	keyRepo := repository.NewActivationKeyRepo(db)

	// Services
	services := handler.Services{
		Auth:           service.NewAuthService(hospitalRepo, workerRepo, tokenRepo, auditRepo, logger),
		Hospitals:      service.NewHospitalService(hospitalRepo, keyRepo, tokenRepo, auditRepo, cfg.Platform.TrialPeriod, logger),
		ActivationKeys: service.NewActivationKeyService(keyRepo, auditRepo, logger),
		Workers:        service.NewWorkerService(workerRepo, tokenRepo, auditRepo, logger),
		Patients:       service.NewPatientService(patientRepo),
		Drugs:          service.NewDrugService(drugRepo),
		Services:       service.NewServiceCatalog(serviceRepo),
		LabTests:       service.NewLabTestService(labTestRepo),
		Diagnoses:      service.NewDiagnosisService(diagnosisRepo, patientRepo, hospitalRepo),
		Appointments:   service.NewAppointmentService(appointmentRepo, patientRepo, workerRepo, serviceRepo),
		Prescriptions:  service.NewPrescriptionService(prescriptionRepo, patientRepo, drugRepo),
		LabRequests:    service.NewLabRequestService(labRequestRepo, patientRepo, labTestRepo),
		LabResults:     service.NewLabResultService(labResultRepo, patientRepo),
		Billings:       service.NewBillingService(billingRepo, patientRepo),
		Exports: service.NewExportService(service.ExportSources{
			Drugs:        drugRepo,
			Patients:     patientRepo,
			Diagnoses:    diagnosisRepo,
			Appointments: appointmentRepo,
			LabRequests:  labRequestRepo,
			LabResults:   labResultRepo,
		}, hospitalRepo, report.NewExporter(cfg.Export.Dir, cfg.Export.LogoPath)),
	}

	// Background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.SigninRPS, cfg.RateLimit.SigninBurst)
	go limiter.Run(ctx)
	go service.NewExportJanitor(cfg.Export.Dir, cfg.Export.Retention, cfg.Export.JanitorInterval, logger).Start(ctx)

	gin.SetMode(cfg.Server.GinMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg))

	handler.Register(r, services, handler.Options{
		AdminKey:      cfg.Platform.AdminKey,
		SigninLimiter: limiter,
		SecureCookies: cfg.Server.GinMode == gin.ReleaseMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		logger.Error().Err(err).Msg("server failed")
		return err
	}
	logger.Info().Msg("shutting down server")

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}

	logger.Info().Msg("server exited")
	return nil
}
