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

	"github.com/abhey8/Hospital-OPD/config"
	repository "github.com/abhey8/Hospital-OPD/internal/database/postgres"
	rediscache "github.com/abhey8/Hospital-OPD/internal/database/redis"
	"github.com/abhey8/Hospital-OPD/internal/service"
	"github.com/abhey8/Hospital-OPD/internal/transport"
	"github.com/abhey8/Hospital-OPD/internal/worker"

	"github.com/abhey8/Hospital-OPD/pkg/email"
	"github.com/abhey8/Hospital-OPD/pkg/postgres"
	"github.com/abhey8/Hospital-OPD/pkg/redis"
	"github.com/abhey8/Hospital-OPD/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const unreadCacheTTL = 5 * time.Minute

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
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	prescriptionRepo := repository.NewPrescriptionRepository(db)
	labRequestRepo := repository.NewLabRequestRepository(db)
	billRepo := repository.NewBillRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Redis backs the unread counter cache and the scan lock; both degrade
	// gracefully when it is not configured.
	var unreadCache service.UnreadCache
	var scanLock service.ScanLocker
	if cfg.Redis.Host != "" {
		redisClient := redis.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()

		unreadCache = rediscache.NewNotificationCache(redisClient, unreadCacheTTL)
		scanLock = rediscache.NewScanLock(redisClient, cfg.Worker.ScanLockTTL)
		logrus.Info("Redis cache and scan lock initialized")
	} else {
		logrus.Warn("Redis not configured, running without unread cache and scan lock")
	}

	var mailer *email.Sender
	if cfg.Email.Enabled {
		mailer = email.NewSender(&cfg.Email)
		logrus.Info("Email sender initialized")
	} else {
		logrus.Warn("Email disabled, transactional mails will not be sent")
	}

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Initialize services
	notificationService := service.NewNotificationService(notificationRepo, unreadCache)
	authService := service.NewAuthService(userRepo, patientRepo, doctorRepo, tokens)
	profileService := service.NewProfileService(patientRepo, doctorRepo)
	slotService := service.NewSlotService(slotRepo, doctorRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, slotRepo, patientRepo, doctorRepo, userRepo, notificationService, mailer)
	prescriptionService := service.NewPrescriptionService(prescriptionRepo, patientRepo, doctorRepo, userRepo, notificationService, mailer)
	labRequestService := service.NewLabRequestService(labRequestRepo, patientRepo, notificationService)
	billService := service.NewBillService(billRepo, patientRepo)
	reminderService := service.NewReminderService(appointmentRepo, notificationService, scanLock, mailer)

	// Start the reminder worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reminderWorker := worker.NewReminderWorker(reminderService, cfg.Worker.ReminderInterval)
	go reminderWorker.Start(ctx)
	logrus.Info("Reminder worker started")

	// Initialize handlers
	handlers := &transport.Handlers{
		Auth:         transport.NewAuthHandler(authService),
		Profile:      transport.NewProfileHandler(profileService),
		Slot:         transport.NewSlotHandler(slotService),
		Appointment:  transport.NewAppointmentHandler(appointmentService),
		Records:      transport.NewRecordsHandler(prescriptionService, labRequestService, billService),
		Notification: transport.NewNotificationHandler(notificationService, reminderService),
	}

	// Setup HTTP server
	if cfg.Server.Env == "production" || cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(handlers, tokens)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")
	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
