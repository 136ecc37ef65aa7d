package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/qwego/maintenance-service/internal/api/http"
	"github.com/qwego/maintenance-service/internal/api/http/handlers"
	"github.com/qwego/maintenance-service/internal/auth"
	"github.com/qwego/maintenance-service/internal/config"
	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/events"
	"github.com/qwego/maintenance-service/internal/observability"
	"github.com/qwego/maintenance-service/internal/persistence"
	"github.com/qwego/maintenance-service/internal/repository"
	"github.com/qwego/maintenance-service/internal/service"
	"github.com/qwego/maintenance-service/internal/storage"
	"github.com/qwego/maintenance-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	activityLogRepo := repository.NewActivityLogRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)

	transactor := persistence.NewPgxTransactor(pool)
	recorder := service.NewActivityRecorder(activityLogRepo)
	dispatcher := events.NewInMemoryDispatcher()
	revoker := auth.NewRedisTokenRevoker(redis.Client)
	imageStore := storage.NewDiskImageStore(cfg.Upload.Dir)

	identityService := service.NewIdentityService(*cfg, service.IdentityDependencies{
		UserRepo:   userRepo,
		Revoker:    revoker,
		Dispatcher: dispatcher,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Recorder:   recorder,
		Images:     imageStore,
		Transactor: transactor,
		Dispatcher: dispatcher,
	})
	announcementService := service.NewAnnouncementService(announcementRepo, dispatcher)
	dashboardService := service.NewDashboardService(ticketRepo, userRepo, announcementRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notify)
	worker.StartNotificationWorker(notificationService)

	if cfg.Seed.DemoAccounts && pool != nil {
		if err := seedDemoAccounts(ctx, userRepo, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Warn("demo account seeding failed", zap.Error(err))
		}
	}

	authMiddleware := auth.NewAuthMiddleware(identityService.TokenManager(), userRepo, revoker)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.Upload.MaxBytes + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Static("/uploads", cfg.Upload.Dir)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics)
	authHandler := handlers.NewAuthHandler(identityService)
	usersHandler := handlers.NewUsersHandler(identityService)
	ticketsHandler := handlers.NewTicketsHandler(ticketService, cfg.Upload.MaxBytes)
	announcementsHandler := handlers.NewAnnouncementsHandler(announcementService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           authHandler,
		Users:          usersHandler,
		Tickets:        ticketsHandler,
		Announcements:  announcementsHandler,
		Dashboard:      dashboardHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// seedDemoAccounts provisions the three walkthrough accounts. Existing
// usernames are left untouched, so reruns are safe.
func seedDemoAccounts(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) error {
	demos := []domain.User{
		{Username: "manager_demo", FullName: "Morgan Manager", Email: "manager@qwego.com", PhoneNumber: "555-0100", Role: domain.RoleManager, IsApproved: true},
		{Username: "tenant_demo", FullName: "Taylor Tenant", Email: "tenant@qwego.com", PhoneNumber: "555-0101", Role: domain.RoleTenant, IsApproved: true},
		{Username: "tech_demo", FullName: "Terry Technician", Email: "tech@qwego.com", PhoneNumber: "555-0102", Role: domain.RoleTechnician, IsApproved: true},
	}

	for i := range demos {
		demo := &demos[i]
		if _, err := users.GetByUsername(ctx, demo.Username); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		hash, err := auth.HashPassword("password123", bcryptCost)
		if err != nil {
			return err
		}
		demo.CredentialHash = hash
		if err := users.Create(ctx, demo); err != nil {
			return err
		}
		logger.Info("seeded demo account", zap.String("username", demo.Username), zap.String("role", string(demo.Role)))
	}
	return nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
