package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/zayanservices/crm-service/internal/api/http"
	"github.com/zayanservices/crm-service/internal/api/http/handlers"
	"github.com/zayanservices/crm-service/internal/auth"
	"github.com/zayanservices/crm-service/internal/cache"
	"github.com/zayanservices/crm-service/internal/config"
	"github.com/zayanservices/crm-service/internal/events"
	"github.com/zayanservices/crm-service/internal/observability"
	"github.com/zayanservices/crm-service/internal/persistence"
	"github.com/zayanservices/crm-service/internal/repository"
	"github.com/zayanservices/crm-service/internal/service"
	"github.com/zayanservices/crm-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	customerRepo := repository.NewCustomerRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	historyRepo := repository.NewStatusHistoryRepository(pool)
	communicationRepo := repository.NewCommunicationRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	ruleRepo := repository.NewAutomationRuleRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	views := cache.NewViewCache(redis.Client, cfg.Cache.ViewTTL(), logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	identityMiddleware := auth.NewIdentityMiddleware(tokenManager)

	customerService := service.NewCustomerService(customerRepo)
	catalogService := service.NewCatalogService(serviceRepo, groupRepo)
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		AssignmentRepo: assignmentRepo,
		CustomerRepo:   customerRepo,
		ServiceRepo:    serviceRepo,
		Dispatcher:     dispatcher,
	})
	lifecycleService := service.NewLifecycleService(service.LifecycleDependencies{
		AssignmentRepo: assignmentRepo,
		HistoryRepo:    historyRepo,
		Views:          views,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	communicationService := service.NewCommunicationService(service.CommunicationDependencies{
		Communications: communicationRepo,
		Customers:      customerRepo,
		Templates:      templateRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	automationService := service.NewAutomationService(service.AutomationDependencies{
		Rules:          ruleRepo,
		Communications: communicationRepo,
		Assignments:    assignmentRepo,
		Logger:         logger,
	})
	portalService := service.NewPortalService(service.PortalDependencies{
		Customers:      customerRepo,
		Assignments:    assignmentRepo,
		History:        historyRepo,
		Communications: communicationRepo,
		Settings:       settingsRepo,
		Views:          views,
		Logger:         logger,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		Customers:      customerRepo,
		Assignments:    assignmentRepo,
		Communications: communicationRepo,
		Logger:         logger,
	})
	settingsService := service.NewSettingsService(settingsRepo, userRepo)

	worker.StartAutomationWorker(dispatcher, automationService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Assignments:        handlers.NewAssignmentsHandler(assignmentService, lifecycleService, views),
		Customers:          handlers.NewCustomersHandler(customerService, communicationService),
		Catalog:            handlers.NewCatalogHandler(catalogService),
		Communications:     handlers.NewCommunicationsHandler(communicationService),
		Automation:         handlers.NewAutomationHandler(automationService),
		Settings:           handlers.NewSettingsHandler(settingsService),
		Dashboard:          handlers.NewDashboardHandler(dashboardService),
		Portal:             handlers.NewPortalHandler(portalService),
		IdentityMiddleware: identityMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
