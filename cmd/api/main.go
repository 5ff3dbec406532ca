package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/consulting-marketplace/internal/api/http"
	"github.com/spec-kit/consulting-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/consulting-marketplace/internal/auth"
	"github.com/spec-kit/consulting-marketplace/internal/config"
	"github.com/spec-kit/consulting-marketplace/internal/events"
	"github.com/spec-kit/consulting-marketplace/internal/observability"
	"github.com/spec-kit/consulting-marketplace/internal/persistence"
	"github.com/spec-kit/consulting-marketplace/internal/repository"
	"github.com/spec-kit/consulting-marketplace/internal/service"
	"github.com/spec-kit/consulting-marketplace/internal/worker"
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

	redisConn := persistence.NewRedis(cfg.Redis, logger)
	defer redisConn.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	quotationRepo := repository.NewQuotationRepository(pool)
	contractRepo := repository.NewContractRepository(pool)
	methodRepo := repository.NewPaymentMethodRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	chatRepo := repository.NewChatRepository(pool)
	boardRepo := repository.NewBoardRepository(pool)
	portfolioRepo := repository.NewPortfolioRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	projectService := service.NewProjectService(projectRepo, dispatcher)
	quotationService := service.NewQuotationService(service.QuotationDependencies{
		QuotationRepo: quotationRepo,
		ProjectRepo:   projectRepo,
		ContractRepo:  contractRepo,
		BoardRepo:     boardRepo,
		ChatRepo:      chatRepo,
		Dispatcher:    dispatcher,
	})
	contractService := service.NewContractService(contractRepo, projectRepo, reviewRepo, dispatcher)

	processor := service.NewNoopProcessor()
	if cfg.Payment.Provider != "noop" {
		logger.Warn("unknown payment provider, falling back to noop", zap.String("provider", cfg.Payment.Provider))
	}
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		MethodRepo:   methodRepo,
		PaymentRepo:  paymentRepo,
		ContractRepo: contractRepo,
		Processor:    processor,
		Dispatcher:   dispatcher,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		ProjectRepo:   projectRepo,
		QuotationRepo: quotationRepo,
		PaymentRepo:   paymentRepo,
		ReviewRepo:    reviewRepo,
		Redis:         redisConn.Client,
	})
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	chatService := service.NewChatService(chatRepo, contractRepo, redisConn.Client, dispatcher)
	boardService := service.NewBoardService(boardRepo, contractRepo)
	providerService := service.NewProviderService(userRepo, portfolioRepo, reviewRepo, dashboardService)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg, pg, redisConn),
		Auth:           handlers.NewAuthHandler(authService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Quotations:     handlers.NewQuotationsHandler(quotationService),
		Contracts:      handlers.NewContractsHandler(contractService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Chat:           handlers.NewChatHandler(chatService),
		Boards:         handlers.NewBoardsHandler(boardService),
		Providers:      handlers.NewProvidersHandler(providerService),
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

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
