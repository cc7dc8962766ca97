package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/payout-admin/internal/config"
	"github.com/ignatzorin/payout-admin/internal/db"
	"github.com/ignatzorin/payout-admin/internal/events"
	"github.com/ignatzorin/payout-admin/internal/goroutine"
	httpHandlers "github.com/ignatzorin/payout-admin/internal/http/handlers"
	httpRouter "github.com/ignatzorin/payout-admin/internal/http/router"
	"github.com/ignatzorin/payout-admin/internal/jobs"
	"github.com/ignatzorin/payout-admin/internal/logger"
	"github.com/ignatzorin/payout-admin/internal/repository"
	"github.com/ignatzorin/payout-admin/internal/service"
	"github.com/ignatzorin/payout-admin/internal/store"
	"github.com/ignatzorin/payout-admin/internal/store/postgres"
	"github.com/ignatzorin/payout-admin/internal/store/postgrest"
	"github.com/ignatzorin/payout-admin/internal/validation"
	"github.com/ignatzorin/payout-admin/internal/ws"
	"github.com/ignatzorin/payout-admin/migrations"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}
	appLog := logger.Log
	goroutine.SetLogger(appLog)

	for _, warning := range cfg.Warnings {
		appLog.Warn(warning)
	}

	if err := validation.RegisterBindings(); err != nil {
		appLog.WithError(err).Fatal("main: не удалось зарегистрировать валидаторы")
	}

	// Хранилище.
	dataStore, closeStore, err := openStore(ctx, cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("main: хранилище недоступно")
	}
	defer closeStore()

	// Вебсокеты.
	hub := ws.NewHub(appLog)
	goroutine.SafeGoWithContext(ctx, hub.Run)

	// События: всегда в вебсокеты, в NATS только если он настроен.
	publishers := events.Multi{hub}
	if cfg.NATSURL != "" {
		natsPub, err := events.ConnectNATS(cfg.NATSURL, cfg.NATSSubject, appLog)
		if err != nil {
			appLog.WithError(err).Warn("main: NATS недоступен, события идут только в вебсокеты")
		} else {
			defer func() {
				if err := natsPub.Close(); err != nil {
					appLog.WithError(err).Warn("main: ошибка закрытия NATS")
				}
			}()
			publishers = append(publishers, natsPub)
		}
	}

	// Репозитории.
	profileRepo := repository.NewProfileRepository(dataStore)
	withdrawalRepo := repository.NewWithdrawalRepository(dataStore, profileRepo, appLog)
	userRepo := repository.NewUserRepository(dataStore)
	transactionRepo := repository.NewTransactionRepository(dataStore)

	// Сервисы.
	withdrawalService := service.NewWithdrawalService(withdrawalRepo, appLog,
		service.WithPublisher(publishers),
		service.WithDefaultOperator(cfg.AdminOperatorID),
	)
	userService := service.NewUserService(userRepo, publishers, appLog)
	dashboardService := service.NewDashboardService(transactionRepo, withdrawalService, withdrawalRepo, userRepo, appLog, cfg.RecentWithdrawalsLimit)
	exportService := service.NewExportService(withdrawalService)

	// Фоновая статистика.
	if cfg.StatsReportSchedule != "" {
		reporter, err := jobs.NewStatsReporter(withdrawalService, cfg.StatsReportSchedule, appLog)
		if err != nil {
			appLog.WithError(err).Fatal("main: некорректное расписание статистики")
		}
		reporter.Start()
		defer reporter.Stop()
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, appLog, httpRouter.Handlers{
		Health:      httpHandlers.NewHealthHandler(dataStore, cfg.StoreDriver),
		Dashboard:   httpHandlers.NewDashboardHandler(dashboardService),
		Users:       httpHandlers.NewUserHandler(userService),
		Withdrawals: httpHandlers.NewWithdrawalHandler(withdrawalService, exportService),
		WS:          httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	appLog.WithFields(logrus.Fields{
		"port":         cfg.HTTPPort,
		"store_driver": cfg.StoreDriver,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLog.WithError(err).Error("main: сервер завершился с ошибкой")
	}
}

// openStore создаёт хранилище выбранного драйвера и функцию его закрытия.
func openStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		conn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPoolConfig())
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				log.WithError(err).Warn("main: ошибка закрытия базы")
			}
		}

		if cfg.RunMigrations {
			if err := db.RunMigrations(ctx, conn, migrations.FS); err != nil {
				closeFn()
				return nil, nil, err
			}
		}
		return postgres.New(conn), closeFn, nil

	case config.StoreDriverPostgREST:
		return postgrest.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.StoreTimeout), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("main: неизвестный драйвер хранилища %q", cfg.StoreDriver)
	}
}
