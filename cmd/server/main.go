package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/fittrack/internal/config"
	"github.com/mamadbah2/fittrack/internal/repository"
	"github.com/mamadbah2/fittrack/internal/repository/memory"
	"github.com/mamadbah2/fittrack/internal/repository/mongodb"
	"github.com/mamadbah2/fittrack/internal/repository/sheets"
	"github.com/mamadbah2/fittrack/internal/scheduler"
	"github.com/mamadbah2/fittrack/internal/server/handlers"
	"github.com/mamadbah2/fittrack/internal/server/router"
	commandsvc "github.com/mamadbah2/fittrack/internal/service/commands"
	hydrationsvc "github.com/mamadbah2/fittrack/internal/service/hydration"
	nutritionsvc "github.com/mamadbah2/fittrack/internal/service/nutrition"
	reportingsvc "github.com/mamadbah2/fittrack/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/fittrack/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/fittrack/pkg/clients/whatsapp"
	"github.com/mamadbah2/fittrack/pkg/clock"
	"github.com/mamadbah2/fittrack/pkg/keylock"
	"github.com/mamadbah2/fittrack/pkg/logger"
)

type stores struct {
	mealLogs  repository.MealLogRepository
	water     repository.WaterIntakeRepository
	catalog   repository.MealCatalogRepository
	summaries repository.DailySummaryRepository
	close     func(context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (*stores, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart and the meal catalog starts empty")
		store := memory.NewStore()
		return &stores{
			mealLogs:  store.MealLogs,
			water:     store.Water,
			catalog:   store.Catalog,
			summaries: store.Summaries,
			close:     func(context.Context) error { return nil },
		}, nil
	}

	store, err := mongodb.NewStore(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, log)
	if err != nil {
		return nil, err
	}
	return &stores{
		mealLogs:  store.MealLogs,
		water:     store.Water,
		catalog:   store.Catalog,
		summaries: store.Summaries,
		close:     store.Close,
	}, nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}
	clk := clock.New(loc)

	st, err := openStores(context.Background(), cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to init storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	locks := keylock.New()
	nutritionSvc := nutritionsvc.NewService(st.mealLogs, st.water, st.catalog, st.summaries, locks, clk, baseLogger.Named("svc.nutrition"))
	hydrationSvc := hydrationsvc.NewService(st.water, st.summaries, locks, clk, cfg.Hydration.DefaultGoalMl, baseLogger.Named("svc.hydration"))
	reportingSvc := reportingsvc.NewService(nutritionSvc, hydrationSvc, baseLogger.Named("svc.reporting"))

	deps := scheduler.Deps{
		Nutrition: nutritionSvc,
		Hydration: hydrationSvc,
		Digests:   reportingSvc,
	}

	if cfg.Sheets.Enabled() {
		exporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		deps.Exporter = exporter
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheet id missing, summary export disabled")
	}

	routes := router.Handlers{
		Nutrition: handlers.NewNutritionHandler(nutritionSvc, clk, baseLogger.Named("handlers.nutrition")),
		Hydration: handlers.NewHydrationHandler(hydrationSvc, clk, baseLogger.Named("handlers.hydration")),
		Summary:   handlers.NewSummaryHandler(nutritionSvc, hydrationSvc, clk, baseLogger.Named("handlers.summary")),
	}

	if cfg.WhatsApp.Enabled() {
		whatsClient := whatsappclient.NewClient(whatsappclient.Config{
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			BaseURL:       cfg.WhatsApp.BaseURL,
			APIVersion:    cfg.WhatsApp.APIVersion,
		})
		deps.Notifier = whatsClient
		baseLogger.Info("whatsapp digest delivery enabled")

		if cfg.WhatsApp.WebhookEnabled() {
			dispatcher := commandsvc.NewService(nutritionSvc, hydrationSvc, clk, baseLogger.Named("svc.commands"))
			chatSvc := whatsappsvc.NewChatService(cfg.WhatsApp.VerifyToken, cfg.Reporting.PhoneDirectory(), dispatcher, whatsClient, baseLogger.Named("svc.whatsapp"))
			routes.Webhook = handlers.NewWebhookHandler(chatSvc, baseLogger.Named("handlers.whatsapp"))
			baseLogger.Info("whatsapp chat logging enabled")
		}
	}

	engine := router.New(routes, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, deps, clk, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
