package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/arsonstech/fieldservice/internal/config"
	"github.com/arsonstech/fieldservice/internal/repository/mongodb"
	"github.com/arsonstech/fieldservice/internal/scheduler"
	"github.com/arsonstech/fieldservice/internal/server/handlers"
	"github.com/arsonstech/fieldservice/internal/server/router"
	"github.com/arsonstech/fieldservice/internal/service/reminder"
	"github.com/arsonstech/fieldservice/internal/service/report"
	"github.com/arsonstech/fieldservice/pkg/clients/mail"
	"github.com/arsonstech/fieldservice/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	mailer, err := mail.New(context.Background(), cfg.Mail)
	if err != nil {
		baseLogger.Fatal("failed to init mail transport", zap.Error(err))
	}

	reminderSvc := reminder.NewService(repo.Customers(), mailer, baseLogger.Named("svc.reminder"))
	reportSvc := report.NewService()

	engineHandler := handlers.NewEngineHandler(repo.Engines(), reportSvc, baseLogger.Named("handlers.engines"))
	customerHandler := handlers.NewCustomerHandler(repo.Customers(), reportSvc, baseLogger.Named("handlers.customers"))
	engine := router.New(engineHandler, customerHandler, baseLogger.Named("router"))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	sched := scheduler.NewScheduler(cfg.Reminder, reminderSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      corsHandler.Handler(engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
