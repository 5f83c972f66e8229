package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"SecondChance/internal/config"
	"SecondChance/internal/handlers"
	"SecondChance/internal/middleware"
	"SecondChance/internal/repo"
	"SecondChance/internal/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	zap.ReplaceGlobals(logger)  // gorm пишет через глобальный логгер
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn := repo.NewConnector(cfg.DatabaseDSN)
	gormDB, err := conn.DB()
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			sugar.Errorw("Failed to close database", "error", err)
		}
	}()

	userService := service.NewUserService(repo.NewUserRepository(gormDB), cfg.AuthSecret, cfg.TokenTTL)
	itemService := service.NewItemService(repo.NewItemRepository(gormDB), sugar)

	h := handlers.NewHandler(userService, itemService, sugar, cfg)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"UploadDir", cfg.UploadDir,
		"UploadMaxMB", cfg.UploadMaxMB,
		"TokenTTL", cfg.TokenTTL,
	)

	serve(ctx, sugar, cfg.BaseURL, h.Router)
}

// serve запускает HTTP-сервер и корректно останавливает его по сигналу.
func serve(ctx context.Context, sugar *zap.SugaredLogger, addr string, handler http.Handler) {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server forced to shutdown", "error", err)
		}
		sugar.Infow("Server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}
}
