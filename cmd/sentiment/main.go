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
	"SecondChance/internal/sentiment"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() { _ = logger.Sync() }()

	// полный AFINN-165 подключается файлом, иначе встроенный словарь
	var analyzer *sentiment.Analyzer
	if cfg.SentimentLexicon != "" {
		analyzer, err = sentiment.NewAnalyzerFromFile(cfg.SentimentLanguage, cfg.SentimentLexicon)
	} else {
		analyzer, err = sentiment.NewAnalyzer(cfg.SentimentLanguage)
	}
	if err != nil {
		sugar.Fatalw("failed to initialize sentiment analyzer",
			"language", cfg.SentimentLanguage, "lexicon", cfg.SentimentLexicon, "error", err)
	}

	h := handlers.NewSentimentHandler(analyzer, sugar, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         cfg.SentimentAddr,
		Handler:      h.Router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server running", "addr", cfg.SentimentAddr, "language", cfg.SentimentLanguage, "lexicon", cfg.SentimentLexicon)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server forced to shutdown", "error", err)
	}
}
