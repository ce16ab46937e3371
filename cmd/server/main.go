package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/offerte-app/offerte/internal/config"
	"github.com/offerte-app/offerte/internal/export"
	"github.com/offerte-app/offerte/internal/logger"
	"github.com/offerte-app/offerte/internal/selftest"
	"github.com/offerte-app/offerte/internal/server"
	"github.com/offerte-app/offerte/internal/services"
	"github.com/offerte-app/offerte/internal/store"
)

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duur", time.Since(start)).
			Msg("request")
	})
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Log.Fatal().Err(err).Str("pad", cfg.DatabasePath).Msg("database openen mislukt")
	}

	// Diagnostic battery over the pure helpers, logged at startup.
	results := selftest.Run()
	for _, r := range results {
		if !r.Pass {
			logger.Log.Error().Str("test", r.Name).Str("verwacht", r.Expected).Str("kreeg", r.Got).Msg("zelftest mislukt")
		}
	}
	if selftest.AllPass(results) {
		logger.Log.Info().Int("tests", len(results)).Msg("zelftests geslaagd")
	}

	capturer := export.NewChromeCapturer(export.ChromeConfig{
		ChromePath: cfg.ChromePath,
		NoSandbox:  cfg.ChromeNoSandbox,
		Timeout:    cfg.CaptureTimeout,
	})
	defer capturer.Close()

	docs := services.NewDocumentService(st)
	quotes := services.NewQuoteService()
	exporter := services.NewExportService(docs, quotes, export.NewBuilder(capturer))
	dispatch := services.NewDispatchService(docs, quotes, exporter)

	handler := server.New(docs, quotes, exporter, dispatch)
	srv := &http.Server{Addr: cfg.Addr, Handler: withLogging(handler)}

	go func() {
		logger.Log.Info().Str("addr", srv.Addr).Msg("server gestart")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutdown signaal ontvangen")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("fout tijdens shutdown")
	}
	logger.Log.Info().Msg("server gestopt")
}
