package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Arshath015/Ekonomi/config"
	"github.com/Arshath015/Ekonomi/internal/delivery/rest"
	"github.com/Arshath015/Ekonomi/internal/delivery/telegram"
	"github.com/Arshath015/Ekonomi/internal/infrastructure/gemini"
	"github.com/Arshath015/Ekonomi/internal/infrastructure/scraper"
	"github.com/Arshath015/Ekonomi/internal/infrastructure/search"
	"github.com/Arshath015/Ekonomi/internal/infrastructure/spreadsheet"
	"github.com/Arshath015/Ekonomi/internal/infrastructure/storage"
	"github.com/Arshath015/Ekonomi/internal/metrics"
	"github.com/Arshath015/Ekonomi/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Schema is migrated before any repository touches the database
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database ready", "path", cfg.DBPath)

	cacheRepo := storage.NewSQLiteCacheRepository(db)
	chatRepo := storage.NewSQLiteChatRepository(db)

	aiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, gemini.Options{Model: cfg.GeminiModel})
	if err != nil {
		slog.Error("failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	defer aiClient.Close()

	searchClient := search.NewRapidAPIClient(cfg.SearchBaseURL, cfg.SearchHost, cfg.RapidAPIKey, 0)
	pageFetcher := scraper.NewPageFetcher(cfg.OfferFetchTimeout)
	exporter := spreadsheet.NewExcelExporter()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, cacheRepo, cfg.CacheExpiry)

	chatUseCase := usecase.NewChatUseCase(aiClient, chatRepo, m)
	productUseCase := usecase.NewProductUseCase(cacheRepo, searchClient, pageFetcher, exporter, m, usecase.ProductConfig{
		CacheExpiry:       cfg.CacheExpiry,
		USDToINR:          cfg.USDToINR,
		OfferFetchTimeout: cfg.OfferFetchTimeout,
	})

	server := rest.New(rest.Config{
		Addr:         cfg.ServerAddr,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitMax: cfg.RateLimitMax,
	})
	server.RegisterRoutes(
		rest.NewHandler(chatUseCase, productUseCase),
		rest.NewProbeHandler(db),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)

	wg := &sync.WaitGroup{}

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBotHandler(cfg.TelegramToken, chatUseCase, productUseCase)
		if err != nil {
			slog.Error("failed to start telegram bot", "error", err)
			os.Exit(1)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("telegram bot stopped", "error", err)
			}
		}()
	} else {
		slog.Info("telegram bot disabled, set TELEGRAM_BOT_TOKEN to enable")
	}

	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	wg.Wait()
	slog.Info("server exited")
}
