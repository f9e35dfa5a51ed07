package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"instructchat/internal/config"
	"instructchat/internal/contextutil"
	"instructchat/internal/device"
	"instructchat/internal/http"
	"instructchat/internal/llm"
	"instructchat/internal/model"
	"instructchat/internal/service"
	"instructchat/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the model once; a failed load keeps the server up and serves the error page.
	runtime := llm.NewRuntime(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, cfg.LLMTimeout, cfg.ModelLoadTimeout)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName, "device", cfg.Device)

	session := model.NewSession(
		contextutil.WithLogger(ctx, logger.With("component", "model")),
		runtime,
		device.NewDetector(),
		model.Options{
			ModelID:    cfg.LLMModelName,
			DeviceMode: cfg.Device,
			GPULayers:  cfg.GPULayers,
		},
	)
	if err := session.Err(); err != nil {
		slog.Error("Model session unavailable; serving error page", "error", err)
	}

	history, closeHistory, err := newHistory(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize chat history: %v", err)
	}
	defer closeHistory()

	controller := service.NewChatController(session, history)

	router := http.NewRouter(&http.Deps{
		Controller:          controller,
		Session:             session,
		AppTitle:            cfg.AppTitle,
		AppFooter:           cfg.AppFooter,
		DefaultMaxNewTokens: cfg.DefaultMaxNewTokens,
		RateLimitRPS:        cfg.RateLimitRPS,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr, "model_available", session.Available())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}

// newHistory picks the history store. History never outlives the process, so a SQLite
// store is emptied at startup.
func newHistory(ctx context.Context, cfg *config.Config) (service.History, func(), error) {
	if cfg.HistoryDBPath == "" {
		slog.Info("Chat history kept in memory")
		return service.NewMemoryHistory(), func() {}, nil
	}

	db, err := storage.New(cfg.HistoryDBPath)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		_ = db.Close()
	}

	if err := storage.Migrate(db); err != nil {
		closeDB()
		return nil, nil, err
	}

	repo := storage.NewTurnRepo(db)
	if err := repo.Clear(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	slog.Info("Chat history stored in SQLite", "path", cfg.HistoryDBPath)
	return repo, closeDB, nil
}
