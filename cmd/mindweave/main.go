package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Manikandan2005ms/mindweave/internal/adapter"
	"github.com/Manikandan2005ms/mindweave/internal/config"
	"github.com/Manikandan2005ms/mindweave/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	envFile := flag.String("env-file", ".env", "path to a .env file (missing file is ignored)")
	useMock := flag.Bool("mock", false, "use mock adapter instead of Gemini")
	port := flag.Int("port", 0, "override listen port")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fatal("env file", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("config", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	setupLogger(cfg.LogLevel, cfg.LogFormat)

	llm, err := buildAdapter(cfg, *useMock)
	if err != nil {
		fatal("startup", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.SetupMux(llm, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("mindweave api listening", "addr", addr, "model", llm.Model())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server", err)
		}
	}()

	<-done
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fatal("shutdown", err)
	}
	slog.Info("server stopped")
}

func buildAdapter(cfg config.Config, useMock bool) (adapter.LLMAdapter, error) {
	if useMock {
		slog.Info("mode: mock adapter enabled")
		return &adapter.MockAdapter{Delay: 500 * time.Millisecond}, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := adapter.NewGeminiAdapter(context.Background(), adapter.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.ModelTimeout},
	})
	if err != nil {
		return nil, err
	}
	slog.Info("mode: gemini", "model", g.Model())
	return g, nil
}

func setupLogger(level, format string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func fatal(what string, err error) {
	slog.Error(what, "error", err)
	os.Exit(1)
}
