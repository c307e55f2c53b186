package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Manikandan2005ms/mindweave/internal/adapter"
	"github.com/Manikandan2005ms/mindweave/internal/analysis"
	"github.com/Manikandan2005ms/mindweave/internal/config"
	"github.com/Manikandan2005ms/mindweave/internal/handler"
	"github.com/Manikandan2005ms/mindweave/internal/middleware"
	"github.com/Manikandan2005ms/mindweave/internal/web"
)

// timeoutSlack leaves room past the model timeout to write the 500 reply.
const timeoutSlack = 5 * time.Second

// SetupMux wires handlers with the full middleware chain.
func SetupMux(a adapter.LLMAdapter, cfg config.Config) http.Handler {
	an := &analysis.Analyzer{
		Generator: a,
		Timeout:   cfg.ModelTimeout,
		Strict:    cfg.ValidateResult,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", web.Index())
	mux.Handle("/static/", web.Static())
	mux.HandleFunc("/api/analyze", handler.Analyze(an, a.Model()))
	mux.HandleFunc("/api/health", handler.Health(a, a.Model()))
	mux.HandleFunc("/api/models", handler.Models([]adapter.ModelInfo{adapter.Info(a)}))
	mux.Handle("/metrics", promhttp.Handler())

	var timeout time.Duration
	if cfg.ModelTimeout > 0 {
		timeout = cfg.ModelTimeout + timeoutSlack
	}
	return middleware.Chain(mux, cfg.MaxBodyBytes, timeout)
}
