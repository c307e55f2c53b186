package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Manikandan2005ms/mindweave/internal/analysis"
	"github.com/Manikandan2005ms/mindweave/internal/metrics"
	"github.com/Manikandan2005ms/mindweave/internal/middleware"
)

const failedToAnalyze = "Failed to analyze text"

// DurationHeader carries the model round-trip time, since the body is relayed as-is.
const DurationHeader = "X-Analyze-Duration-Ms"

type analyzeRequest struct {
	Text string `json:"text"`
}

// Analyze serves POST /api/analyze. On success the model's JSON is written
// byte for byte; every model-side failure maps to one 500 shape.
func Analyze(an *analysis.Analyzer, model string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			var typeErr *json.UnmarshalTypeError
			switch {
			case errors.As(err, &maxBytesErr):
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			case errors.Is(err, io.EOF), errors.As(err, &typeErr):
				// No body, or no usable string: same as a missing text field.
				req.Text = ""
			default:
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
		}

		if trimmed := strings.TrimSpace(req.Text); trimmed != "" {
			metrics.InputChars.Observe(float64(utf8.RuneCountInString(trimmed)))
		}

		start := time.Now()
		result, err := an.Analyze(r.Context(), req.Text)
		elapsed := time.Since(start)

		if err != nil {
			var verr *analysis.ValidationError
			if errors.As(err, &verr) {
				writeError(w, http.StatusBadRequest, verr.Msg)
				return
			}

			stage, details := analysis.StageGenerate, err.Error()
			var merr *analysis.ModelResponseError
			if errors.As(err, &merr) {
				stage, details = merr.Stage, merr.Details()
			}
			metrics.AnalyzeDuration.WithLabelValues(model).Observe(elapsed.Seconds())
			metrics.AnalyzeFailures.WithLabelValues(stage).Inc()
			slog.Error("analysis failed",
				"request_id", middleware.RequestIDFromContext(r.Context()),
				"model", model,
				"stage", stage,
				"error", details,
			)
			writeJSON(w, http.StatusInternalServerError, modelErrorResponse{
				Error:   failedToAnalyze,
				Details: details,
			})
			return
		}

		metrics.AnalyzeDuration.WithLabelValues(model).Observe(elapsed.Seconds())
		slog.Debug("analysis complete",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"model", model,
			"elapsed_ms", elapsed.Milliseconds(),
			"bytes", len(result),
		)

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set(DurationHeader, strconv.FormatInt(elapsed.Milliseconds(), 10))
		w.WriteHeader(http.StatusOK)
		w.Write(result)
	}
}
