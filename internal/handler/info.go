package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Manikandan2005ms/mindweave/internal/adapter"
	"github.com/Manikandan2005ms/mindweave/internal/metrics"
)

type adapterStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type healthResponse struct {
	Status  string        `json:"status"`
	Model   string        `json:"model"`
	Adapter adapterStatus `json:"adapter"`
}

// Health reports liveness plus whether the model adapter is usable.
// The process itself is "ok" even when the adapter is not.
func Health(a adapter.LLMAdapter, model string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := adapterStatus{Name: a.Name(), Available: a.Available()}
		gauge := 0.0
		if s.Available {
			gauge = 1
		} else {
			s.Reason = unavailableReason(a)
		}
		metrics.AdapterAvailable.WithLabelValues(a.Name()).Set(gauge)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthResponse{
			Status:  "ok",
			Model:   model,
			Adapter: s,
		})
	}
}

func unavailableReason(a adapter.LLMAdapter) string {
	switch a.(type) {
	case *adapter.GeminiAdapter:
		return "no API key"
	default:
		return "unavailable"
	}
}

// Models lists the models this server can analyze with.
func Models(models []adapter.ModelInfo) http.HandlerFunc {
	if models == nil {
		models = []adapter.ModelInfo{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models)
	}
}
