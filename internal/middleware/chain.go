package middleware

import (
	"net/http"
	"time"
)

const timeoutBody = `{"error":"request timeout"}`

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → MaxBytes → Timeout → mux
func Chain(handler http.Handler, maxBodyBytes int64, timeout time.Duration) http.Handler {
	h := handler
	if timeout > 0 {
		h = http.TimeoutHandler(h, timeout, timeoutBody)
	}
	h = MaxBytes(maxBodyBytes)(h)
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
