package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Manikandan2005ms/mindweave/internal/metrics"
)

const otherLabel = "other"

// routeLabels is the closed set of path labels. Anything else counts as "other".
var routeLabels = map[string]bool{
	"/":            true,
	"/api/analyze": true,
	"/api/health":  true,
	"/api/models":  true,
	"/metrics":     true,
}

var methodLabels = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// Metrics records request count by method, route, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(methodLabel(r.Method), pathLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}

func pathLabel(path string) string {
	if routeLabels[path] {
		return path
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static/"
	}
	return otherLabel
}

func methodLabel(method string) string {
	if methodLabels[method] {
		return method
	}
	return otherLabel
}
