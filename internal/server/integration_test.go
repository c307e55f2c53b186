package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Manikandan2005ms/mindweave/internal/adapter"
	"github.com/Manikandan2005ms/mindweave/internal/analysis"
	"github.com/Manikandan2005ms/mindweave/internal/config"
	"github.com/Manikandan2005ms/mindweave/internal/metrics"
)

type failingAdapter struct{}

func (f *failingAdapter) Name() string  { return "failing" }
func (f *failingAdapter) Model() string { return "failing" }
func (f *failingAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	return "", fmt.Errorf("intentional failure")
}
func (f *failingAdapter) Available() bool { return true }

// fixedAdapter replies with the same text every time.
type fixedAdapter struct {
	reply string
}

func (f *fixedAdapter) Name() string  { return "fixed" }
func (f *fixedAdapter) Model() string { return "fixed" }
func (f *fixedAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	return f.reply, nil
}
func (f *fixedAdapter) Available() bool { return true }

// slowAdapter reports the context state once its delay has elapsed.
type slowAdapter struct {
	delay time.Duration
	done  chan error
}

func (s *slowAdapter) Name() string  { return "slow" }
func (s *slowAdapter) Model() string { return "slow" }
func (s *slowAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	select {
	case <-time.After(s.delay):
		s.done <- nil
		return `{}`, nil
	case <-ctx.Done():
		s.done <- ctx.Err()
		return "", ctx.Err()
	}
}
func (s *slowAdapter) Available() bool { return true }

type analyzeRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.GeminiAPIKey = "test-key"
	return cfg
}

func newTestServer(t *testing.T, a adapter.LLMAdapter, cfg config.Config) *httptest.Server {
	t.Helper()
	return httptest.NewServer(SetupMux(a, cfg))
}

func defaultTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServer(t, &adapter.MockAdapter{}, testConfig())
}

func postAnalyze(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url+"/api/analyze", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestIntegration_AnalyzeFullFlow(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	resp := postAnalyze(t, ts.URL, analyzeRequest{Text: "I think remote work is good because people are happier."})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS Allow-Origin: got %q, want %q", got, "*")
	}
	if reqID := resp.Header.Get("X-Request-ID"); len(reqID) != 32 {
		t.Errorf("X-Request-ID length: got %d, want 32", len(reqID))
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"main_idea", "sub_ideas", "clarity_score", "emotion", "logic_gaps", "improvements"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing key %q", key)
		}
	}

	var score int
	if err := json.Unmarshal(body["clarity_score"], &score); err != nil {
		t.Fatalf("clarity_score not an integer: %v", err)
	}
	if score < 0 || score > 100 {
		t.Errorf("clarity_score out of range: %d", score)
	}

	var emotion analysis.Emotion
	if err := json.Unmarshal(body["emotion"], &emotion); err != nil {
		t.Fatalf("emotion: %v", err)
	}
	if !slices.Contains(analysis.Emotions, emotion) {
		t.Errorf("emotion: got %q, not in enum", emotion)
	}

	for _, key := range []string{"sub_ideas", "logic_gaps", "improvements"} {
		var arr []json.RawMessage
		if err := json.Unmarshal(body[key], &arr); err != nil {
			t.Errorf("%s is not an array: %v", key, err)
		}
	}
}

func TestIntegration_EmptyText(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	tests := []struct {
		name string
		body any
	}{
		{"empty string", analyzeRequest{Text: ""}},
		{"whitespace", analyzeRequest{Text: "   "}},
		{"missing key", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postAnalyze(t, ts.URL, tt.body)
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusBadRequest)
			}
			raw, _ := io.ReadAll(resp.Body)
			if got := strings.TrimSpace(string(raw)); got != `{"error":"Text is required"}` {
				t.Errorf("body: got %s, want %s", got, `{"error":"Text is required"}`)
			}
		})
	}
}

func TestIntegration_HealthFullFlow(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS Allow-Origin: got %q, want %q", got, "*")
	}

	var health struct {
		Status string `json:"status"`
		Model  string `json:"model"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health.Status != "ok" || health.Model != "mock" {
		t.Errorf("health: got %+v", health)
	}
}

func TestIntegration_ModelsFullFlow(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/models")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	var models []adapter.ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("models count: got %d, want 1", len(models))
	}
	if models[0].ID != "mock" {
		t.Errorf("model id: got %q, want %q", models[0].ID, "mock")
	}
}

func TestIntegration_IndexPage(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	for _, path := range []string{"/", "/static/app.js"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status: got %d, want %d", path, resp.StatusCode, http.StatusOK)
		}
	}
}

func TestIntegration_OptionsPreflightCORS(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/analyze", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("Allow-Methods: got %q, want %q", got, "GET, POST, OPTIONS")
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Content-Type") {
		t.Errorf("Allow-Headers: got %q, want to contain Content-Type", got)
	}
}

func TestIntegration_UnknownRoute(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestIntegration_WrongMethod(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/analyze")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}

func TestIntegration_ConcurrentAnalyze(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(analyzeRequest{Text: fmt.Sprintf("thought number %d", i)})
			resp, err := http.Post(ts.URL+"/api/analyze", "application/json", bytes.NewReader(body))
			if err != nil {
				errs <- fmt.Errorf("request %d: %w", i, err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("request %d: status %d", i, resp.StatusCode)
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestIntegration_ClientDisconnectDoesNotCancelModelCall(t *testing.T) {
	slow := &slowAdapter{delay: 200 * time.Millisecond, done: make(chan error, 1)}
	ts := newTestServer(t, slow, testConfig())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	body, _ := json.Marshal(analyzeRequest{Text: "hello"})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, ts.URL+"/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if _, err := http.DefaultClient.Do(req); err == nil {
		t.Fatal("expected error from cancelled client context, got nil")
	}

	select {
	case err := <-slow.done:
		if err != nil {
			t.Errorf("model call was cancelled: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("model call never finished")
	}
}

func TestIntegration_ModelTimeout(t *testing.T) {
	slow := &slowAdapter{delay: 2 * time.Second, done: make(chan error, 1)}
	cfg := testConfig()
	cfg.ModelTimeout = 50 * time.Millisecond
	ts := newTestServer(t, slow, cfg)
	defer ts.Close()

	resp := postAnalyze(t, ts.URL, analyzeRequest{Text: "hello"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(er.Details, "deadline exceeded") {
		t.Errorf("details: got %q, want to contain %q", er.Details, "deadline exceeded")
	}
}

func TestIntegration_AdapterErrorPropagation(t *testing.T) {
	ts := newTestServer(t, &failingAdapter{}, testConfig())
	defer ts.Close()

	resp := postAnalyze(t, ts.URL, analyzeRequest{Text: "hello"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error != "Failed to analyze text" {
		t.Errorf("error: got %q, want %q", er.Error, "Failed to analyze text")
	}
	if !strings.Contains(er.Details, "intentional failure") {
		t.Errorf("details: got %q, want to contain %q", er.Details, "intentional failure")
	}
}

func TestIntegration_NonJSONModelReply(t *testing.T) {
	ts := newTestServer(t, &fixedAdapter{reply: "```json\n{}\n```"}, testConfig())
	defer ts.Close()

	resp := postAnalyze(t, ts.URL, analyzeRequest{Text: "hello"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(er.Details, "invalid character") {
		t.Errorf("details: got %q, want a JSON parse error", er.Details)
	}
}

func TestIntegration_StrictValidation(t *testing.T) {
	cfg := testConfig()
	cfg.ValidateResult = true
	ts := newTestServer(t, &fixedAdapter{reply: `{"main_idea":"only this"}`}, cfg)
	defer ts.Close()

	resp := postAnalyze(t, ts.URL, analyzeRequest{Text: "hello"})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusInternalServerError)
	}
}

func TestIntegration_OversizedBody(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBodyBytes = 64 * 1024
	ts := newTestServer(t, &adapter.MockAdapter{}, cfg)
	defer ts.Close()

	payload := fmt.Sprintf(`{"text":"%s"}`, strings.Repeat("x", 100*1024))
	resp, err := http.Post(ts.URL+"/api/analyze", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want %d", resp.StatusCode, http.StatusRequestEntityTooLarge)
	}
}

func TestIntegration_GeminiEndToEnd(t *testing.T) {
	const reply = `{"main_idea":"gemini says hi","sub_ideas":[],"clarity_score":80,"emotion":"excited","logic_gaps":[],"improvements":[]}`

	var gotPrompt string
	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": reply}}},
			}},
		})
	}))
	defer gemini.Close()

	g, err := adapter.NewGeminiAdapter(context.Background(), adapter.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: gemini.URL + "/",
	})
	if err != nil {
		t.Fatalf("NewGeminiAdapter: %v", err)
	}

	ts := newTestServer(t, g, testConfig())
	defer ts.Close()

	resp := postAnalyze(t, ts.URL, analyzeRequest{Text: "Gemini is fast."})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}
	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != reply {
		t.Errorf("body: got %s, want %s", raw, reply)
	}
	if gotPrompt != analysis.BuildPrompt("Gemini is fast.") {
		t.Errorf("prompt sent to Gemini does not match BuildPrompt output")
	}
}

func TestIntegration_MetricsEndpoint(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	resp := postAnalyze(t, ts.URL, analyzeRequest{Text: "test input"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("analyze status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	// Hit health so the adapter gauge has a sample.
	hr, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	hr.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, http.StatusOK)
	}

	metricsBody, _ := io.ReadAll(resp.Body)
	text := string(metricsBody)

	for _, name := range []string{
		"mindweave_requests_total",
		"mindweave_analyze_duration_seconds",
		"mindweave_input_chars",
		"mindweave_adapter_available",
		"go_goroutines",
	} {
		if !strings.Contains(text, name) {
			t.Errorf("metrics body missing %s", name)
		}
	}
}

func TestIntegration_UnknownPathsDoNotGrowMetricSeries(t *testing.T) {
	ts := defaultTestServer(t)
	defer ts.Close()

	get := func(path string) {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		resp.Body.Close()
	}

	// Seed the catch-all series so the count below is stable.
	get("/junk-seed")
	before := testutil.CollectAndCount(metrics.RequestsTotal)

	for i := 0; i < 200; i++ {
		get(fmt.Sprintf("/junk-%d", i))
	}

	if got := testutil.CollectAndCount(metrics.RequestsTotal); got != before {
		t.Errorf("requests_total series: got %d, want %d", got, before)
	}
}
