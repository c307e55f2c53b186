package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Manikandan2005ms/mindweave/internal/analysis"
	"github.com/Manikandan2005ms/mindweave/internal/handler"
)

type healthInfo struct {
	Model string `json:"model"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type result struct {
	Sample       string `json:"sample"`
	Chars        int    `json:"chars"`
	Run          int    `json:"run"`
	ElapsedMs    int64  `json:"elapsed_ms"`
	WallMs       int64  `json:"wall_ms"`
	ClarityScore int    `json:"clarity_score"`
	Emotion      string `json:"emotion"`
	Gaps         int    `json:"logic_gaps"`
	Error        string `json:"error,omitempty"`
}

func main() {
	url := flag.String("url", "http://localhost:5000", "API base URL")
	runs := flag.Int("runs", 3, "Number of runs per sample")
	quality := flag.Bool("quality", false, "Quality mode: show input and analysis for each sample (1 run, no timing table)")
	jsonOut := flag.String("json", "", "Write results to JSON file (e.g. results.json)")
	warmup := flag.Bool("warmup", false, "Run one warmup request per sample before measuring")
	flag.Parse()

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 180 * time.Second}

	model := discoverModel(client, baseURL)

	if *quality {
		runQualityMode(client, baseURL, model)
		return
	}

	fmt.Printf("Benchmarking against %s using model: %s (%d runs per sample", baseURL, model, *runs)
	if *warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		if *warmup {
			fmt.Printf("  Warming up %s...", sample.Name)
			w := benchmark(client, baseURL, sample, 0)
			if w.Error != "" {
				fmt.Printf(" FAILED (%s)\n", w.Error)
			} else {
				fmt.Printf(" %dms (discarded)\n", w.ElapsedMs)
			}
		}
		for run := 1; run <= *runs; run++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, run, *runs)
			r := benchmark(client, baseURL, sample, run)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.ElapsedMs)
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, results, baseURL, model); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

func discoverModel(client *http.Client, baseURL string) string {
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching health: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Health endpoint returned %d: %s\n", resp.StatusCode, body)
		os.Exit(1)
	}

	var h healthInfo
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding health: %v\n", err)
		os.Exit(1)
	}
	return h.Model
}

// analyze posts one sample and returns the decoded result, the server-side
// duration and the wall time.
func analyze(client *http.Client, baseURL, text string) (analysis.Result, int64, int64, error) {
	payload, _ := json.Marshal(analyzeRequest{Text: text})

	start := time.Now()
	resp, err := client.Post(baseURL+"/api/analyze", "application/json", strings.NewReader(string(payload)))
	wallMs := time.Since(start).Milliseconds()
	if err != nil {
		return analysis.Result{}, 0, wallMs, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return analysis.Result{}, 0, wallMs, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r analysis.Result
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return analysis.Result{}, 0, wallMs, err
	}

	elapsed, err := strconv.ParseInt(resp.Header.Get(handler.DurationHeader), 10, 64)
	if err != nil {
		elapsed = wallMs
	}
	return r, elapsed, wallMs, nil
}

func benchmark(client *http.Client, baseURL string, sample Sample, run int) result {
	r, elapsed, wall, err := analyze(client, baseURL, sample.Text)
	if err != nil {
		return result{Sample: sample.Name, Chars: len(sample.Text), Run: run, WallMs: wall, Error: err.Error()}
	}
	return result{
		Sample:       sample.Name,
		Chars:        len(sample.Text),
		Run:          run,
		ElapsedMs:    elapsed,
		WallMs:       wall,
		ClarityScore: r.ClarityScore,
		Emotion:      string(r.Emotion),
		Gaps:         len(r.LogicGaps),
	}
}

func printTable(results []result) {
	fmt.Println("| Sample | Chars | Run | Elapsed (ms) | Wall (ms) | Clarity | Emotion    | Gaps |")
	fmt.Println("|--------|-------|-----|--------------|-----------|---------|------------|------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-6s | %5d | %d | %12s | %9s | %7s | %-10s | %4s |\n",
				r.Sample, r.Chars, r.Run, "FAIL", "-", "-", "-", "-")
			continue
		}
		fmt.Printf("| %-6s | %5d | %d | %12d | %9d | %7d | %-10s | %4d |\n",
			r.Sample, r.Chars, r.Run, r.ElapsedMs, r.WallMs, r.ClarityScore, r.Emotion, r.Gaps)
	}
}

func runQualityMode(client *http.Client, baseURL, model string) {
	fmt.Printf("Quality test against %s using model: %s\n", baseURL, model)
	fmt.Println(strings.Repeat("=", 72))

	var failures int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s (%d chars) ---\n", i+1, len(QualitySamples), sample.Name, len(sample.Text))
		fmt.Printf("IN:      %s\n", sample.Text)

		r, elapsed, _, err := analyze(client, baseURL, sample.Text)
		if err != nil {
			fmt.Printf("ERR:     %s\n", err)
			failures++
			continue
		}

		fmt.Printf("IDEA:    %s\n", r.MainIdea)
		fmt.Printf("EMOTION: %s  CLARITY: %d\n", r.Emotion, r.ClarityScore)
		for _, gap := range r.LogicGaps {
			fmt.Printf("GAP:     %s\n", gap)
		}
		for _, imp := range r.Improvements {
			fmt.Printf("TIP:     %s\n", imp)
		}
		fmt.Printf("         [%dms, %d sub-ideas]\n", elapsed, len(r.SubIdeas))
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed\n", len(QualitySamples)-failures, len(QualitySamples))
	if failures > 0 {
		os.Exit(1)
	}
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalElapsed int64
	var totalChars, totalScore int
	minElapsed := ok[0].ElapsedMs
	maxElapsed := ok[0].ElapsedMs
	minSample := ok[0].Sample
	maxSample := ok[0].Sample

	for _, r := range ok {
		totalElapsed += r.ElapsedMs
		totalChars += r.Chars
		totalScore += r.ClarityScore
		if r.ElapsedMs < minElapsed {
			minElapsed = r.ElapsedMs
			minSample = r.Sample
		}
		if r.ElapsedMs > maxElapsed {
			maxElapsed = r.ElapsedMs
			maxSample = r.Sample
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg ms/char: %.2f\n", float64(totalElapsed)/float64(totalChars))
	fmt.Printf("- Avg clarity: %.1f\n", float64(totalScore)/float64(len(ok)))
	fmt.Printf("- Min elapsed: %dms (%s)\n", minElapsed, minSample)
	fmt.Printf("- Max elapsed: %dms (%s)\n", maxElapsed, maxSample)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Model     string   `json:"model"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, baseURL, model string) error {
	report := jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Model:     model,
		Results:   results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
