package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Manikandan2005ms/mindweave/internal/analysis"
)

// MockAdapter returns a canned, schema-shaped analysis after a configurable delay.
// Used for development and testing without a Gemini API key.
type MockAdapter struct {
	Delay time.Duration
}

func (m *MockAdapter) Name() string { return "Mock" }

func (m *MockAdapter) Model() string { return "mock" }

func (m *MockAdapter) Generate(ctx context.Context, prompt string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	text := userText(prompt)
	words := len(strings.Fields(text))

	score := 40 + words*2
	if score > 95 {
		score = 95
	}

	result := analysis.Result{
		MainIdea: firstSentence(text),
		SubIdeas: []analysis.SubIdea{
			{Title: "Core claim", Summary: fmt.Sprintf("The text makes its point in %d words.", words)},
		},
		ClarityScore: score,
		Emotion:      analysis.EmotionNeutral,
		LogicGaps:    []string{},
		Improvements: []string{"Support the main claim with a concrete example."},
	}
	if !strings.Contains(strings.ToLower(text), "because") {
		result.LogicGaps = append(result.LogicGaps, "No reason is given for the main claim.")
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("mock: marshal result: %w", err)
	}
	return string(out), nil
}

func (m *MockAdapter) Available() bool { return true }

// userText pulls the payload back out of a prompt built by analysis.BuildPrompt.
func userText(prompt string) string {
	_, rest, ok := strings.Cut(prompt, analysis.TextOpen)
	if !ok {
		return strings.TrimSpace(prompt)
	}
	if i := strings.LastIndex(rest, analysis.TextClose); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}

const maxIdeaRunes = 120

func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".!?\n"); i >= 0 {
		s = s[:i+1]
	}
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxIdeaRunes {
		s = string(r[:maxIdeaRunes]) + "..."
	}
	return s
}
