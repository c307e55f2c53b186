package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Generator is the model boundary: one prompt in, JSON text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns user text into the model's JSON judgment of it.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	Generator Generator
	// Timeout bounds a single model call. Zero means no bound.
	Timeout time.Duration
	// Strict rejects replies that parse as JSON but do not match Result.
	Strict bool
}

// Analyze validates text, calls the model once and returns its reply untouched.
//
// The model call is detached from ctx cancellation so a caller hanging up does
// not abort an in-flight request; values such as the request ID still flow.
func (a *Analyzer) Analyze(ctx context.Context, text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	ctx = context.WithoutCancel(ctx)
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	out, err := a.Generator.Generate(ctx, BuildPrompt(text))
	if err != nil {
		return nil, &ModelResponseError{Stage: StageGenerate, Err: err}
	}

	var probe json.RawMessage
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return nil, &ModelResponseError{Stage: StageParse, Err: err}
	}

	if a.Strict {
		if err := Validate([]byte(out)); err != nil {
			return nil, &ModelResponseError{Stage: StageSchema, Err: err}
		}
	}

	return json.RawMessage(out), nil
}
