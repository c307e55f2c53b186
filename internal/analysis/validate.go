package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var requiredFields = []string{
	"main_idea",
	"sub_ideas",
	"clarity_score",
	"emotion",
	"logic_gaps",
	"improvements",
}

// Validate checks that raw is a JSON object shaped like Result:
// every field present and non-null, clarity_score an integer in [0,100]
// and emotion one of Emotions. Unknown extra fields are allowed.
func Validate(raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("result is not a JSON object: %w", err)
	}
	if fields == nil {
		return errors.New("result is not a JSON object: null")
	}

	for _, name := range requiredFields {
		v, ok := fields[name]
		if !ok {
			return fmt.Errorf("missing field %q", name)
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("field %q is null", name)
		}
	}

	var mainIdea string
	if err := json.Unmarshal(fields["main_idea"], &mainIdea); err != nil {
		return fmt.Errorf("main_idea: %w", err)
	}

	var subIdeas []SubIdea
	if err := json.Unmarshal(fields["sub_ideas"], &subIdeas); err != nil {
		return fmt.Errorf("sub_ideas: %w", err)
	}

	var score float64
	if err := json.Unmarshal(fields["clarity_score"], &score); err != nil {
		return fmt.Errorf("clarity_score: %w", err)
	}
	if score != math.Trunc(score) {
		return fmt.Errorf("clarity_score: %v is not an integer", score)
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("clarity_score: %v out of range [0,100]", score)
	}

	var emotion Emotion
	if err := json.Unmarshal(fields["emotion"], &emotion); err != nil {
		return fmt.Errorf("emotion: %w", err)
	}
	if !emotion.Valid() {
		return fmt.Errorf("emotion: unknown value %q", emotion)
	}

	for _, name := range []string{"logic_gaps", "improvements"} {
		var items []string
		if err := json.Unmarshal(fields[name], &items); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}
