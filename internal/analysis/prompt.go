package analysis

import "strings"

const systemPrompt = `
You are MindWeave, an AI that analyzes human thinking.

Given a piece of text that represents a user's thoughts, ideas, or explanation, you MUST return a STRICT JSON object with the following structure:

{
  "main_idea": "short one sentence summary of the overall idea",
  "sub_ideas": [
    {
      "title": "short title",
      "summary": "2-3 sentence explanation"
    }
  ],
  "clarity_score": 0,
  "emotion": "one of: neutral, confident, anxious, excited, sad, angry, mixed",
  "logic_gaps": [
    "description of a missing reason or unclear step"
  ],
  "improvements": [
    "specific suggestion to clarify or strengthen the idea"
  ]
}

Rules:
- clarity_score is an integer 0–100 (higher = more clear and logically structured).
- If there are no logic issues, logic_gaps can be an empty array.
- improvements should be concrete and actionable.
- Respond ONLY with valid JSON, no extra text.
`

// Delimiters wrapped around the user text so the model can tell payload from instructions.
const (
	TextOpen  = "\n\nUSER_TEXT:\n\"\"\"\n"
	TextClose = "\n\"\"\"\n"
)

// SystemPrompt returns the fixed instruction block.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt appends the delimited user text to the system prompt.
// The text is embedded as-is; the delimiters are a convention, not an escape.
func BuildPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(systemPrompt) + len(TextOpen) + len(text) + len(TextClose))
	b.WriteString(systemPrompt)
	b.WriteString(TextOpen)
	b.WriteString(text)
	b.WriteString(TextClose)
	return b.String()
}
