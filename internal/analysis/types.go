package analysis

// Emotion is the dominant tone the model assigns to a piece of text.
type Emotion string

const (
	EmotionNeutral   Emotion = "neutral"
	EmotionConfident Emotion = "confident"
	EmotionAnxious   Emotion = "anxious"
	EmotionExcited   Emotion = "excited"
	EmotionSad       Emotion = "sad"
	EmotionAngry     Emotion = "angry"
	EmotionMixed     Emotion = "mixed"
)

// Emotions lists every value the prompt allows, in prompt order.
var Emotions = []Emotion{
	EmotionNeutral,
	EmotionConfident,
	EmotionAnxious,
	EmotionExcited,
	EmotionSad,
	EmotionAngry,
	EmotionMixed,
}

// Valid reports whether e is one of the enumerated emotions.
func (e Emotion) Valid() bool {
	for _, v := range Emotions {
		if e == v {
			return true
		}
	}
	return false
}

// SubIdea is one supporting idea extracted from the text.
type SubIdea struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Result mirrors the JSON object the model is instructed to return.
// Relayed responses are never re-encoded through this type.
type Result struct {
	MainIdea     string    `json:"main_idea"`
	SubIdeas     []SubIdea `json:"sub_ideas"`
	ClarityScore int       `json:"clarity_score"`
	Emotion      Emotion   `json:"emotion"`
	LogicGaps    []string  `json:"logic_gaps"`
	Improvements []string  `json:"improvements"`
}
