package sentiment

import "strings"

// Label classifies the overall tone of a message.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Mood labels derived from sentiment for the journal.
const (
	MoodUplifted  = "uplifted"
	MoodConcerned = "concerned"
	MoodCalm      = "calm"
)

// Marker words span all supported languages on purpose: sentiment is scored
// before or independent of language detection.
var positiveMarkers = []string{
	"happy", "great", "fantastic", "amazing", "love",
	"उत्साहित", "खुश", "bien", "genial", "merci", "gracias",
}

var negativeMarkers = []string{
	"sad", "tired", "angry", "bad", "hate", "alone",
	"triste", "mal", "désolé", "दुखी", "थका",
}

// Detect labels text by majority of marker hits. Ties, including no hits at
// all, are neutral.
func Detect(text string) Label {
	lowered := strings.ToLower(text)

	positive := 0
	for _, marker := range positiveMarkers {
		if strings.Contains(lowered, marker) {
			positive++
		}
	}
	negative := 0
	for _, marker := range negativeMarkers {
		if strings.Contains(lowered, marker) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return Positive
	case negative > positive:
		return Negative
	default:
		return Neutral
	}
}

var moodBySentiment = map[Label]string{
	Positive: MoodUplifted,
	Negative: MoodConcerned,
	Neutral:  MoodCalm,
}

// Mood maps a sentiment label onto the journal's mood vocabulary. Unknown
// labels return fallback, or "calm" when fallback is empty.
func Mood(label Label, fallback string) string {
	if mood, ok := moodBySentiment[label]; ok {
		return mood
	}
	if fallback == "" {
		return MoodCalm
	}
	return fallback
}
