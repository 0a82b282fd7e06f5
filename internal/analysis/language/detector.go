package language

import "strings"

// Tag identifies a supported reply language.
type Tag string

const (
	English Tag = "en"
	Spanish Tag = "es"
	French  Tag = "fr"
	Hindi   Tag = "hi"
)

// detectionOrder fixes the tie-break: when two languages score equally, the
// earlier entry wins.
var detectionOrder = []Tag{English, Spanish, French, Hindi}

var markerWords = map[Tag][]string{
	English: {"the", "you", "is", "friend", "hello"},
	Spanish: {"hola", "gracias", "amigo", "estoy", "buen"},
	French:  {"bonjour", "merci", "ami", "bien", "suis"},
	Hindi:   {"namaste", "dhanyavad", "dost", "kaise", "hain"},
}

// Detect guesses the language of text by counting marker-word hits, falling
// back to character-class checks when no marker matches. It always returns
// one of the supported tags.
func Detect(text string) Tag {
	lowered := strings.ToLower(text)

	best := English
	bestScore := 0
	for _, tag := range detectionOrder {
		score := 0
		for _, marker := range markerWords[tag] {
			if strings.Contains(lowered, marker) {
				score++
			}
		}
		if score > bestScore {
			best = tag
			bestScore = score
		}
	}
	if bestScore > 0 {
		return best
	}

	if strings.ContainsAny(lowered, "¿¡ñ") {
		return Spanish
	}
	if strings.ContainsAny(lowered, "éèçà") {
		return French
	}
	for _, r := range lowered {
		if r > 127 {
			return Hindi
		}
	}
	return English
}
