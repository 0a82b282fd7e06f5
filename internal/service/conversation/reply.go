package conversation

import (
	"fmt"

	"github.com/mindloom/companion-ai/backend/internal/analysis/language"
	"github.com/mindloom/companion-ai/backend/internal/analysis/sentiment"
)

// Per-language reply frames. The first placeholder takes the sentiment
// clause, the second the user's message.
var replyTemplates = map[language.Tag]string{
	language.English: "I hear you. %s You said: '%s'.",
	language.Spanish: "Te escucho. %s Dijiste: '%s'.",
	language.French:  "Je t'écoute. %s Tu as dit : '%s'.",
	language.Hindi:   "मैं सुन रहा हूँ। %s आपने कहा: '%s'.",
}

var sentimentClauses = map[sentiment.Label]map[language.Tag]string{
	sentiment.Positive: {
		language.English: "That sounds uplifting!",
		language.Spanish: "¡Eso suena alentador!",
		language.French:  "Cela semble encourageant !",
		language.Hindi:   "यह बहुत अच्छा लग रहा है!",
	},
	sentiment.Negative: {
		language.English: "I'm sorry you're feeling this way.",
		language.Spanish: "Siento que te sientas así.",
		language.French:  "Je suis désolé que tu te sentes ainsi.",
		language.Hindi:   "मुझे अफ़सोस है कि आप ऐसा महसूस कर रहे हैं।",
	},
	sentiment.Neutral: {
		language.English: "Thanks for sharing with me.",
		language.Spanish: "Gracias por compartir conmigo.",
		language.French:  "Merci de partager avec moi.",
		language.Hindi:   "मुझसे साझा करने के लिए धन्यवाद।",
	},
}

// FormatReply builds the localized reply for a turn. Unknown languages fall
// back to English, unknown sentiments to the neutral clause. The message is
// substituted verbatim; replies only ever leave the service as JSON, so
// escaping belongs to whatever renders them.
func FormatReply(tag language.Tag, message string, label sentiment.Label) string {
	template, ok := replyTemplates[tag]
	if !ok {
		template = replyTemplates[language.English]
	}

	clauses, ok := sentimentClauses[label]
	if !ok {
		clauses = sentimentClauses[sentiment.Neutral]
	}
	clause, ok := clauses[tag]
	if !ok {
		clause = sentimentClauses[sentiment.Neutral][language.English]
	}

	return fmt.Sprintf(template, clause, message)
}
