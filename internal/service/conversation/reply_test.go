package conversation

import (
	"strings"
	"testing"

	"github.com/mindloom/companion-ai/backend/internal/analysis/language"
	"github.com/mindloom/companion-ai/backend/internal/analysis/sentiment"
)

func TestFormatReplyContainsClauseAndMessage(t *testing.T) {
	message := "just checking in"
	for tag := range replyTemplates {
		for label, clauses := range sentimentClauses {
			reply := FormatReply(tag, message, label)
			if !strings.Contains(reply, clauses[tag]) {
				t.Fatalf("reply %q for (%s, %s) missing clause %q", reply, tag, label, clauses[tag])
			}
			if !strings.Contains(reply, message) {
				t.Fatalf("reply %q for (%s, %s) missing message", reply, tag, label)
			}
		}
	}
}

func TestFormatReplyUnknownLanguageDefaultsToEnglish(t *testing.T) {
	reply := FormatReply("de", "wie geht's", sentiment.Positive)
	if !strings.HasPrefix(reply, "I hear you.") {
		t.Fatalf("expected english template, got %q", reply)
	}
	if !strings.Contains(reply, "That sounds uplifting!") {
		t.Fatalf("expected english positive clause, got %q", reply)
	}
}

func TestFormatReplyUnknownSentimentDefaultsToNeutral(t *testing.T) {
	reply := FormatReply(language.Spanish, "hola", "confused")
	if !strings.Contains(reply, "Gracias por compartir conmigo.") {
		t.Fatalf("expected spanish neutral clause, got %q", reply)
	}
}

func TestFormatReplyKeepsMessageVerbatim(t *testing.T) {
	message := `<b>it's "fine"</b>`
	reply := FormatReply(language.English, message, sentiment.Neutral)
	if !strings.Contains(reply, message) {
		t.Fatalf("message was altered in reply %q", reply)
	}
}
