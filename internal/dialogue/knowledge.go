package dialogue

import "strings"

var questionCues = []string{"what", "how", "explain", "tell me"}

// LookupKnowledge finds a canned answer for a user question.
// Topic keywords are tried in table order; if none match but the text
// carries a question cue, the generic fallback is returned. An empty string
// means "no answer" and the caller decides what to do with the turn.
func LookupKnowledge(query string) string {
	lower := strings.ToLower(query)
	for _, entry := range knowledgeBase {
		if strings.Contains(lower, entry.Keyword) {
			return entry.Answer
		}
	}
	for _, cue := range questionCues {
		if strings.Contains(lower, cue) {
			return knowledgeFallback
		}
	}
	return ""
}
